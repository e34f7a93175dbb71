package activity

// defaultLibrary is the built-in activity set. It is never replaced by
// persisted data; Default hands out copies.
var defaultLibrary = []Activity{
	// Meals
	{ID: "brunch-001", Name: "Weekend Brunch", Category: CategoryMeal, Duration: 2, TimeOfDay: TimeMorning, Energy: EnergyMedium, Icon: "🥐", Color: "#FFE4B5", Description: "Leisurely morning meal with friends or family"},
	{ID: "cook-001", Name: "Cooking Together", Category: CategoryMeal, Duration: 2, TimeOfDay: TimeEvening, Energy: EnergyLow, Icon: "🍳", Color: "#FFDAB9", Description: "Prepare a meal as a pair or group"},
	{ID: "dinner-party-001", Name: "Dinner Party", Category: CategoryMeal, Duration: 3, TimeOfDay: TimeEvening, Energy: EnergyMedium, Icon: "🍝", Color: "#FFDEB4", Description: "Host or attend a cozy dinner party"},

	// Outdoor
	{ID: "hike-001", Name: "Nature Hike", Category: CategoryOutdoor, Duration: 3, TimeOfDay: TimeAny, Energy: EnergyHigh, Icon: "🥾", Color: "#90EE90", Description: "Explore trails and enjoy fresh air"},
	{ID: "picnic-001", Name: "Park Picnic", Category: CategoryOutdoor, Duration: 2, TimeOfDay: TimeAfternoon, Energy: EnergyLow, Icon: "🧺", Color: "#C8FACC", Description: "Relax with snacks and games at a park"},
	{ID: "market-001", Name: "Farmers Market", Category: CategoryOutdoor, Duration: 2, TimeOfDay: TimeMorning, Energy: EnergyMedium, Icon: "🥕", Color: "#E0FFD7", Description: "Browse fresh produce and local goods"},
	{ID: "sunset-001", Name: "Sunset Walk", Category: CategoryOutdoor, Duration: 1, TimeOfDay: TimeEvening, Energy: EnergyLow, Icon: "🌇", Color: "#FFD1A1", Description: "Stroll and enjoy the sunset colors"},

	// Indoor
	{ID: "movie-001", Name: "Movie Marathon", Category: CategoryIndoor, Duration: 3, TimeOfDay: TimeEvening, Energy: EnergyLow, Icon: "🎬", Color: "#D1D5DB", Description: "Pick a theme and watch a series"},
	{ID: "board-001", Name: "Board Games", Category: CategoryIndoor, Duration: 2, TimeOfDay: TimeEvening, Energy: EnergyMedium, Icon: "🎲", Color: "#F3E8FF", Description: "Strategy, party, or co-op games"},
	{ID: "reading-001", Name: "Reading Time", Category: CategoryIndoor, Duration: 2, TimeOfDay: TimeAny, Energy: EnergyLow, Icon: "📚", Color: "#E5E7EB", Description: "Cozy up with a good book"},
	{ID: "spa-001", Name: "Home Spa", Category: CategoryIndoor, Duration: 2, TimeOfDay: TimeEvening, Energy: EnergyLow, Icon: "🧖", Color: "#E0F7F4", Description: "Face masks, bath, and candles"},

	// Social
	{ID: "friends-001", Name: "Friends Hangout", Category: CategorySocial, Duration: 3, TimeOfDay: TimeAny, Energy: EnergyMedium, Icon: "🧑‍🤝‍🧑", Color: "#FFE0F0", Description: "Meet up or host a get-together"},
	{ID: "family-001", Name: "Family Time", Category: CategorySocial, Duration: 3, TimeOfDay: TimeAny, Energy: EnergyMedium, Icon: "👪", Color: "#FFF0D9", Description: "Quality time with family"},
	{ID: "date-001", Name: "Date Night", Category: CategorySocial, Duration: 3, TimeOfDay: TimeEvening, Energy: EnergyMedium, Icon: "💞", Color: "#FFD6E7", Description: "Romantic evening plan"},

	// Wellness
	{ID: "yoga-001", Name: "Morning Yoga", Category: CategoryWellness, Duration: 1, TimeOfDay: TimeMorning, Energy: EnergyLow, Icon: "🧘", Color: "#E6FFFA", Description: "Gentle flow to start the day"},
	{ID: "meditation-001", Name: "Meditation", Category: CategoryWellness, Duration: 1, TimeOfDay: TimeAny, Energy: EnergyLow, Icon: "🪷", Color: "#DFF7FF", Description: "Mindfulness and breathing"},
	{ID: "gym-001", Name: "Gym Session", Category: CategoryWellness, Duration: 1, TimeOfDay: TimeAny, Energy: EnergyHigh, Icon: "🏋️", Color: "#E2E8F0", Description: "Strength or cardio workout"},

	// Creative
	{ID: "art-001", Name: "Art Project", Category: CategoryCreative, Duration: 2, TimeOfDay: TimeAfternoon, Energy: EnergyMedium, Icon: "🎨", Color: "#FFE4E1", Description: "Painting, crafting, or DIY"},
	{ID: "music-001", Name: "Music Jam", Category: CategoryCreative, Duration: 2, TimeOfDay: TimeEvening, Energy: EnergyMedium, Icon: "🎶", Color: "#E1E5FF", Description: "Play instruments or sing"},
	{ID: "writing-001", Name: "Writing Session", Category: CategoryCreative, Duration: 2, TimeOfDay: TimeMorning, Energy: EnergyLow, Icon: "✍️", Color: "#FFF4D6", Description: "Journal or work on a story"},

	// Night
	{ID: "stargaze-001", Name: "Stargazing", Category: CategoryOutdoor, Duration: 2, TimeOfDay: TimeNight, Energy: EnergyLow, Icon: "✨", Color: "#C7D2FE", Description: "Find a dark spot and watch the night sky"},
	{ID: "karaoke-001", Name: "Karaoke Night", Category: CategorySocial, Duration: 2, TimeOfDay: TimeNight, Energy: EnergyMedium, Icon: "🎤", Color: "#FBCFE8", Description: "Sing your heart out with friends"},
	{ID: "gaming-001", Name: "Late-night Gaming", Category: CategoryIndoor, Duration: 3, TimeOfDay: TimeNight, Energy: EnergyMedium, Icon: "🕹️", Color: "#E5E7EB", Description: "Co-op or online gaming session"},
}

// Default returns a copy of the built-in library.
func Default() []Activity {
	result := make([]Activity, len(defaultLibrary))
	copy(result, defaultLibrary)
	return result
}

// CustomOnly returns the activities carrying the custom marker, in order.
func CustomOnly(library []Activity) []Activity {
	var result []Activity
	for _, a := range library {
		if a.IsCustom() {
			result = append(result, a)
		}
	}
	return result
}

// ByCategory groups activities by category, keeping library order within each group.
func ByCategory(library []Activity) map[Category][]Activity {
	result := make(map[Category][]Activity)
	for _, a := range library {
		result[a.Category] = append(result[a.Category], a)
	}
	return result
}
