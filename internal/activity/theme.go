package activity

import "slices"

// DefaultThemeID is the sentinel id meaning "no theme selected".
const DefaultThemeID = "default"

// Painting is the artwork shown behind a theme.
type Painting struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Year  string `json:"year"`
}

// Theme is a mood preset that biases suggestions.
type Theme struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Mood                string    `json:"mood"`
	Colors              []string  `json:"colors"`
	SuggestedActivities []string  `json:"suggestedActivities"`
	BackgroundPattern   string    `json:"backgroundPattern"`
	Painting            *Painting `json:"painting,omitempty"`
}

// IsDefault returns true for the sentinel theme.
func (t *Theme) IsDefault() bool {
	return t != nil && t.ID == DefaultThemeID
}

// Clone returns a deep copy of the theme.
func (t *Theme) Clone() *Theme {
	if t == nil {
		return nil
	}
	out := *t
	out.Colors = slices.Clone(t.Colors)
	out.SuggestedActivities = slices.Clone(t.SuggestedActivities)
	if t.Painting != nil {
		p := *t.Painting
		out.Painting = &p
	}
	return &out
}

var builtinThemes = []Theme{
	{
		ID:                  "adventure-seeker",
		Name:                "Adventure Seeker",
		Mood:                "energetic",
		Colors:              []string{"#E6FFFB", "#99F6E4", "#06B6D4"},
		SuggestedActivities: []string{"hike-001", "market-001", "sunset-001", "gym-001"},
		BackgroundPattern:   "triangles",
		Painting:            &Painting{Name: "The Starry Night", Image: "starry-nights.jpg", Year: "1889"},
	},
	{
		ID:                  "social-butterfly",
		Name:                "Social Butterfly",
		Mood:                "extroverted",
		Colors:              []string{"#FFE0F0", "#FFB3D1", "#FF6EA7"},
		SuggestedActivities: []string{"friends-001", "date-001", "board-001", "karaoke-001"},
		BackgroundPattern:   "confetti",
		Painting:            &Painting{Name: "The Dance Hall in Arles", Image: "dance-hall.jpg", Year: "1888"},
	},
	{
		ID:                  "wellness-warrior",
		Name:                "Wellness Warrior",
		Mood:                "balanced",
		Colors:              []string{"#D1FAE5", "#A7F3D0", "#34D399"},
		SuggestedActivities: []string{"yoga-001", "meditation-001", "hike-001", "sunset-001"},
		BackgroundPattern:   "leaves",
		Painting:            &Painting{Name: "Wheatfield with Cypresses", Image: "wheatfield-cypresses.jpg", Year: "1889"},
	},
	{
		ID:                  "cozy-homebody",
		Name:                "Cozy Homebody",
		Mood:                "relaxed",
		Colors:              []string{"#F5E6D3", "#E7C2A1", "#D4A574"},
		SuggestedActivities: []string{"reading-001", "cook-001", "movie-001", "spa-001"},
		BackgroundPattern:   "soft-waves",
		Painting:            &Painting{Name: "The Bedroom", Image: "the-bedroom.jpg", Year: "1888"},
	},
	{
		ID:                  "creative-artist",
		Name:                "Creative Artist",
		Mood:                "inspired",
		Colors:              []string{"#FEF3C7", "#FCD34D", "#F59E0B"},
		SuggestedActivities: []string{"art-001", "music-001", "writing-001", "market-001"},
		BackgroundPattern:   "brushstrokes",
		Painting:            &Painting{Name: "Sunflowers", Image: "sunflowers.jpg", Year: "1888"},
	},
}

// Themes returns copies of the built-in themes.
func Themes() []*Theme {
	result := make([]*Theme, len(builtinThemes))
	for i := range builtinThemes {
		result[i] = builtinThemes[i].Clone()
	}
	return result
}

// ThemeByID returns a copy of the built-in theme with the given id, or nil.
func ThemeByID(id string) *Theme {
	for i := range builtinThemes {
		if builtinThemes[i].ID == id {
			return builtinThemes[i].Clone()
		}
	}
	return nil
}
