// Package activity defines the activity library for weekendly.
package activity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyName        = errors.New("activity name is required")
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidDuration  = errors.New("duration must be between 1 and 8 hours")
	ErrInvalidCategory  = errors.New("category must be one of meal, outdoor, indoor, social, wellness, creative")
	ErrInvalidTimeOfDay = errors.New("time of day must be one of morning, afternoon, evening, night, any")
	ErrInvalidEnergy    = errors.New("energy must be one of low, medium, high")
	ErrEmptyID          = errors.New("activity id cannot be empty")
)

// Duration bounds for activities in hours.
const (
	MinDuration = 1
	MaxDuration = 8
)

// CustomPrefix marks user-created activities so they survive persistence merges.
const CustomPrefix = "custom-"

// DefaultIcon is used when a custom activity has no icon.
const DefaultIcon = "🎯"

// Category is the kind of activity.
type Category string

const (
	CategoryMeal     Category = "meal"
	CategoryOutdoor  Category = "outdoor"
	CategoryIndoor   Category = "indoor"
	CategorySocial   Category = "social"
	CategoryWellness Category = "wellness"
	CategoryCreative Category = "creative"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryMeal,
		CategoryOutdoor,
		CategoryIndoor,
		CategorySocial,
		CategoryWellness,
		CategoryCreative,
	}
}

// Valid returns true if the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategoryMeal, CategoryOutdoor, CategoryIndoor, CategorySocial, CategoryWellness, CategoryCreative:
		return true
	default:
		return false
	}
}

// Label returns the plural display label used by the library view.
func (c Category) Label() string {
	switch c {
	case CategoryMeal:
		return "Meals"
	case CategoryOutdoor:
		return "Outdoor"
	case CategoryIndoor:
		return "Indoor"
	case CategorySocial:
		return "Social"
	case CategoryWellness:
		return "Wellness"
	case CategoryCreative:
		return "Creative"
	default:
		return string(c)
	}
}

// Color returns the card color for the category.
func (c Category) Color() string {
	switch c {
	case CategoryMeal:
		return "#FFE4B5"
	case CategoryOutdoor:
		return "#90EE90"
	case CategoryIndoor:
		return "#D1D5DB"
	case CategorySocial:
		return "#FFE0F0"
	case CategoryWellness:
		return "#E6FFFA"
	case CategoryCreative:
		return "#FFE4E1"
	default:
		return "#E5E7EB"
	}
}

// ParseCategory parses a category name, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// TimeOfDay is the preferred time window of an activity.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
	TimeAny       TimeOfDay = "any"
)

// Valid returns true if the time of day is a known value.
func (t TimeOfDay) Valid() bool {
	switch t {
	case TimeMorning, TimeAfternoon, TimeEvening, TimeNight, TimeAny:
		return true
	default:
		return false
	}
}

// ParseTimeOfDay parses a time-of-day name. Empty input means any.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TimeAny, nil
	}
	t := TimeOfDay(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return t, nil
}

// Energy is how demanding an activity is.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"

	// EnergyAny is only meaningful as a filter value.
	EnergyAny Energy = "any"
)

// Valid returns true for low, medium and high.
func (e Energy) Valid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}

// ParseEnergy parses an energy level.
func ParseEnergy(s string) (Energy, error) {
	e := Energy(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidEnergy, s)
	}
	return e, nil
}

// Activity is an immutable library template.
type Activity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Duration    int       `json:"duration"` // nominal hours
	TimeOfDay   TimeOfDay `json:"timeOfDay"`
	Energy      Energy    `json:"energy"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
}

// Validate checks the invariants a library activity must hold.
func (a Activity) Validate() error {
	if a.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, a.Category)
	}
	if a.Duration < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, a.Duration)
	}
	if !a.TimeOfDay.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, a.TimeOfDay)
	}
	if !a.Energy.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEnergy, a.Energy)
	}
	return nil
}

// IsCustom returns true if the activity was created by the user.
func (a Activity) IsCustom() bool {
	return IsCustom(a.ID)
}

// IsCustom returns true if id carries the custom marker.
func IsCustom(id string) bool {
	return strings.HasPrefix(id, CustomPrefix)
}

// Form holds the user input for a custom activity.
type Form struct {
	Name        string
	Category    string
	Duration    int
	TimeOfDay   string
	Energy      string
	Icon        string
	Description string
}

// NewCustom creates a custom activity from a form with validation.
// The activity gets a fresh id with the custom marker and the category color.
func NewCustom(f Form) (Activity, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Activity{}, ErrEmptyName
	}

	description := strings.TrimSpace(f.Description)
	if description == "" {
		return Activity{}, ErrEmptyDescription
	}

	if f.Duration < MinDuration || f.Duration > MaxDuration {
		return Activity{}, fmt.Errorf("%w: got %d", ErrInvalidDuration, f.Duration)
	}

	cat, err := ParseCategory(f.Category)
	if err != nil {
		return Activity{}, err
	}

	tod, err := ParseTimeOfDay(f.TimeOfDay)
	if err != nil {
		return Activity{}, err
	}

	energy := EnergyMedium
	if strings.TrimSpace(f.Energy) != "" {
		if energy, err = ParseEnergy(f.Energy); err != nil {
			return Activity{}, err
		}
	}

	icon := strings.TrimSpace(f.Icon)
	if icon == "" {
		icon = DefaultIcon
	}

	return Activity{
		ID:          CustomPrefix + uuid.NewString(),
		Name:        name,
		Category:    cat,
		Duration:    f.Duration,
		TimeOfDay:   tod,
		Energy:      energy,
		Icon:        icon,
		Color:       cat.Color(),
		Description: description,
	}, nil
}

// Find returns the activity with the given id.
func Find(library []Activity, id string) (Activity, bool) {
	for _, a := range library {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}
