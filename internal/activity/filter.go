package activity

import (
	"slices"
	"strings"
)

// Filters narrows the library view.
type Filters struct {
	Query      string     `json:"query"`
	Categories []Category `json:"categories"` // empty means all
	Energy     Energy     `json:"energy"`     // EnergyAny means all
	TimeOfDay  TimeOfDay  `json:"timeOfDay"`  // TimeAny means all
}

// DefaultFilters returns filters that match every activity.
func DefaultFilters() Filters {
	return Filters{
		Query:      "",
		Categories: []Category{},
		Energy:     EnergyAny,
		TimeOfDay:  TimeAny,
	}
}

// Active returns true if any filter narrows the result.
func (f Filters) Active() bool {
	return f.Query != "" ||
		len(f.Categories) > 0 ||
		(f.Energy != "" && f.Energy != EnergyAny) ||
		(f.TimeOfDay != "" && f.TimeOfDay != TimeAny)
}

// Clone returns a copy that shares no slices with f.
func (f Filters) Clone() Filters {
	out := f
	out.Categories = slices.Clone(f.Categories)
	if out.Categories == nil {
		out.Categories = []Category{}
	}
	return out
}

// Matches returns true if the activity passes every filter.
func (f Filters) Matches(a Activity) bool {
	if q := strings.ToLower(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(a.Name), q) &&
			!strings.Contains(strings.ToLower(a.Description), q) {
			return false
		}
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, a.Category) {
		return false
	}
	if f.Energy != "" && f.Energy != EnergyAny && a.Energy != f.Energy {
		return false
	}
	if f.TimeOfDay != "" && f.TimeOfDay != TimeAny &&
		a.TimeOfDay != f.TimeOfDay && a.TimeOfDay != TimeAny {
		return false
	}
	return true
}

// Filter returns the activities matching f, in library order.
func Filter(library []Activity, f Filters) []Activity {
	var result []Activity
	for _, a := range library {
		if f.Matches(a) {
			result = append(result, a)
		}
	}
	return result
}

// Suggestion limits.
const (
	maxThemedSuggestions = 3
	maxSuggestions       = 5
)

// Suggest picks up to five activities favoring the theme's suggestions.
// It returns nothing while filters are active or no real theme is selected.
func Suggest(library []Activity, f Filters, theme *Theme) []Activity {
	if f.Active() || theme == nil || theme.IsDefault() {
		return nil
	}

	filtered := Filter(library, f)
	var themed, rest []Activity
	for _, a := range filtered {
		if slices.Contains(theme.SuggestedActivities, a.ID) {
			themed = append(themed, a)
		} else {
			rest = append(rest, a)
		}
	}

	themed = themed[:min(len(themed), maxThemedSuggestions)]
	rest = rest[:min(len(rest), maxSuggestions-len(themed))]
	return append(themed, rest...)
}
