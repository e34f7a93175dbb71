package plan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/javiermolinar/weekendly/internal/activity"
)

// Snapshot is a decoded, possibly partial, persisted state.
// Absent fields are nil (or ThemeSet false) and leave the current state alone.
type Snapshot struct {
	Activities []activity.Activity
	Schedule   *Schedule
	ThemeSet   bool
	Theme      *activity.Theme
	Filters    *activity.Filters

	// Dropped lists the fields and entries that could not be decoded.
	Dropped []string
}

// EncodeSnapshot serializes the state in the persisted layout.
func EncodeSnapshot(s State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot decodes a persisted state without failing. Malformed input
// yields an empty snapshot; type-mismatched fields and invalid entries are
// dropped and recorded in Dropped.
func DecodeSnapshot(data []byte) Snapshot {
	var snap Snapshot

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		snap.drop("snapshot")
		return snap
	}

	if raw, ok := fields["activities"]; ok {
		snap.Activities = decodeActivities(raw, &snap)
	}
	if raw, ok := fields["schedule"]; ok {
		snap.Schedule = decodeSchedule(raw, &snap)
	}
	if raw, ok := fields["selectedTheme"]; ok {
		decodeTheme(raw, &snap)
	}
	if raw, ok := fields["filters"]; ok {
		snap.Filters = decodeFilters(raw, &snap)
	}

	return snap
}

func (s *Snapshot) drop(field string) {
	s.Dropped = append(s.Dropped, field)
}

func decodeActivities(raw json.RawMessage, snap *Snapshot) []activity.Activity {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		snap.drop("activities")
		return nil
	}

	result := make([]activity.Activity, 0, len(items))
	for i, item := range items {
		var a activity.Activity
		if err := json.Unmarshal(item, &a); err != nil || a.Validate() != nil {
			snap.drop(fmt.Sprintf("activities[%d]", i))
			continue
		}
		result = append(result, a)
	}
	return result
}

// wireEntry mirrors ScheduledActivity with optional fields so missing values
// can be told apart from zero values.
type wireEntry struct {
	ID            string             `json:"id"`
	Activity      *activity.Activity `json:"activity"`
	Day           *Day               `json:"day"`
	Slot          *Slot              `json:"slot"`
	DurationHours *int               `json:"durationHours"`
}

func decodeSchedule(raw json.RawMessage, snap *Snapshot) *Schedule {
	var days map[string]json.RawMessage
	if err := json.Unmarshal(raw, &days); err != nil || days == nil {
		snap.drop("schedule")
		return nil
	}

	schedule := NewSchedule()
	seen := make(map[string]bool)
	for _, day := range Days() {
		rawDay, ok := days[day.String()]
		if !ok {
			continue
		}

		var items []json.RawMessage
		if err := json.Unmarshal(rawDay, &items); err != nil {
			snap.drop("schedule." + day.String())
			continue
		}

		entries := make([]ScheduledActivity, 0, len(items))
		for i, item := range items {
			e, ok := decodeEntry(item, day)
			if !ok || seen[e.ID] {
				snap.drop(fmt.Sprintf("schedule.%s[%d]", day, i))
				continue
			}
			seen[e.ID] = true
			entries = append(entries, e)
		}
		schedule = schedule.withDay(day, entries)
	}
	return &schedule
}

// decodeEntry decodes one entry. The day bucket it was stored under wins over
// the entry's own day field. A missing duration falls back to the activity's.
func decodeEntry(raw json.RawMessage, day Day) (ScheduledActivity, bool) {
	var w wireEntry
	if err := json.Unmarshal(raw, &w); err != nil {
		return ScheduledActivity{}, false
	}
	if strings.TrimSpace(w.ID) == "" || w.Activity == nil || w.Slot == nil {
		return ScheduledActivity{}, false
	}
	if w.Activity.Validate() != nil {
		return ScheduledActivity{}, false
	}

	hours := w.Activity.Duration
	if w.DurationHours != nil {
		hours = *w.DurationHours
	}

	e := ScheduledActivity{
		ID:            w.ID,
		Activity:      *w.Activity,
		Day:           day,
		Slot:          *w.Slot,
		DurationHours: hours,
	}
	if e.Validate() != nil {
		return ScheduledActivity{}, false
	}
	return e, true
}

func decodeTheme(raw json.RawMessage, snap *Snapshot) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		snap.ThemeSet = true
		snap.Theme = nil
		return
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		if id == activity.DefaultThemeID || id == "" {
			snap.ThemeSet = true
			return
		}
		if t := activity.ThemeByID(id); t != nil {
			snap.ThemeSet = true
			snap.Theme = t
			return
		}
		snap.drop("selectedTheme")
		return
	}

	var t activity.Theme
	if err := json.Unmarshal(raw, &t); err != nil || t.ID == "" {
		snap.drop("selectedTheme")
		return
	}
	snap.ThemeSet = true
	if !t.IsDefault() {
		snap.Theme = &t
	}
}

func decodeFilters(raw json.RawMessage, snap *Snapshot) *activity.Filters {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		snap.drop("filters")
		return nil
	}

	f := activity.DefaultFilters()

	if v, ok := fields["query"]; ok {
		if err := json.Unmarshal(v, &f.Query); err != nil {
			snap.drop("filters.query")
		}
	}

	if v, ok := fields["categories"]; ok {
		var names []string
		if err := json.Unmarshal(v, &names); err != nil {
			snap.drop("filters.categories")
		}
		for _, n := range names {
			c, err := activity.ParseCategory(n)
			if err != nil {
				snap.drop("filters.categories")
				continue
			}
			f.Categories = append(f.Categories, c)
		}
	}

	if v, ok := fields["energy"]; ok {
		var name string
		if err := json.Unmarshal(v, &name); err != nil {
			snap.drop("filters.energy")
		} else if e := activity.Energy(name); e == activity.EnergyAny || e.Valid() {
			f.Energy = e
		} else {
			snap.drop("filters.energy")
		}
	}

	if v, ok := fields["timeOfDay"]; ok {
		var name string
		if err := json.Unmarshal(v, &name); err != nil {
			snap.drop("filters.timeOfDay")
		} else if t := activity.TimeOfDay(name); t.Valid() {
			f.TimeOfDay = t
		} else {
			snap.drop("filters.timeOfDay")
		}
	}

	return &f
}
