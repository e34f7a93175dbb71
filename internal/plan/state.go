package plan

import (
	"fmt"
	"slices"

	"github.com/javiermolinar/weekendly/internal/activity"
)

// State is the whole planner state: the library, the schedule, the selected
// theme and the library filters. Reducers never modify a State in place.
type State struct {
	Activities    []activity.Activity `json:"activities"`
	Schedule      Schedule            `json:"schedule"`
	SelectedTheme *activity.Theme     `json:"selectedTheme"`
	Filters       activity.Filters    `json:"filters"`
}

// InitialState returns the state for a fresh planner over the base library.
func InitialState(base []activity.Activity) State {
	return State{
		Activities:    slices.Clone(base),
		Schedule:      NewSchedule(),
		SelectedTheme: nil,
		Filters:       activity.DefaultFilters(),
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	return State{
		Activities:    slices.Clone(s.Activities),
		Schedule:      s.Schedule.Clone(),
		SelectedTheme: s.SelectedTheme.Clone(),
		Filters:       s.Filters.Clone(),
	}
}

// Action is an intent applied by Reducer.Reduce.
type Action interface {
	actionName() string
}

// Add places an activity. A nil DurationHours uses the activity's duration.
type Add struct {
	Activity      activity.Activity
	Day           Day
	Slot          Slot
	DurationHours *int
}

// Remove deletes the entry with the given id.
type Remove struct {
	ID string
}

// Edit applies a partial update to the entry with the given id.
type Edit struct {
	ID     string
	Update Update
}

// SetTheme selects a theme. A nil or default theme clears the selection.
type SetTheme struct {
	Theme *activity.Theme
}

// FiltersUpdate is a partial change to the library filters.
type FiltersUpdate struct {
	Query      *string
	Categories []activity.Category // nil leaves categories unchanged
	Energy     *activity.Energy
	TimeOfDay  *activity.TimeOfDay
}

// Empty reports whether the update changes nothing.
func (u FiltersUpdate) Empty() bool {
	return u.Query == nil && u.Categories == nil && u.Energy == nil && u.TimeOfDay == nil
}

// SetFilters merges a partial filter change.
type SetFilters struct {
	Update FiltersUpdate
}

// Clear empties both days.
type Clear struct{}

// Hydrate merges a decoded snapshot into the state.
type Hydrate struct {
	Snapshot Snapshot
}

// Import merges a snapshot like Hydrate but keeps the current library,
// appending only custom activities it does not already hold.
type Import struct {
	Snapshot Snapshot
}

// Randomize replaces the schedule with a generated one.
type Randomize struct{}

// AddCustomActivity appends a user-created activity to the library.
type AddCustomActivity struct {
	Activity activity.Activity
}

func (Add) actionName() string               { return "add" }
func (Remove) actionName() string            { return "remove" }
func (Edit) actionName() string              { return "edit" }
func (SetTheme) actionName() string          { return "setTheme" }
func (SetFilters) actionName() string        { return "setFilters" }
func (Clear) actionName() string             { return "clear" }
func (Hydrate) actionName() string           { return "hydrate" }
func (Import) actionName() string            { return "import" }
func (Randomize) actionName() string         { return "randomize" }
func (AddCustomActivity) actionName() string { return "addCustomActivity" }

// ActionName returns the name of the action, for logging.
func ActionName(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionName()
}

// Reducer is the pure transition function from (state, action) to state.
type Reducer struct {
	base      []activity.Activity
	generator *Generator
	newID     func() string
}

// NewReducer creates a Reducer over the base library.
// The base library is what hydrate merges custom activities onto.
func NewReducer(base []activity.Activity, gen *Generator) *Reducer {
	if gen == nil {
		gen = NewGenerator(PolicyError)
	}
	return &Reducer{
		base:      slices.Clone(base),
		generator: gen,
		newID:     NewEntryID,
	}
}

// Initial returns the reducer's initial state.
func (r *Reducer) Initial() State {
	return InitialState(r.base)
}

// Reduce applies an action and returns the next state. On error the returned
// state is the unchanged input. Actions referencing absent ids are no-ops.
func (r *Reducer) Reduce(s State, a Action) (State, error) {
	next := s.Clone()

	switch act := a.(type) {
	case Add:
		hours := act.Activity.Duration
		if act.DurationHours != nil {
			hours = *act.DurationHours
		}
		entry := ScheduledActivity{
			ID:            r.newID(),
			Activity:      act.Activity,
			Day:           act.Day,
			Slot:          act.Slot,
			DurationHours: hours,
		}
		schedule, err := next.Schedule.Add(entry)
		if err != nil {
			return s, err
		}
		next.Schedule = schedule

	case Remove:
		next.Schedule = RemoveActivity(next.Schedule, act.ID)

	case Edit:
		schedule, err := UpdateActivity(next.Schedule, act.ID, act.Update)
		if err != nil {
			return s, err
		}
		next.Schedule = schedule

	case SetTheme:
		next.SelectedTheme = normalizeTheme(act.Theme)

	case SetFilters:
		next.Filters = mergeFilters(next.Filters, act.Update)

	case Clear:
		next.Schedule = NewSchedule()

	case Hydrate:
		next = r.hydrate(next, r.base, act.Snapshot)

	case Import:
		next = r.hydrate(next, next.Activities, act.Snapshot)

	case Randomize:
		schedule, err := r.generator.Generate(next.Activities)
		if err != nil {
			return s, fmt.Errorf("randomizing schedule: %w", err)
		}
		next.Schedule = schedule

	case AddCustomActivity:
		if err := act.Activity.Validate(); err != nil {
			return s, err
		}
		if _, exists := activity.Find(next.Activities, act.Activity.ID); exists {
			return s, fmt.Errorf("activity %q already exists", act.Activity.ID)
		}
		next.Activities = append(next.Activities, act.Activity)

	default:
		return s, fmt.Errorf("unknown action %T", a)
	}

	return next, nil
}

// hydrate merges a snapshot: custom activities are appended to library,
// other fields replace the current ones only when present.
func (r *Reducer) hydrate(s State, library []activity.Activity, snap Snapshot) State {
	library = slices.Clone(library)
	for _, a := range activity.CustomOnly(snap.Activities) {
		if _, exists := activity.Find(library, a.ID); !exists {
			library = append(library, a)
		}
	}
	s.Activities = library

	if snap.Schedule != nil {
		s.Schedule = snap.Schedule.Clone()
	}
	if snap.ThemeSet {
		s.SelectedTheme = normalizeTheme(snap.Theme)
	}
	if snap.Filters != nil {
		s.Filters = snap.Filters.Clone()
	}
	return s
}

func normalizeTheme(t *activity.Theme) *activity.Theme {
	if t == nil || t.IsDefault() {
		return nil
	}
	return t.Clone()
}

func mergeFilters(f activity.Filters, u FiltersUpdate) activity.Filters {
	if u.Query != nil {
		f.Query = *u.Query
	}
	if u.Categories != nil {
		f.Categories = slices.Clone(u.Categories)
	}
	if u.Energy != nil {
		f.Energy = *u.Energy
	}
	if u.TimeOfDay != nil {
		f.TimeOfDay = *u.TimeOfDay
	}
	return f
}
