package plan

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/javiermolinar/weekendly/internal/activity"
)

// ErrInvalidDuration is returned for effective durations below one hour.
var ErrInvalidDuration = errors.New("duration must be at least 1 hour")

// EntryPrefix marks ids of scheduled entries.
const EntryPrefix = "sched-"

// NewEntryID returns a fresh scheduled-entry id.
func NewEntryID() string {
	return EntryPrefix + uuid.NewString()
}

// ScheduledActivity is one placement of an activity on a day and start slot.
// It embeds a snapshot of the activity taken at scheduling time.
type ScheduledActivity struct {
	ID            string            `json:"id"`
	Activity      activity.Activity `json:"activity"`
	Day           Day               `json:"day"`
	Slot          Slot              `json:"slot"`
	DurationHours int               `json:"durationHours"`
}

// NewScheduledActivity places an activity using its nominal duration.
func NewScheduledActivity(a activity.Activity, day Day, slot Slot) (ScheduledActivity, error) {
	return NewScheduledActivityWithHours(a, day, slot, a.Duration)
}

// NewScheduledActivityWithHours places an activity with an explicit duration.
func NewScheduledActivityWithHours(a activity.Activity, day Day, slot Slot, hours int) (ScheduledActivity, error) {
	e := ScheduledActivity{
		ID:            NewEntryID(),
		Activity:      a,
		Day:           day,
		Slot:          slot,
		DurationHours: hours,
	}
	if err := e.Validate(); err != nil {
		return ScheduledActivity{}, err
	}
	return e, nil
}

// Validate checks that the entry's day, slot and duration are usable.
func (e ScheduledActivity) Validate() error {
	if !e.Day.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDay, uint8(e.Day))
	}
	if !e.Slot.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, uint8(e.Slot))
	}
	if e.DurationHours < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, e.DurationHours)
	}
	return nil
}

// Spanned returns the slots the entry covers under spanning semantics.
func (e ScheduledActivity) Spanned() []Slot {
	return SpannedSlots(e.Slot, e.DurationHours)
}

// Schedule holds the entries for both weekend days, in append order.
type Schedule struct {
	Saturday []ScheduledActivity `json:"saturday"`
	Sunday   []ScheduledActivity `json:"sunday"`
}

// NewSchedule returns an empty schedule.
func NewSchedule() Schedule {
	return Schedule{
		Saturday: []ScheduledActivity{},
		Sunday:   []ScheduledActivity{},
	}
}

// Day returns a copy of the entries for the given day.
func (s Schedule) Day(d Day) []ScheduledActivity {
	switch d {
	case Saturday:
		return slices.Clone(s.Saturday)
	case Sunday:
		return slices.Clone(s.Sunday)
	default:
		return nil
	}
}

// withDay returns a copy of s with the given day's entries replaced.
func (s Schedule) withDay(d Day, entries []ScheduledActivity) Schedule {
	out := s.Clone()
	switch d {
	case Saturday:
		out.Saturday = entries
	case Sunday:
		out.Sunday = entries
	}
	return out
}

// Clone returns a copy that shares no backing arrays with s.
func (s Schedule) Clone() Schedule {
	out := Schedule{
		Saturday: slices.Clone(s.Saturday),
		Sunday:   slices.Clone(s.Sunday),
	}
	if out.Saturday == nil {
		out.Saturday = []ScheduledActivity{}
	}
	if out.Sunday == nil {
		out.Sunday = []ScheduledActivity{}
	}
	return out
}

// Entries returns all entries, saturday first.
func (s Schedule) Entries() []ScheduledActivity {
	result := make([]ScheduledActivity, 0, s.Len())
	result = append(result, s.Saturday...)
	return append(result, s.Sunday...)
}

// Len returns the number of entries across both days.
func (s Schedule) Len() int {
	return len(s.Saturday) + len(s.Sunday)
}

// IsEmpty returns true if neither day has entries.
func (s Schedule) IsEmpty() bool {
	return s.Len() == 0
}

// Find returns the entry with the given id.
func (s Schedule) Find(id string) (ScheduledActivity, bool) {
	for _, e := range s.Entries() {
		if e.ID == id {
			return e, true
		}
	}
	return ScheduledActivity{}, false
}

// Add appends an entry to its day. The entry is validated first.
func (s Schedule) Add(e ScheduledActivity) (Schedule, error) {
	if err := e.Validate(); err != nil {
		return s, err
	}
	entries := append(s.Day(e.Day), e)
	return s.withDay(e.Day, entries), nil
}

// RemoveActivity returns a schedule without the entry matching id.
// An absent id yields an unchanged copy.
func RemoveActivity(s Schedule, id string) Schedule {
	keep := func(entries []ScheduledActivity) []ScheduledActivity {
		result := make([]ScheduledActivity, 0, len(entries))
		for _, e := range entries {
			if e.ID != id {
				result = append(result, e)
			}
		}
		return result
	}
	return Schedule{
		Saturday: keep(s.Saturday),
		Sunday:   keep(s.Sunday),
	}
}

// Update is a partial change to a scheduled entry. Nil fields are left unchanged.
type Update struct {
	Day           *Day
	Slot          *Slot
	DurationHours *int
	Activity      *activity.Activity
}

// IsZero returns true if the update changes nothing.
func (u Update) IsZero() bool {
	return u.Day == nil && u.Slot == nil && u.DurationHours == nil && u.Activity == nil
}

// validate checks the fields the update sets.
func (u Update) validate() error {
	if u.Day != nil && !u.Day.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDay, uint8(*u.Day))
	}
	if u.Slot != nil && !u.Slot.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, uint8(*u.Slot))
	}
	if u.DurationHours != nil && *u.DurationHours < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, *u.DurationHours)
	}
	return nil
}

// UpdateActivity applies a partial update to the entry matching id.
// When the day changes the entry moves to the end of the new day's list.
// An absent id yields an unchanged copy; an invalid update is rejected.
func UpdateActivity(s Schedule, id string, u Update) (Schedule, error) {
	if err := u.validate(); err != nil {
		return s, err
	}

	current, ok := s.Find(id)
	if !ok {
		return s.Clone(), nil
	}

	next := current
	if u.Day != nil {
		next.Day = *u.Day
	}
	if u.Slot != nil {
		next.Slot = *u.Slot
	}
	if u.DurationHours != nil {
		next.DurationHours = *u.DurationHours
	}
	if u.Activity != nil {
		next.Activity = *u.Activity
	}

	if next.Day == current.Day {
		entries := s.Day(current.Day)
		for i := range entries {
			if entries[i].ID == id {
				entries[i] = next
			}
		}
		return s.withDay(current.Day, entries), nil
	}

	out := RemoveActivity(s, id)
	return out.withDay(next.Day, append(out.Day(next.Day), next)), nil
}
