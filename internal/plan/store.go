package plan

import (
	"context"
	"fmt"

	"github.com/javiermolinar/weekendly/internal/activity"
)

// Repository persists planner snapshots at the application boundary.
type Repository interface {
	// LoadSnapshot returns the most recent snapshot, or nil if none was saved.
	LoadSnapshot(ctx context.Context) ([]byte, error)

	// SaveSnapshot stores a snapshot as the most recent one.
	SaveSnapshot(ctx context.Context, data []byte) error

	// Close releases any resources held by the repository.
	Close() error
}

// Store owns the canonical planner state. Every operation replaces the whole
// state value; callers never observe a partial mutation.
// A Store is meant for a single writer and is not safe for concurrent use.
type Store struct {
	reducer *Reducer
	state   State
}

// NewStore creates a Store in the reducer's initial state.
func NewStore(r *Reducer) *Store {
	return &Store{reducer: r, state: r.Initial()}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	return s.state.Clone()
}

// Schedule returns a copy of the current schedule.
func (s *Store) Schedule() Schedule {
	return s.state.Schedule.Clone()
}

// Dispatch applies an action. On error the state is left unchanged.
func (s *Store) Dispatch(a Action) error {
	next, err := s.reducer.Reduce(s.state, a)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// Add places an activity using its nominal duration and returns the new entry.
func (s *Store) Add(a activity.Activity, day Day, slot Slot) (ScheduledActivity, error) {
	return s.add(Add{Activity: a, Day: day, Slot: slot})
}

// AddWithHours places an activity with an explicit duration.
func (s *Store) AddWithHours(a activity.Activity, day Day, slot Slot, hours int) (ScheduledActivity, error) {
	return s.add(Add{Activity: a, Day: day, Slot: slot, DurationHours: &hours})
}

func (s *Store) add(act Add) (ScheduledActivity, error) {
	if err := s.Dispatch(act); err != nil {
		return ScheduledActivity{}, err
	}
	entries := s.state.Schedule.Day(act.Day)
	return entries[len(entries)-1], nil
}

// Remove deletes the entry with the given id. Absent ids are ignored.
func (s *Store) Remove(id string) {
	_ = s.Dispatch(Remove{ID: id})
}

// Update applies a partial update. Absent ids are ignored.
func (s *Store) Update(id string, u Update) error {
	return s.Dispatch(Edit{ID: id, Update: u})
}

// Clear empties both days.
func (s *Store) Clear() {
	_ = s.Dispatch(Clear{})
}

// Hydrate merges a decoded snapshot into the current state.
func (s *Store) Hydrate(snap Snapshot) {
	_ = s.Dispatch(Hydrate{Snapshot: snap})
}

// Randomize replaces the schedule with a generated one.
func (s *Store) Randomize() error {
	return s.Dispatch(Randomize{})
}

// Conflicts runs conflict detection over the current schedule.
func (s *Store) Conflicts(opts ...DetectOption) Conflicts {
	return DetectConflicts(s.state.Schedule.Entries(), opts...)
}

// Load hydrates the store from the repository's latest snapshot.
// It returns the fields dropped while decoding.
func (s *Store) Load(ctx context.Context, repo Repository) ([]string, error) {
	data, err := repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	snap := DecodeSnapshot(data)
	s.Hydrate(snap)
	return snap.Dropped, nil
}

// Save writes the current state to the repository.
func (s *Store) Save(ctx context.Context, repo Repository) error {
	data, err := EncodeSnapshot(s.state)
	if err != nil {
		return err
	}
	if err := repo.SaveSnapshot(ctx, data); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}
