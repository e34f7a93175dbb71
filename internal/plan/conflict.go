package plan

import (
	"fmt"
	"strings"
)

// Mode selects how an entry's hours are assigned to slots.
type Mode uint8

const (
	// ModeStartSlot charges an entry's full duration to its start slot only.
	ModeStartSlot Mode = iota

	// ModeSpanning charges an entry's full duration to every slot it spans.
	ModeSpanning
)

// String returns the mode name used in configuration.
func (m Mode) String() string {
	switch m {
	case ModeStartSlot:
		return "start-slot"
	case ModeSpanning:
		return "spanning"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses a mode name. Empty input selects the default mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start-slot", "start", "simple":
		return ModeStartSlot, nil
	case "spanning", "span":
		return ModeSpanning, nil
	default:
		return 0, fmt.Errorf("unknown conflict mode %q: must be start-slot or spanning", s)
	}
}

// SlotLoad is the assigned hours in one (day, slot) bucket.
type SlotLoad struct {
	Day      Day
	Slot     Slot
	Hours    int
	Capacity int
	EntryIDs []string
}

// Over returns true if the bucket holds strictly more than its capacity.
func (l SlotLoad) Over() bool {
	return l.Hours > l.Capacity
}

// Pair is an unordered pair of entries that jointly overflow a slot.
// A is always the entry that appeared first in the input.
type Pair struct {
	A ScheduledActivity
	B ScheduledActivity
}

// Involves returns true if the pair contains the entry id.
func (p Pair) Involves(id string) bool {
	return p.A.ID == id || p.B.ID == id
}

// Conflicts is the derived over-capacity report for a set of entries.
type Conflicts struct {
	HasConflict bool
	ByDay       [DayCount]bool
	Overloaded  []SlotLoad // buckets over capacity, in day then slot order
	Pairs       []Pair
}

// Day returns true if the given day has an over-capacity slot.
func (c Conflicts) Day(d Day) bool {
	if !d.Valid() {
		return false
	}
	return c.ByDay[d]
}

// Slot returns true if the given bucket is over capacity.
func (c Conflicts) Slot(d Day, s Slot) bool {
	for _, l := range c.Overloaded {
		if l.Day == d && l.Slot == s {
			return true
		}
	}
	return false
}

// Involves returns true if the entry id appears in any conflicting pair.
func (c Conflicts) Involves(id string) bool {
	for _, p := range c.Pairs {
		if p.Involves(id) {
			return true
		}
	}
	return false
}

// DetectOption configures conflict detection.
type DetectOption func(*detectOpts)

type detectOpts struct {
	mode Mode
}

// WithMode selects the slot assignment semantics.
func WithMode(m Mode) DetectOption {
	return func(o *detectOpts) {
		o.mode = m
	}
}

// Loads partitions entries into (day, slot) buckets and sums their hours.
// Every bucket is returned, in day then slot order. Invalid entries are ignored.
func Loads(entries []ScheduledActivity, mode Mode) []SlotLoad {
	var grid [DayCount][SlotCount]SlotLoad
	for _, d := range Days() {
		for _, s := range Slots() {
			grid[d][s] = SlotLoad{Day: d, Slot: s, Capacity: s.Capacity()}
		}
	}

	for _, e := range entries {
		if e.Validate() != nil {
			continue
		}
		for _, s := range occupied(e, mode) {
			l := &grid[e.Day][s]
			l.Hours += e.DurationHours
			l.EntryIDs = append(l.EntryIDs, e.ID)
		}
	}

	result := make([]SlotLoad, 0, DayCount*SlotCount)
	for _, d := range Days() {
		for _, s := range Slots() {
			result = append(result, grid[d][s])
		}
	}
	return result
}

// SlotHours returns the hours assigned to one bucket.
func SlotHours(entries []ScheduledActivity, day Day, slot Slot, mode Mode) int {
	total := 0
	for _, e := range entries {
		if e.Day != day || e.Validate() != nil {
			continue
		}
		for _, s := range occupied(e, mode) {
			if s == slot {
				total += e.DurationHours
			}
		}
	}
	return total
}

// IsSlotOverCapacity returns true if the bucket's hours exceed its capacity.
func IsSlotOverCapacity(entries []ScheduledActivity, day Day, slot Slot, mode Mode) bool {
	return SlotHours(entries, day, slot, mode) > slot.Capacity()
}

// DetectConflicts reports which (day, slot) buckets hold more hours than the
// slot's capacity, and every pair of entries sharing an overflowing bucket.
// Entries on different days never interact. The default mode is ModeStartSlot.
func DetectConflicts(entries []ScheduledActivity, opts ...DetectOption) Conflicts {
	o := detectOpts{mode: ModeStartSlot}
	for _, opt := range opts {
		opt(&o)
	}

	byID := make(map[string]ScheduledActivity, len(entries))
	for _, e := range entries {
		if _, ok := byID[e.ID]; !ok {
			byID[e.ID] = e
		}
	}

	var result Conflicts
	seen := make(map[[2]string]bool)
	for _, l := range Loads(entries, o.mode) {
		if !l.Over() {
			continue
		}
		result.HasConflict = true
		result.ByDay[l.Day] = true
		result.Overloaded = append(result.Overloaded, l)

		for i := 0; i < len(l.EntryIDs); i++ {
			for j := i + 1; j < len(l.EntryIDs); j++ {
				key := [2]string{l.EntryIDs[i], l.EntryIDs[j]}
				if key[0] == key[1] || seen[key] {
					continue
				}
				seen[key] = true
				result.Pairs = append(result.Pairs, Pair{A: byID[key[0]], B: byID[key[1]]})
			}
		}
	}
	return result
}

// Overlaps returns true if two entries share a day and at least one spanned slot.
func Overlaps(a, b ScheduledActivity) bool {
	if a.Day != b.Day {
		return false
	}
	for _, sa := range a.Spanned() {
		for _, sb := range b.Spanned() {
			if sa == sb {
				return true
			}
		}
	}
	return false
}

// occupied returns the slots an entry is charged to under the given mode.
func occupied(e ScheduledActivity, mode Mode) []Slot {
	if mode == ModeSpanning {
		return e.Spanned()
	}
	return []Slot{e.Slot}
}
