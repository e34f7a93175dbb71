// Package plan implements the weekend schedule: the time grid, schedule
// mutations, conflict detection and random generation.
package plan

import (
	"errors"
	"fmt"
	"strings"
)

// Enumeration errors.
var (
	ErrInvalidSlot = errors.New("slot must be one of morning, afternoon, evening, night")
	ErrInvalidDay  = errors.New("day must be saturday or sunday")
)

// Slot is one of the four fixed daily time windows.
type Slot uint8

const (
	Morning Slot = iota
	Afternoon
	Evening
	Night

	// SlotCount is the number of slots per day.
	SlotCount = 4
)

var slotNames = [SlotCount]string{"morning", "afternoon", "evening", "night"}

// Window describes a slot's labels and how many hours it can hold.
type Window struct {
	Start         string // "HH:MM"
	End           string // "HH:MM", may wrap past midnight
	CapacityHours int
}

// windows is process-wide constant configuration, indexed by Slot.
var windows = [SlotCount]Window{
	Morning:   {Start: "08:00", End: "12:00", CapacityHours: 4},
	Afternoon: {Start: "12:00", End: "17:00", CapacityHours: 5},
	Evening:   {Start: "17:00", End: "21:00", CapacityHours: 4},
	Night:     {Start: "21:00", End: "02:00", CapacityHours: 5},
}

// Slots returns the slots in day order.
func Slots() []Slot {
	return []Slot{Morning, Afternoon, Evening, Night}
}

// SlotIndex returns the slot's position in day order (morning=0 ... night=3).
func SlotIndex(s Slot) int {
	return int(s)
}

// Valid returns true for the four defined slots.
func (s Slot) Valid() bool {
	return s < SlotCount
}

// Window returns the slot's time window.
// It panics on a slot value outside the grid.
func (s Slot) Window() Window {
	return windows[s]
}

// Capacity returns the slot's capacity in hours.
func (s Slot) Capacity() int {
	return windows[s].CapacityHours
}

// String returns the slot's lowercase name.
func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", uint8(s))
	}
	return slotNames[s]
}

// MarshalText encodes the slot by name.
func (s Slot) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, uint8(s))
	}
	return []byte(slotNames[s]), nil
}

// UnmarshalText decodes a slot name, rejecting unknown values.
func (s *Slot) UnmarshalText(text []byte) error {
	parsed, err := ParseSlot(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSlot parses a slot name, ignoring case and surrounding space.
func ParseSlot(name string) (Slot, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, sn := range slotNames {
		if sn == n {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, name)
}

// Day is one of the two weekend days.
type Day uint8

const (
	Saturday Day = iota
	Sunday

	// DayCount is the number of days in a schedule.
	DayCount = 2
)

var dayNames = [DayCount]string{"saturday", "sunday"}

// Days returns the days in order.
func Days() []Day {
	return []Day{Saturday, Sunday}
}

// Valid returns true for saturday and sunday.
func (d Day) Valid() bool {
	return d < DayCount
}

// String returns the day's lowercase name.
func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", uint8(d))
	}
	return dayNames[d]
}

// Title returns the capitalized day name.
func (d Day) Title() string {
	switch d {
	case Saturday:
		return "Saturday"
	case Sunday:
		return "Sunday"
	default:
		return d.String()
	}
}

// MarshalText encodes the day by name.
func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDay, uint8(d))
	}
	return []byte(dayNames[d]), nil
}

// UnmarshalText decodes a day name, rejecting unknown values.
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDay parses a day name. "sat" and "sun" are accepted as short forms.
func ParseDay(name string) (Day, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "saturday", "sat":
		return Saturday, nil
	case "sunday", "sun":
		return Sunday, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDay, name)
	}
}

// SpannedSlots returns the slots an entry occupies when it may overflow into
// later slots. Capacities are consumed greedily from start; the span stops at
// night and never wraps into the next day. The result always contains start.
func SpannedSlots(start Slot, durationHours int) []Slot {
	var result []Slot
	remaining := max(0, durationHours)
	for i := SlotIndex(start); remaining > 0 && i < SlotCount; i++ {
		slot := Slot(i)
		result = append(result, slot)
		remaining -= slot.Capacity()
	}
	if len(result) == 0 {
		return []Slot{start}
	}
	return result
}
