package plan

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/javiermolinar/weekendly/internal/activity"
)

// ErrNoCandidates is returned when every fallback for a slot yields nothing.
var ErrNoCandidates = errors.New("no candidate activities")

// Policy decides what happens when a slot has no candidates.
type Policy uint8

const (
	// PolicyError fails the whole generation with ErrNoCandidates.
	PolicyError Policy = iota

	// PolicySkip leaves the slot empty.
	PolicySkip
)

// String returns the policy name used in configuration.
func (p Policy) String() string {
	switch p {
	case PolicyError:
		return "error"
	case PolicySkip:
		return "skip"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy parses a policy name. Empty input selects PolicyError.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return PolicyError, nil
	case "skip":
		return PolicySkip, nil
	default:
		return 0, fmt.Errorf("unknown empty-pool policy %q: must be error or skip", s)
	}
}

// Predicate selects candidate activities.
type Predicate func(activity.Activity) bool

// InCategory matches activities of the given category.
func InCategory(c activity.Category) Predicate {
	return func(a activity.Activity) bool {
		return a.Category == c
	}
}

// SuitsSlot matches a category whose preferred time is the slot's or any.
func SuitsSlot(c activity.Category, slot Slot) Predicate {
	tod := activity.TimeOfDay(slot.String())
	return func(a activity.Activity) bool {
		return a.Category == c && (a.TimeOfDay == tod || a.TimeOfDay == activity.TimeAny)
	}
}

// nightOut matches night activities, or any-time social, indoor and meal activities.
func nightOut(a activity.Activity) bool {
	if a.TimeOfDay == activity.TimeNight {
		return true
	}
	return a.TimeOfDay == activity.TimeAny && slices.Contains(
		[]activity.Category{activity.CategorySocial, activity.CategoryIndoor, activity.CategoryMeal},
		a.Category,
	)
}

// Rule is the selection policy for one slot: predicates are tried in order
// until one yields a non-empty pool.
type Rule struct {
	Slot      Slot
	Hours     int
	Label     string
	Fallbacks []Predicate
}

// DefaultRules is the fixed per-slot mapping used by randomize.
func DefaultRules() []Rule {
	return []Rule{
		{
			Slot:  Morning,
			Hours: 1,
			Label: "wellness",
			Fallbacks: []Predicate{
				SuitsSlot(activity.CategoryWellness, Morning),
				InCategory(activity.CategoryWellness),
			},
		},
		{
			Slot:  Afternoon,
			Hours: 2,
			Label: "outdoor",
			Fallbacks: []Predicate{
				SuitsSlot(activity.CategoryOutdoor, Afternoon),
				InCategory(activity.CategoryOutdoor),
			},
		},
		{
			Slot:  Evening,
			Hours: 2,
			Label: "meal",
			Fallbacks: []Predicate{
				SuitsSlot(activity.CategoryMeal, Evening),
				InCategory(activity.CategoryMeal),
			},
		},
		{
			Slot:  Night,
			Hours: 1,
			Label: "night",
			Fallbacks: []Predicate{
				nightOut,
				InCategory(activity.CategorySocial),
			},
		},
	}
}

// pool returns the first non-empty candidate set produced by the rule's fallbacks.
func (r Rule) pool(library []activity.Activity) []activity.Activity {
	for _, match := range r.Fallbacks {
		var candidates []activity.Activity
		for _, a := range library {
			if match(a) {
				candidates = append(candidates, a)
			}
		}
		if len(candidates) > 0 {
			return candidates
		}
	}
	return nil
}

// Generator builds randomized weekend schedules.
type Generator struct {
	rules  []Rule
	policy Policy
	rng    *rand.Rand
	newID  func() string
}

// NewGenerator creates a Generator with the default rules and a random seed.
func NewGenerator(policy Policy) *Generator {
	return &Generator{
		rules:  DefaultRules(),
		policy: policy,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID:  NewEntryID,
	}
}

// NewSeededGenerator creates a Generator with a deterministic random source.
func NewSeededGenerator(policy Policy, seed uint64) *Generator {
	g := NewGenerator(policy)
	g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return g
}

// Policy returns the generator's empty-pool policy.
func (g *Generator) Policy() Policy {
	return g.policy
}

// Generate builds a weekend schedule with one entry per slot for each day,
// each day sampled independently.
func (g *Generator) Generate(library []activity.Activity) (Schedule, error) {
	s := NewSchedule()
	for _, day := range Days() {
		entries, err := g.generateDay(library, day)
		if err != nil {
			return Schedule{}, err
		}
		s = s.withDay(day, entries)
	}
	return s, nil
}

func (g *Generator) generateDay(library []activity.Activity, day Day) ([]ScheduledActivity, error) {
	entries := make([]ScheduledActivity, 0, len(g.rules))
	for _, rule := range g.rules {
		candidates := rule.pool(library)
		if len(candidates) == 0 {
			if g.policy == PolicySkip {
				continue
			}
			return nil, fmt.Errorf("%w for %s %s (%s)", ErrNoCandidates, day, rule.Slot, rule.Label)
		}

		picked := candidates[g.rng.IntN(len(candidates))]
		entries = append(entries, ScheduledActivity{
			ID:            g.newID(),
			Activity:      picked,
			Day:           day,
			Slot:          rule.Slot,
			DurationHours: rule.Hours,
		})
	}
	return entries, nil
}

// GenerateRandomSchedule builds a random schedule from the library using the
// default rules, failing with ErrNoCandidates if a slot has no candidates.
func GenerateRandomSchedule(library []activity.Activity) (Schedule, error) {
	return NewGenerator(PolicyError).Generate(library)
}
