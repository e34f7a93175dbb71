package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/weekendly/internal/plan"
)

// ErrEmptySchedule is returned when there is nothing to analyze.
var ErrEmptySchedule = errors.New("schedule is empty")

const analyzerSystemPrompt = `You are a friendly weekend planning assistant. Look at this weekend schedule and give a casual, conversational analysis in 2-3 sentences. Be warm and helpful, like talking to a friend about their weekend plans.

Focus on what's working well and gentle suggestions for improvement. Keep it natural and conversational - no bullet points, lists, or formal structure. Just friendly observations about their weekend balance, energy flow, and any gaps you notice.

Write as if you're having a casual conversation about weekend plans.`

// Analyzer asks an LLM for a short review of a weekend schedule.
type Analyzer struct {
	client Client
}

// NewAnalyzer creates a new Analyzer with the given LLM client.
func NewAnalyzer(client Client) *Analyzer {
	return &Analyzer{client: client}
}

// AnalyzeSchedule returns the model's review of the schedule, trimmed.
func (a *Analyzer) AnalyzeSchedule(ctx context.Context, s plan.Schedule) (string, error) {
	if s.IsEmpty() {
		return "", ErrEmptySchedule
	}

	resp, err := a.client.Chat(ctx, []Message{
		{Role: RoleSystem, Content: analyzerSystemPrompt},
		{Role: RoleUser, Content: FormatSchedule(s)},
	})
	if err != nil {
		return "", fmt.Errorf("analyzing schedule: %w", err)
	}

	text := strings.TrimSpace(resp)
	if text == "" {
		return "", errors.New("analyzing schedule: empty response")
	}
	return text, nil
}

// FormatSchedule renders the schedule as the model sees it: each day lists
// all four slots, showing the first entry that starts there or [Empty].
func FormatSchedule(s plan.Schedule) string {
	var sb strings.Builder
	sb.WriteString("Weekend Schedule Analysis:\n")

	for _, day := range plan.Days() {
		entries := s.Day(day)

		sb.WriteString("\n")
		sb.WriteString(day.Title())
		sb.WriteString(":\n")

		for _, slot := range plan.Slots() {
			e, ok := firstInSlot(entries, slot)
			if !ok {
				fmt.Fprintf(&sb, "  %s: [Empty]\n", slot)
				continue
			}
			fmt.Fprintf(&sb, "  %s: %s (%dh, %s energy, %s)\n",
				slot, e.Activity.Name, e.DurationHours, e.Activity.Energy, e.Activity.Category)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func firstInSlot(entries []plan.ScheduledActivity, slot plan.Slot) (plan.ScheduledActivity, bool) {
	for _, e := range entries {
		if e.Slot == slot {
			return e, true
		}
	}
	return plan.ScheduledActivity{}, false
}
