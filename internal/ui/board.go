package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekendly/internal/plan"
)

const (
	minColumnWidth = 34
	columnGap      = 2
)

var (
	conflictColor = lipgloss.Color("#EF4444")

	dayStyle          = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	dayConflictStyle  = dayStyle.BorderForeground(conflictColor)
	dayTitleStyle     = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	slotTitleStyle    = lipgloss.NewStyle().Bold(true)
	slotConflictStyle = slotTitleStyle.Foreground(conflictColor)
	mutedStyle        = lipgloss.NewStyle().Faint(true)
)

// board holds what render needs for one render.
type board struct {
	mode      plan.Mode
	schedule  plan.Schedule
	conflicts plan.Conflicts
	loads     []plan.SlotLoad
	theme     string
}

func newBoard(s plan.State, mode plan.Mode) board {
	entries := s.Schedule.Entries()
	b := board{
		mode:      mode,
		schedule:  s.Schedule,
		conflicts: plan.DetectConflicts(entries, plan.WithMode(mode)),
		loads:     plan.Loads(entries, mode),
	}
	if s.SelectedTheme != nil {
		b.theme = s.SelectedTheme.Name
	}
	return b
}

func (b board) load(day plan.Day, slot plan.Slot) plan.SlotLoad {
	for _, l := range b.loads {
		if l.Day == day && l.Slot == slot {
			return l
		}
	}
	return plan.SlotLoad{Day: day, Slot: slot, Capacity: slot.Capacity()}
}

// render lays the two days side by side when the width allows, stacked otherwise.
func (b board) render(width int) string {
	colWidth := (width - columnGap) / plan.DayCount
	stacked := colWidth < minColumnWidth
	if stacked {
		colWidth = max(width, minColumnWidth)
	}

	columns := make([]string, 0, plan.DayCount)
	for _, day := range plan.Days() {
		columns = append(columns, b.renderDay(day, colWidth))
	}

	var body string
	if stacked {
		body = lipgloss.JoinVertical(lipgloss.Left, columns...)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, columns[0], strings.Repeat(" ", columnGap), columns[1])
	}

	if b.theme == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, mutedStyle.Render("Theme: "+b.theme), body)
}

func (b board) renderDay(day plan.Day, width int) string {
	var lines []string
	lines = append(lines, dayTitleStyle.Render(day.Title()))

	entries := b.schedule.Day(day)
	for i, slot := range plan.Slots() {
		if i > 0 {
			lines = append(lines, "")
		}

		l := b.load(day, slot)
		w := slot.Window()
		titleStyle := slotTitleStyle
		if l.Over() {
			titleStyle = slotConflictStyle
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			titleStyle.Render(titleCase(slot.String())),
			mutedStyle.Render(w.Start+"-"+w.End),
			formatLoad(l),
		))

		n := 0
		for _, e := range entries {
			if e.Slot != slot {
				continue
			}
			n++
			lines = append(lines, fmt.Sprintf("  %s %s", entryLabel(e), mutedStyle.Render(shortID(e.ID))))
			if spanned := e.Spanned(); b.mode == plan.ModeSpanning && len(spanned) > 1 {
				lines = append(lines, mutedStyle.Render(fmt.Sprintf("    ↳ runs into %s", spanned[len(spanned)-1])))
			}
		}
		if n == 0 {
			lines = append(lines, mutedStyle.Render("  free"))
		}
	}

	style := dayStyle
	if b.conflicts.Day(day) {
		style = dayConflictStyle
	}
	// Width includes padding but not the border.
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}
