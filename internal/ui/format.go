package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/weekendly/internal/activity"
	"github.com/javiermolinar/weekendly/internal/plan"
)

// shortIDLen is the number of id characters shown after the prefix.
const shortIDLen = 8

// shortID abbreviates generated ids for display, keeping the prefix.
func shortID(id string) string {
	for _, prefix := range []string{plan.EntryPrefix, activity.CustomPrefix} {
		if rest, ok := strings.CutPrefix(id, prefix); ok && len(rest) > shortIDLen {
			return prefix + rest[:shortIDLen]
		}
	}
	return id
}

// resolveEntryID finds the scheduled entry matching ref: an exact id, or a
// unique prefix with or without the entry marker.
func resolveEntryID(s plan.Schedule, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty entry id")
	}
	if _, ok := s.Find(ref); ok {
		return ref, nil
	}

	var matches []string
	for _, e := range s.Entries() {
		if strings.HasPrefix(e.ID, ref) || strings.HasPrefix(e.ID, plan.EntryPrefix+ref) {
			matches = append(matches, e.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no scheduled activity matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous: matches %d scheduled activities", ref, len(matches))
	}
}

// resolveActivity finds a library activity by exact id, case-insensitive
// name, or unique id prefix.
func resolveActivity(library []activity.Activity, ref string) (activity.Activity, error) {
	ref = strings.TrimSpace(ref)
	if a, ok := activity.Find(library, ref); ok {
		return a, nil
	}

	var matches []activity.Activity
	for _, a := range library {
		if strings.EqualFold(a.Name, ref) {
			return a, nil
		}
		if ref != "" && strings.HasPrefix(a.ID, ref) {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return activity.Activity{}, fmt.Errorf("no activity matches %q (see 'weekendly library')", ref)
	case 1:
		return matches[0], nil
	default:
		return activity.Activity{}, fmt.Errorf("%q is ambiguous: matches %d activities", ref, len(matches))
	}
}

// formatHours formats a duration in whole hours.
func formatHours(h int) string {
	return fmt.Sprintf("%dh", h)
}

// formatLoad renders a bucket's booked hours against its capacity.
func formatLoad(l plan.SlotLoad) string {
	s := fmt.Sprintf("%d/%dh", l.Hours, l.Capacity)
	if l.Over() {
		return formatConflict(s + " ⚠")
	}
	if l.Hours == 0 {
		return formatMuted(s)
	}
	return s
}

// entryLabel is the one-line description of a scheduled entry.
func entryLabel(e plan.ScheduledActivity) string {
	return fmt.Sprintf("%s %s %s", e.Activity.Icon, e.Activity.Name, formatHours(e.DurationHours))
}

// printConflicts writes the conflict report.
func printConflicts(w io.Writer, c plan.Conflicts, mode plan.Mode) {
	if !c.HasConflict {
		fmt.Fprintln(w, formatSuccess("No conflicts."))
		return
	}

	fmt.Fprintf(w, "%s %s\n", formatConflict("Conflicts"), formatMuted("("+mode.String()+" mode)"))
	for _, l := range c.Overloaded {
		fmt.Fprintf(w, "  ⚠ %s %s: %dh booked, %dh available\n",
			l.Day.Title(), l.Slot, l.Hours, l.Capacity)
	}
	if len(c.Pairs) > 0 {
		fmt.Fprintln(w)
		for _, p := range c.Pairs {
			fmt.Fprintf(w, "  • %s %s ↔ %s %s\n",
				p.A.Activity.Name, formatMuted(shortID(p.A.ID)),
				p.B.Activity.Name, formatMuted(shortID(p.B.ID)))
		}
	}
}

// printLibrary writes activities grouped by category in display order.
func printLibrary(w io.Writer, activities []activity.Activity) {
	if len(activities) == 0 {
		fmt.Fprintln(w, "No activities match the current filters.")
		return
	}

	groups := activity.ByCategory(activities)
	first := true
	for _, c := range activity.Categories() {
		group := groups[c]
		if len(group) == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false

		fmt.Fprintf(w, "%s %s\n", formatHeader(c.Label()), formatMuted(fmt.Sprintf("(%d)", len(group))))
		for _, a := range group {
			printActivityRow(w, a)
		}
	}
}

func printActivityRow(w io.Writer, a activity.Activity) {
	marker := ""
	if a.IsCustom() {
		marker = " " + formatInsight("★")
	}
	fmt.Fprintf(w, "  %-16s %s %s%s  %s %s\n",
		shortID(a.ID),
		a.Icon,
		a.Name,
		marker,
		formatCategory(a.Category),
		formatMuted(fmt.Sprintf("· %s · %s energy · %s", formatHours(a.Duration), a.Energy, a.TimeOfDay)),
	)
}

// shareText renders the plan as plain text for sharing.
func shareText(s plan.State) string {
	var sb strings.Builder
	sb.WriteString("My Weekend Plan\n")
	if t := s.SelectedTheme; t != nil {
		fmt.Fprintf(&sb, "Theme: %s (%s)\n", t.Name, t.Mood)
	}

	for _, day := range plan.Days() {
		fmt.Fprintf(&sb, "\n%s\n", day.Title())
		entries := s.Schedule.Day(day)
		if len(entries) == 0 {
			sb.WriteString("  Nothing planned yet\n")
			continue
		}
		for _, slot := range plan.Slots() {
			for _, e := range entries {
				if e.Slot != slot {
					continue
				}
				w := slot.Window()
				fmt.Fprintf(&sb, "  %-9s %s-%s  %s %s (%s)\n",
					titleCase(slot.String()), w.Start, w.End,
					e.Activity.Icon, e.Activity.Name, formatHours(e.DurationHours))
			}
		}
	}
	return sb.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
