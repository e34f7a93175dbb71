package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/weekendly/internal/activity"
)

// Color definitions for consistent styling across the UI.
var (
	// Conflicts: bold red so overbooked slots stand out
	colorConflict = color.New(color.FgRed, color.Bold)

	// Insight/results: yellow to make it pop
	colorInsight = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Success: green for applied changes
	colorSuccess = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	categoryColors = map[activity.Category]*color.Color{
		activity.CategoryMeal:     color.New(color.FgYellow),
		activity.CategoryOutdoor:  color.New(color.FgGreen),
		activity.CategoryIndoor:   color.New(color.FgWhite),
		activity.CategorySocial:   color.New(color.FgMagenta),
		activity.CategoryWellness: color.New(color.FgCyan),
		activity.CategoryCreative: color.New(color.FgRed),
	}
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatConflict formats text for conflict warnings.
func formatConflict(s string) string {
	return colorConflict.Sprint(s)
}

// formatInsight formats text for insight/analysis output.
func formatInsight(s string) string {
	return colorInsight.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatSuccess formats text for confirmations.
func formatSuccess(s string) string {
	return colorSuccess.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatCategory colors a category label.
func formatCategory(c activity.Category) string {
	if col, ok := categoryColors[c]; ok {
		return col.Sprint(string(c))
	}
	return string(c)
}
