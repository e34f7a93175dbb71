package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekendly/internal/activity"
	"github.com/javiermolinar/weekendly/internal/plan"
)

func (a *App) libraryCmd() *cobra.Command {
	var (
		query      string
		categories []string
		energy     string
		timeOfDay  string
		reset      bool
	)

	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"ls"},
		Short:   "Browse the activity library",
		Long: `List the activities you can schedule, grouped by category.

Filters are remembered between runs; pass --reset to clear them.
Custom activities are marked with a star.

Example:
  weekendly library --category=outdoor,wellness --energy=low
  weekendly library --query=coffee
  weekendly library --reset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			var u plan.FiltersUpdate

			if reset {
				f := activity.DefaultFilters()
				u = plan.FiltersUpdate{
					Query:      &f.Query,
					Categories: f.Categories,
					Energy:     &f.Energy,
					TimeOfDay:  &f.TimeOfDay,
				}
			}
			if flags.Changed("query") {
				q := strings.TrimSpace(query)
				u.Query = &q
			}
			if flags.Changed("category") {
				cats, err := parseCategories(categories)
				if err != nil {
					return err
				}
				u.Categories = cats
			}
			if flags.Changed("energy") {
				e, err := parseEnergyFilter(energy)
				if err != nil {
					return err
				}
				u.Energy = &e
			}
			if flags.Changed("time") {
				t, err := activity.ParseTimeOfDay(timeOfDay)
				if err != nil {
					return err
				}
				u.TimeOfDay = &t
			}

			load := a.loadStore
			if !u.Empty() {
				load = func(ctx context.Context) (*plan.Store, error) {
					return a.update(ctx, plan.SetFilters{Update: u})
				}
			}
			store, err := load(cmd.Context())
			if err != nil {
				return err
			}

			state := store.State()
			w := out(cmd)
			if state.Filters.Active() {
				fmt.Fprintln(w, formatMuted("Filters: "+describeFilters(state.Filters)))
				fmt.Fprintln(w)
			}
			printLibrary(w, activity.Filter(state.Activities, state.Filters))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search names and descriptions")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Categories to show (comma-separated, empty for all)")
	cmd.Flags().StringVar(&energy, "energy", "", "Energy: low, medium, high or any")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Time of day: morning, afternoon, evening, night or any")
	cmd.Flags().BoolVar(&reset, "reset", false, "Clear all filters first")

	return cmd
}

func (a *App) createCmd() *cobra.Command {
	var f activity.Form

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a custom activity to the library",
		Long: `Create your own activity. It is saved with your plan and can be
scheduled like any built-in one.

Example:
  weekendly create --name="Pottery class" --category=creative --duration=2 \
    --time=afternoon --description="Wheel throwing at the studio"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			act, err := activity.NewCustom(f)
			if err != nil {
				return err
			}
			if _, err := a.update(cmd.Context(), plan.AddCustomActivity{Activity: act}); err != nil {
				return err
			}

			w := out(cmd)
			fmt.Fprintf(w, "%s %s %s %s\n", formatSuccess("Created"), act.Icon, act.Name, formatMuted(shortID(act.ID)))
			fmt.Fprintf(w, "Schedule it with: weekendly add %s --day=saturday --slot=%s\n", shortID(act.ID), suggestedSlot(act))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Name, "name", "", "Activity name (required)")
	cmd.Flags().StringVar(&f.Category, "category", "", "Category: meal, outdoor, indoor, social, wellness or creative (required)")
	cmd.Flags().IntVar(&f.Duration, "duration", 1, fmt.Sprintf("Duration in hours (%d-%d)", activity.MinDuration, activity.MaxDuration))
	cmd.Flags().StringVar(&f.TimeOfDay, "time", "any", "Preferred time: morning, afternoon, evening, night or any")
	cmd.Flags().StringVar(&f.Energy, "energy", "medium", "Energy: low, medium or high")
	cmd.Flags().StringVar(&f.Icon, "icon", "", "Icon (default "+activity.DefaultIcon+")")
	cmd.Flags().StringVar(&f.Description, "description", "", "Short description (required)")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func (a *App) themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [id]",
		Short: "List or select a weekend theme",
		Long: `Without arguments, list the available themes. With an id, select
that theme; 'default' clears the selection.

Example:
  weekendly theme
  weekendly theme cozy-homebody`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := out(cmd)
			if len(args) == 0 {
				store, err := a.loadStore(cmd.Context())
				if err != nil {
					return err
				}
				printThemes(w, store.State().SelectedTheme)
				return nil
			}

			var t *activity.Theme
			if id := strings.ToLower(strings.TrimSpace(args[0])); id != activity.DefaultThemeID {
				if t = activity.ThemeByID(id); t == nil {
					return fmt.Errorf("unknown theme %q (see 'weekendly theme')", args[0])
				}
			}

			if _, err := a.update(cmd.Context(), plan.SetTheme{Theme: t}); err != nil {
				return err
			}
			if t == nil {
				fmt.Fprintln(w, formatSuccess("Theme cleared."))
				return nil
			}
			fmt.Fprintf(w, "%s %s %s\n", formatSuccess("Theme set:"), t.Name, formatMuted("("+t.Mood+")"))
			return nil
		},
	}
}

func (a *App) suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Suggest activities for the selected theme",
		Long: `Show up to five activities that fit the selected theme, favoring the
theme's own picks. Suggestions need a theme and no active filters.

Example:
  weekendly theme adventure-seeker
  weekendly suggest`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}

			state := store.State()
			w := out(cmd)
			switch {
			case state.SelectedTheme == nil:
				fmt.Fprintln(w, "No theme selected. Pick one with 'weekendly theme <id>'.")
				return nil
			case state.Filters.Active():
				fmt.Fprintln(w, "Suggestions are hidden while library filters are active ('weekendly library --reset').")
				return nil
			}

			suggestions := activity.Suggest(state.Activities, state.Filters, state.SelectedTheme)
			fmt.Fprintf(w, "%s %s\n", formatHeader("Suggested for"), state.SelectedTheme.Name)
			for _, act := range suggestions {
				printActivityRow(w, act)
			}
			return nil
		},
	}
}

func printThemes(w io.Writer, selected *activity.Theme) {
	for _, t := range activity.Themes() {
		marker := "  "
		if selected != nil && selected.ID == t.ID {
			marker = formatSuccess("● ")
		}
		fmt.Fprintf(w, "%s%-18s %s %s\n", marker, t.ID, t.Name, formatMuted("("+t.Mood+")"))
	}
	if selected == nil {
		fmt.Fprintln(w, formatMuted("\nNo theme selected."))
	}
}

func parseCategories(values []string) ([]activity.Category, error) {
	cats := []activity.Category{}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		c, err := activity.ParseCategory(v)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}

func parseEnergyFilter(s string) (activity.Energy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(activity.EnergyAny) {
		return activity.EnergyAny, nil
	}
	return activity.ParseEnergy(s)
}

func describeFilters(f activity.Filters) string {
	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("query=%q", f.Query))
	}
	if len(f.Categories) > 0 {
		names := make([]string, len(f.Categories))
		for i, c := range f.Categories {
			names[i] = string(c)
		}
		parts = append(parts, "category="+strings.Join(names, ","))
	}
	if f.Energy != "" && f.Energy != activity.EnergyAny {
		parts = append(parts, "energy="+string(f.Energy))
	}
	if f.TimeOfDay != "" && f.TimeOfDay != activity.TimeAny {
		parts = append(parts, "time="+string(f.TimeOfDay))
	}
	return strings.Join(parts, " ")
}

// suggestedSlot maps an activity's preferred time to a slot name.
func suggestedSlot(act activity.Activity) string {
	if s, err := plan.ParseSlot(string(act.TimeOfDay)); err == nil {
		return s.String()
	}
	return plan.Morning.String()
}
