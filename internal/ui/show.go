package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekendly/internal/plan"
)

func (a *App) showCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the weekend board",
		Long: `Display Saturday and Sunday with every slot, its booked hours and
any conflicts.

Running weekendly with no command does the same.

Example:
  weekendly show --mode=spanning`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShow(cmd, mode)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Conflict mode: start-slot or spanning (default from config)")

	return cmd
}

func (a *App) runShow(cmd *cobra.Command, modeFlag string) error {
	mode, err := a.conflictMode(modeFlag)
	if err != nil {
		return err
	}

	store, err := a.loadStore(cmd.Context())
	if err != nil {
		return err
	}

	state := store.State()
	w := out(cmd)
	fmt.Fprintln(w, newBoard(state, mode).render(termWidth()))
	fmt.Fprintln(w)

	if state.Schedule.IsEmpty() {
		fmt.Fprintln(w, formatMuted("Nothing planned yet. Try 'weekendly add' or 'weekendly randomize'."))
		return nil
	}
	printConflicts(w, store.Conflicts(plan.WithMode(mode)), mode)
	return nil
}

func (a *App) conflictsCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List overbooked slots",
		Long: `Report every slot whose booked hours exceed its capacity, and the
pairs of activities that share an overbooked slot.

Exits with an error when at least one conflict exists, so it can gate
scripts.

Example:
  weekendly conflicts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.conflictMode(mode)
			if err != nil {
				return err
			}
			store, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}

			c := store.Conflicts(plan.WithMode(m))
			printConflicts(out(cmd), c, m)
			if c.HasConflict {
				return errConflicts
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Conflict mode: start-slot or spanning (default from config)")

	return cmd
}
