package ui

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekendly/internal/plan"
)

func (a *App) addCmd() *cobra.Command {
	var (
		day   string
		slot  string
		hours int
	)

	cmd := &cobra.Command{
		Use:   "add [activity]",
		Short: "Schedule an activity",
		Long: `Place a library activity in a day and time slot.

The activity can be given by id, name or a unique id prefix. Without
--hours the activity's own duration is used.

Example:
  weekendly add "Nature Hike" --day=saturday --slot=morning
  weekendly add brunch-001 --day=sunday --slot=morning --hours=3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := plan.ParseDay(day)
			if err != nil {
				return err
			}
			s, err := plan.ParseSlot(slot)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := a.loadStore(ctx)
			if err != nil {
				return err
			}

			act, err := resolveActivity(store.State().Activities, args[0])
			if err != nil {
				return err
			}

			var entry plan.ScheduledActivity
			if cmd.Flags().Changed("hours") {
				entry, err = store.AddWithHours(act, d, s, hours)
			} else {
				entry, err = store.Add(act, d, s)
			}
			if err != nil {
				return err
			}
			if err := store.Save(ctx, a.repo); err != nil {
				return err
			}
			a.log.Debug("activity scheduled", "id", entry.ID, "activity", act.ID, "day", d, "slot", s)

			w := out(cmd)
			fmt.Fprintf(w, "%s %s on %s %s %s\n",
				formatSuccess("Scheduled"),
				entryLabel(entry),
				d.Title(),
				s,
				formatMuted(shortID(entry.ID)),
			)
			a.warnIfOver(w, store, d, s)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day: saturday or sunday (required)")
	cmd.Flags().StringVar(&slot, "slot", "", "Slot: morning, afternoon, evening or night (required)")
	cmd.Flags().IntVar(&hours, "hours", 0, "Duration in hours (default: the activity's duration)")

	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("slot")

	return cmd
}

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove [id]",
		Aliases: []string{"rm"},
		Short:   "Remove a scheduled activity",
		Long: `Remove a scheduled activity by id or unique id prefix.

Example:
  weekendly remove sched-1a2b3c4d`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.loadStore(ctx)
			if err != nil {
				return err
			}

			id, err := resolveEntryID(store.Schedule(), args[0])
			if err != nil {
				return err
			}
			entry, _ := store.Schedule().Find(id)

			store.Remove(id)
			if err := store.Save(ctx, a.repo); err != nil {
				return err
			}

			fmt.Fprintf(out(cmd), "%s %s from %s %s\n",
				formatSuccess("Removed"), entryLabel(entry), entry.Day.Title(), entry.Slot)
			return nil
		},
	}
}

func (a *App) editCmd() *cobra.Command {
	var (
		day      string
		slot     string
		hours    int
		activity string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Move or resize a scheduled activity",
		Long: `Change the day, slot, duration or activity of a scheduled entry.
Only the flags given are changed.

Example:
  weekendly edit sched-1a2b --slot=afternoon
  weekendly edit sched-1a2b --day=sunday --hours=2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var u plan.Update
			if flags.Changed("day") {
				d, err := plan.ParseDay(day)
				if err != nil {
					return err
				}
				u.Day = &d
			}
			if flags.Changed("slot") {
				s, err := plan.ParseSlot(slot)
				if err != nil {
					return err
				}
				u.Slot = &s
			}
			if flags.Changed("hours") {
				u.DurationHours = &hours
			}

			ctx := cmd.Context()
			store, err := a.loadStore(ctx)
			if err != nil {
				return err
			}

			if flags.Changed("activity") {
				act, err := resolveActivity(store.State().Activities, activity)
				if err != nil {
					return err
				}
				u.Activity = &act
			}
			if u.IsZero() {
				return fmt.Errorf("nothing to change: pass --day, --slot, --hours or --activity")
			}

			id, err := resolveEntryID(store.Schedule(), args[0])
			if err != nil {
				return err
			}
			if err := store.Update(id, u); err != nil {
				return err
			}
			if err := store.Save(ctx, a.repo); err != nil {
				return err
			}

			entry, _ := store.Schedule().Find(id)
			w := out(cmd)
			fmt.Fprintf(w, "%s %s now on %s %s\n",
				formatSuccess("Updated"), entryLabel(entry), entry.Day.Title(), entry.Slot)
			a.warnIfOver(w, store, entry.Day, entry.Slot)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "New day: saturday or sunday")
	cmd.Flags().StringVar(&slot, "slot", "", "New slot: morning, afternoon, evening or night")
	cmd.Flags().IntVar(&hours, "hours", 0, "New duration in hours")
	cmd.Flags().StringVar(&activity, "activity", "", "Swap in another library activity")

	return cmd
}

func (a *App) clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every scheduled activity",
		Long: `Empty both Saturday and Sunday. The theme, filters and custom
activities are kept.

Example:
  weekendly clear --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes && !promptYesNo(bufio.NewReader(cmd.InOrStdin()), out(cmd), "Clear the whole weekend?") {
				return errAborted
			}
			if _, err := a.update(cmd.Context(), plan.Clear{}); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), formatSuccess("Weekend cleared."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func (a *App) randomizeCmd() *cobra.Command {
	var (
		mode string
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "randomize",
		Short: "Replace the weekend with a random plan",
		Long: `Generate a fresh weekend: something for wellness in the morning,
an outdoor afternoon, a meal in the evening and a night out, for both
days. The current schedule is replaced.

Example:
  weekendly randomize
  weekendly randomize --seed=42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.conflictMode(mode)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				policy := a.config.EmptyPoolPolicy()
				a.newGenerator = func(plan.Policy) *plan.Generator {
					return plan.NewSeededGenerator(policy, seed)
				}
			}

			store, err := a.update(cmd.Context(), plan.Randomize{})
			if err != nil {
				return err
			}

			state := store.State()
			w := out(cmd)
			fmt.Fprintf(w, "%s %d activities\n\n", formatSuccess("Planned"), state.Schedule.Len())
			fmt.Fprintln(w, newBoard(state, m).render(termWidth()))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Conflict mode for the board: start-slot or spanning")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible plan")

	return cmd
}

// warnIfOver prints a warning when the slot is over capacity.
func (a *App) warnIfOver(w io.Writer, store *plan.Store, day plan.Day, slot plan.Slot) {
	mode := a.config.ConflictMode()
	entries := store.Schedule().Entries()
	if !plan.IsSlotOverCapacity(entries, day, slot, mode) {
		return
	}
	fmt.Fprintf(w, "%s %s %s has %dh booked, %dh available\n",
		formatConflict("⚠ Conflict:"),
		day.Title(),
		slot,
		plan.SlotHours(entries, day, slot, mode),
		slot.Capacity(),
	)
}
