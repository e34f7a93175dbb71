package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekendly/internal/db"
	"github.com/javiermolinar/weekendly/internal/plan"
)

// snapshotHistory is implemented by repositories that keep past snapshots.
type snapshotHistory interface {
	History(ctx context.Context, limit int) ([]db.Record, error)
	Snapshot(ctx context.Context, id int64) (db.Record, error)
}

func (a *App) historyCmd() *cobra.Command {
	var (
		limit   int
		restore int64
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or restore previous saves",
		Long: `Every change saves a new snapshot. List the most recent ones, or
restore one by its number. Restoring also saves, so it can be undone.

Requires the sqlite storage driver.

Examples:
  weekendly history
  weekendly history --restore=12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			h, ok := a.repo.(snapshotHistory)
			if !ok {
				return fmt.Errorf("history needs the %s storage driver, using %s", db.DriverSQLite, a.config.Storage.Driver)
			}

			ctx := cmd.Context()
			if cmd.Flags().Changed("restore") {
				return a.restoreSnapshot(cmd, h, restore)
			}

			records, err := h.History(ctx, limit)
			if err != nil {
				return err
			}
			w := out(cmd)
			if len(records) == 0 {
				fmt.Fprintln(w, "No saved snapshots yet.")
				return nil
			}
			for i, r := range records {
				snap := plan.DecodeSnapshot(r.Payload)
				entries := 0
				if snap.Schedule != nil {
					entries = snap.Schedule.Len()
				}
				marker := "  "
				if i == 0 {
					marker = formatSuccess("● ")
				}
				fmt.Fprintf(w, "%s#%-5d %s  %d activities\n",
					marker, r.ID, formatMuted(r.CreatedAt.Local().Format(time.DateTime)), entries)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", db.DefaultHistory, "Number of snapshots to list")
	cmd.Flags().Int64Var(&restore, "restore", 0, "Restore the snapshot with this number")

	return cmd
}

func (a *App) restoreSnapshot(cmd *cobra.Command, h snapshotHistory, id int64) error {
	ctx := cmd.Context()
	rec, err := h.Snapshot(ctx, id)
	if errors.Is(err, db.ErrSnapshotNotFound) {
		return fmt.Errorf("no snapshot #%d (see 'weekendly history')", id)
	}
	if err != nil {
		return err
	}

	store := a.newStore()
	snap := plan.DecodeSnapshot(rec.Payload)
	store.Hydrate(snap)
	if len(snap.Dropped) > 0 {
		a.log.Warn("ignored invalid snapshot fields", "id", id, "fields", snap.Dropped)
	}
	if err := store.Save(ctx, a.repo); err != nil {
		return err
	}

	fmt.Fprintf(out(cmd), "%s snapshot #%d from %s\n",
		formatSuccess("Restored"), id, rec.CreatedAt.Local().Format(time.DateTime))
	return nil
}
