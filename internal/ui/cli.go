// Package ui implements the weekendly command line interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekendly/internal/activity"
	"github.com/javiermolinar/weekendly/internal/config"
	"github.com/javiermolinar/weekendly/internal/db"
	"github.com/javiermolinar/weekendly/internal/llm"
	"github.com/javiermolinar/weekendly/internal/logger"
	"github.com/javiermolinar/weekendly/internal/plan"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	repo   plan.Repository
	log    *logger.Logger
	root   *cobra.Command

	debug   bool // Enable debug logging
	noColor bool

	// newClient builds the LLM client used by analyze.
	newClient func(provider, model, baseURL string) (llm.Client, error)
	// newGenerator builds the generator used by randomize.
	newGenerator func(policy plan.Policy) *plan.Generator
}

// NewApp creates a new CLI application with the given config.
// The repository and logger are opened on first use.
func NewApp(cfg *config.Config) *App {
	a := &App{
		config:       cfg,
		newClient:    llm.NewClient,
		newGenerator: plan.NewGenerator,
	}

	a.root = &cobra.Command{
		Use:   "weekendly",
		Short: "Plan your weekend from the terminal",
		Long: `Weekendly is a weekend activity planner.

Pick activities from the library, place them in Saturday and Sunday
time slots, and see at a glance when a slot is overbooked.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.noColor || a.config.UI.NoColor {
				DisableColor()
			}
			return a.ensureLogger()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShow(cmd, "")
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (also logs to stderr)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.conflictsCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.clearCmd())
	a.root.AddCommand(a.randomizeCmd())
	a.root.AddCommand(a.libraryCmd())
	a.root.AddCommand(a.createCmd())
	a.root.AddCommand(a.themeCmd())
	a.root.AddCommand(a.suggestCmd())
	a.root.AddCommand(a.analyzeCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.historyCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "weekendly %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository and the log file.
func (a *App) Close() error {
	var err error
	if a.repo != nil {
		if err = a.repo.Close(); err != nil && a.log != nil {
			a.log.Warn("closing repository", "err", err)
		}
		a.repo = nil
	}
	if a.log != nil {
		_ = a.log.Close()
	}
	return err
}

func (a *App) ensureLogger() error {
	if a.log != nil {
		return nil
	}
	l, err := logger.New(logger.Options{
		Debug: a.debug,
		Level: a.config.Log.Level,
		Dir:   a.config.Log.Dir,
	})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.log = l
	return nil
}

func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.Open(a.config.Storage.Driver, a.config.Storage.DBPath, a.config.Storage.History)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	a.repo = repo
	a.log.Debug("storage opened", "driver", a.config.Storage.Driver, "path", a.config.Storage.DBPath)
	return nil
}

// newStore returns a store in the initial state over the built-in library.
func (a *App) newStore() *plan.Store {
	gen := a.newGenerator(a.config.EmptyPoolPolicy())
	return plan.NewStore(plan.NewReducer(activity.Default(), gen))
}

// loadStore opens the repository and hydrates a store from the latest snapshot.
func (a *App) loadStore(ctx context.Context) (*plan.Store, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}

	store := a.newStore()
	dropped, err := store.Load(ctx, a.repo)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		a.log.Warn("ignored invalid snapshot fields", "fields", dropped)
	}
	return store, nil
}

// update loads the store, dispatches the actions in order and saves the
// result. Nothing is saved if any action fails.
func (a *App) update(ctx context.Context, actions ...plan.Action) (*plan.Store, error) {
	store, err := a.loadStore(ctx)
	if err != nil {
		return nil, err
	}

	for _, act := range actions {
		if err := store.Dispatch(act); err != nil {
			a.log.Debug("action rejected", "action", plan.ActionName(act), "err", err)
			return nil, err
		}
		a.log.Debug("action applied", "action", plan.ActionName(act))
	}

	if err := store.Save(ctx, a.repo); err != nil {
		return nil, err
	}
	return store, nil
}

// conflictMode resolves a --mode flag against the configured default.
func (a *App) conflictMode(flag string) (plan.Mode, error) {
	if flag == "" {
		return a.config.ConflictMode(), nil
	}
	return plan.ParseMode(flag)
}

var (
	// errAborted reports a user-declined confirmation.
	errAborted = errors.New("aborted")
	// errConflicts makes the conflicts command exit non-zero.
	errConflicts = errors.New("schedule has conflicts")
)

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
