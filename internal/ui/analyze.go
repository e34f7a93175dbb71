package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekendly/internal/llm"
)

func (a *App) analyzeCmd() *cobra.Command {
	var (
		modelFlag string
		prompt    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask an LLM for feedback on the weekend",
		Long: `Send the current weekend to the configured LLM and print its
feedback on balance, timing and energy.

The provider, model and base URL come from the [llm] config section.

Examples:
  weekendly analyze
  weekendly analyze --model=llama3.1
  weekendly analyze --prompt   # print what would be sent, without calling the LLM`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.loadStore(ctx)
			if err != nil {
				return err
			}
			schedule := store.Schedule()
			w := out(cmd)

			if schedule.IsEmpty() {
				fmt.Fprintln(w, "Nothing planned yet, so there is nothing to analyze.")
				return nil
			}
			if prompt {
				fmt.Fprintln(w, llm.FormatSchedule(schedule))
				return nil
			}

			// Use config default for model if not overridden
			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}

			client, err := a.newClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			fmt.Fprintln(w, formatMuted("Analyzing your weekend..."))
			a.log.Debug("analyzing schedule", "provider", a.config.LLM.Provider, "model", model, "entries", schedule.Len())

			insight, err := llm.NewAnalyzer(client).AnalyzeSchedule(ctx, schedule)
			if err != nil {
				return err
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, formatInsight(insight))
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Model to use (default from config)")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "Print the schedule summary instead of calling the LLM")

	return cmd
}
