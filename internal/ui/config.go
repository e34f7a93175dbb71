package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekendly/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  weekendly config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(path, cmd.InOrStdin(), out(cmd))
		},
	}

	cmd.Flags().StringVar(&path, "path", config.DefaultConfigPath(), "Config file to edit")

	return cmd
}

func runConfigInteractive(configPath string, in io.Reader, w io.Writer) error {
	fmt.Fprintf(w, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(w, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(w, "Created %s\n\n", configPath)
	}

	printConfig(w, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, w, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Plan.ConflictMode = promptValue(reader, w, "Conflict mode (start-slot, spanning)", cfg.Plan.ConflictMode)
	cfg.Plan.EmptyPool = promptValue(reader, w, "Empty pool policy (error, skip)", cfg.Plan.EmptyPool)
	cfg.LLM.Provider = promptValue(reader, w, "LLM provider (ollama, openai, lmstudio)", cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, w, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, w, "LLM base URL (empty for provider default)", cfg.LLM.BaseURL)
	cfg.Storage.Driver = promptValue(reader, w, "Storage driver (sqlite, json)", cfg.Storage.Driver)
	cfg.Storage.DBPath = promptValue(reader, w, "Database path", cfg.Storage.DBPath)
	cfg.Storage.History = promptInt(reader, w, "Snapshots to keep (0 keeps all)", cfg.Storage.History)
	cfg.Log.Level = promptValue(reader, w, "Log level (debug, info, warn, error)", cfg.Log.Level)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(w, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[plan]")
	fmt.Fprintf(w, "  conflict_mode = %s\n", cfg.Plan.ConflictMode)
	fmt.Fprintf(w, "  empty_pool    = %s\n", cfg.Plan.EmptyPool)
	fmt.Fprintln(w, "\n[llm]")
	fmt.Fprintf(w, "  provider      = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(w, "  model         = %s\n", cfg.LLM.Model)
	fmt.Fprintf(w, "  base_url      = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  driver        = %s\n", cfg.Storage.Driver)
	fmt.Fprintf(w, "  db_path       = %s\n", cfg.Storage.DBPath)
	fmt.Fprintf(w, "  history       = %d\n", cfg.Storage.History)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  no_color      = %t\n", cfg.UI.NoColor)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level         = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  dir           = %s\n", cfg.Log.Dir)
}

func promptYesNo(reader *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, w io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(w, "  %s: ", label)
	} else {
		fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, w io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, w, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 {
			return n
		}
		fmt.Fprintf(w, "  Invalid number %q.\n", value)
	}
}
