package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekendly/internal/plan"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a plan exported as JSON",
		Long: `Merge a JSON snapshot into the current plan.

Fields present in the file replace the current ones; custom activities
are added to the library. Invalid entries are skipped and reported.

Example:
  weekendly import ~/Downloads/weekend.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}
			if sourcePath == destPath {
				return fmt.Errorf("import file is the current storage file")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("import file does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking import file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("import path is a directory: %s", sourcePath)
			}

			data, err := os.ReadFile(sourcePath)
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}

			snap := plan.DecodeSnapshot(data)
			if slices.Contains(snap.Dropped, "snapshot") {
				return fmt.Errorf("%s is not a weekendly JSON export", sourcePath)
			}
			store, err := a.update(cmd.Context(), plan.Import{Snapshot: snap})
			if err != nil {
				return err
			}

			w := out(cmd)
			fmt.Fprintf(w, "%s %d scheduled activities from %s\n",
				formatSuccess("Imported"), store.Schedule().Len(), sourcePath)
			if len(snap.Dropped) > 0 {
				fmt.Fprintf(w, "%s %s\n", formatConflict("Skipped invalid fields:"), strings.Join(snap.Dropped, ", "))
			}
			return nil
		},
	}

	return cmd
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
