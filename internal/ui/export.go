package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekendly/internal/plan"
)

// Export formats.
const (
	formatJSON = "json"
	formatText = "text"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		format string
		toClip bool
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the plan as JSON or shareable text",
		Long: `Write the current plan to a file, or to stdout when no file is given.

The json format is the full snapshot and can be read back with
'weekendly import'. The text format is a short summary for sharing.

Examples:
  weekendly export weekend.json
  weekendly export --format=text --clipboard`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case formatJSON:
				if data, err = plan.EncodeSnapshot(store.State()); err != nil {
					return err
				}
				data = append(data, '\n')
			case formatText:
				data = []byte(shareText(store.State()))
			default:
				return fmt.Errorf("invalid format %q: must be json or text", format)
			}

			w := out(cmd)
			if toClip {
				if err := clipboard.WriteAll(string(data)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(w, formatSuccess("Copied to clipboard."))
			}

			if len(args) == 0 {
				if !toClip {
					_, err := w.Write(data)
					return err
				}
				return nil
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(w, "%s %s\n", formatSuccess("Exported to"), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json or text")
	cmd.Flags().BoolVarP(&toClip, "clipboard", "c", false, "Copy the output to the clipboard")

	return cmd
}
