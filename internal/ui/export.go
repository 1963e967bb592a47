package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvillagra/gantterm/internal/export"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the chart",
		Long: `Export the chart to a file or stdout.

Formats:
  svg      the rendered chart with bars and dependency connectors
  csv      a flat CSV listing
  project  an MS Project compatible CSV (outline levels, WBS, priorities)
  json     the plan as import-compatible JSON

Example:
  gantterm export --format svg -o plan.svg
  gantterm export --format project -o plan.csv`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			tr, err := a.repo.LoadTree(context.Background())
			if err != nil {
				return fmt.Errorf("loading tasks: %w", err)
			}

			w := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			switch format {
			case "svg":
				err = export.WriteSVG(w, tr, time.Now(), a.config.Zoom())
			case "csv":
				err = export.WriteCSV(w, tr)
			case "project":
				err = export.WriteProjectCSV(w, tr)
			case "json":
				err = export.WriteJSON(w, tr)
			default:
				return fmt.Errorf("unknown format %q (want svg, csv, project or json)", format)
			}
			if err != nil {
				return fmt.Errorf("exporting %s: %w", format, err)
			}

			if output != "" {
				fmt.Printf("Exported %s to %s\n", format, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "svg", "Output format: svg, csv, project or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
