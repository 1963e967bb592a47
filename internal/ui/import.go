package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvillagra/gantterm/internal/task"
)

func (a *App) importCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import [file.json]",
		Short: "Import tasks from a JSON plan",
		Long: `Import tasks from a JSON plan file.

The format matches 'gantterm export --format json'. Nested subtasks and
the legacy flat layout (subtasks referencing parents by name) are both
accepted; malformed entries are normalized and orphans dropped. Imported
tasks are appended unless --replace is given.

Example:
  gantterm import plan.json
  gantterm import plan.json --replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading plan file: %w", err)
			}

			payload, err := task.ParsePayload(raw)
			if err != nil {
				return fmt.Errorf("parsing plan file: %w", err)
			}
			imported := task.BuildTree(payload, time.Now())

			ctx := context.Background()
			tr := imported
			if !replace {
				existing, err := a.repo.LoadTree(ctx)
				if err != nil {
					return fmt.Errorf("loading tasks: %w", err)
				}
				existing.Tasks = append(existing.Tasks, imported.Tasks...)
				tr = existing
			}

			if err := a.repo.SaveTree(ctx, tr); err != nil {
				return fmt.Errorf("saving tasks: %w", err)
			}

			fmt.Printf("Imported %d tasks from %s\n", imported.Count(), args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the current plan instead of appending")
	return cmd
}
