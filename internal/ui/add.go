package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvillagra/gantterm/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		start    string
		duration int
		priority string
		colorHex string
		parent   string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task or subtask",
		Long: `Add a task to the chart. With --parent the task becomes a subtask;
the parent's dates and progress are re-derived from its children.

Example:
  gantterm add "Design review" --start=2025-09-01 --duration=3 --priority=high
  gantterm add "Wireframes" --parent="Design review" --duration=2`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			tr, err := a.repo.LoadTree(ctx)
			if err != nil {
				return fmt.Errorf("loading tasks: %w", err)
			}

			var created *task.Task
			if parent != "" {
				p := tr.FindByID(parent)
				if p == nil {
					p = tr.FindByName(parent)
				}
				if p == nil {
					return fmt.Errorf("parent %q not found", parent)
				}
				created, err = task.NewSubtask(p, args[0], start, duration)
				if err != nil {
					return err
				}
				task.InitializeSubtaskDates(p, time.Now())
				task.Aggregate(p)
			} else {
				created, err = task.New(args[0], start, priority, duration)
				if err != nil {
					return err
				}
				created.Color = colorHex
				tr.Tasks = append(tr.Tasks, created)
			}

			if err := a.repo.SaveTree(ctx, tr); err != nil {
				return fmt.Errorf("saving tasks: %w", err)
			}

			fmt.Printf("Created %s: %s %s\n", created.ID[:8], created.Name, formatSpan(created))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, empty for unscheduled)")
	cmd.Flags().IntVar(&duration, "duration", 1, "Duration in days")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority: low, medium, high or critical")
	cmd.Flags().StringVar(&colorHex, "color", "", "Bar color (#rrggbb)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent task id or name (creates a subtask)")

	return cmd
}
