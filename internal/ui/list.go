package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvillagra/gantterm/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the task tree",
		Long: `List every task and subtask with its schedule and progress.

Late tasks are highlighted; parents derive their dates and progress
from their subtasks.`,
		Example: `  gantterm list
  gantterm list --no-color`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			tr, err := a.repo.LoadTree(context.Background())
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			if tr.Empty() {
				fmt.Println("No tasks yet. Run 'gantterm add' or 'gantterm plan' to create some.")
				return nil
			}

			now := time.Now()
			for _, t := range tr.Tasks {
				printTaskLine(t, nil, now)
				for _, sub := range t.Subtasks {
					printTaskLine(sub, t, now)
				}
			}

			fmt.Println()
			PrintStats(CollectStats(tr, now))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func printTaskLine(t *task.Task, parent *task.Task, now time.Time) {
	indent := ""
	paint := formatBar
	if parent != nil {
		indent = "    "
		paint = formatSubtask
	}

	// Keep the fixed columns on one line in narrow terminals.
	label := t.Name
	if max := termWidth() - 52; max > 8 && len(label) > max {
		label = label[:max-1] + "…"
	}

	name := paint(label)
	switch {
	case isLate(t, now):
		name = formatLate(label)
	case t.Progress >= 100:
		name = formatDone(label)
	}

	fmt.Printf("%s%s %s  %s  %s %3d%%  %s\n",
		indent,
		statusSymbol(t, now),
		t.ID[:8],
		formatSpan(t),
		ProgressBar(t.Progress, 10),
		t.Progress,
		name,
	)
}

func statusSymbol(t *task.Task, now time.Time) string {
	switch {
	case t.Progress >= 100:
		return "✓"
	case isLate(t, now):
		return "!"
	case t.Progress > 0:
		return "◐"
	default:
		return "○"
	}
}
