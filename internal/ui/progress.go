package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mvillagra/gantterm/internal/task"
)

func (a *App) progressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress [id] [value]",
		Short: "Set a task's progress",
		Long: `Set completion progress (0-100) on a task or subtask.

A parent with subtasks derives its progress from them and cannot be
set directly. Setting a subtask re-derives its parent.

Example:
  gantterm progress 3f2a91c8 75`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("progress must be a number: %q", args[1])
			}

			ctx := context.Background()
			tr, err := a.repo.LoadTree(ctx)
			if err != nil {
				return fmt.Errorf("loading tasks: %w", err)
			}

			t := resolveTask(tr, args[0])
			if t == nil {
				return fmt.Errorf("task %q not found", args[0])
			}
			if t.ProgressCalculated && t.HasSubtasks() {
				return fmt.Errorf("progress of %q is derived from its subtasks", t.Name)
			}

			if err := t.SetProgress(value); err != nil {
				return err
			}
			if parent := tr.ParentOf(t.ID); parent != nil {
				task.Aggregate(parent)
			}

			if err := a.repo.SaveTree(ctx, tr); err != nil {
				return fmt.Errorf("saving tasks: %w", err)
			}

			fmt.Printf("%s: %s %d%%\n", t.Name, ProgressBar(t.Progress, 10), t.Progress)
			return nil
		},
	}

	return cmd
}
