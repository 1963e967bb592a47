package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvillagra/gantterm/internal/task"
)

func (a *App) removeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a task or subtask",
		Long: `Remove a task by id. Removing a parent removes its subtasks;
removing a subtask re-derives the parent's dates and progress.

Example:
  gantterm remove 3f2a91c8`,
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

			target := resolveTask(tr, args[0])
			if target == nil {
				return fmt.Errorf("task %q not found", args[0])
			}

			parent := tr.ParentOf(target.ID)
			if err := tr.Remove(target.ID); err != nil {
				return err
			}
			if parent != nil {
				task.Aggregate(parent)
			}

			if err := a.repo.SaveTree(ctx, tr); err != nil {
				return fmt.Errorf("saving tasks: %w", err)
			}

			fmt.Printf("Removed %s: %s\n", target.ID[:8], target.Name)
			return nil
		},
	}

	return cmd
}

// resolveTask finds a task by full id, unique id prefix, or exact name.
func resolveTask(tr task.Tree, key string) *task.Task {
	if t := tr.FindByID(key); t != nil {
		return t
	}

	var match *task.Task
	var matches int
	tr.Walk(func(t *task.Task, _ *task.Task) bool {
		if len(key) >= 4 && len(t.ID) >= len(key) && t.ID[:len(key)] == key {
			match = t
			matches++
		}
		return true
	})
	if matches == 1 {
		return match
	}

	return tr.FindByName(key)
}
