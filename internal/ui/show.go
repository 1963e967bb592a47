package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvillagra/gantterm/internal/advisor"
)

func (a *App) showCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one task in detail",
		Long: `Display a task with its schedule, progress, assignees and any
advisor warnings. Accepts a full id, a unique id prefix, or a name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			tr, err := a.repo.LoadTree(context.Background())
			if err != nil {
				return fmt.Errorf("loading tasks: %w", err)
			}

			t := resolveTask(tr, args[0])
			if t == nil {
				return fmt.Errorf("task %q not found", args[0])
			}
			now := time.Now()

			fmt.Printf("%s  %s\n", formatHeader(t.Name), formatMuted(t.ID))
			fmt.Printf("  schedule  %s\n", formatSpan(t))
			progress := fmt.Sprintf("%s %d%%", ProgressBar(t.Progress, 20), t.Progress)
			if t.ProgressCalculated {
				progress += formatMuted(" (derived from subtasks)")
			}
			fmt.Printf("  progress  %s\n", progress)
			fmt.Printf("  priority  %s\n", t.Priority)
			if len(t.Assignees) > 0 {
				fmt.Printf("  assigned  %s\n", strings.Join(t.Assignees, ", "))
			}
			if isLate(t, now) {
				fmt.Printf("  %s\n", formatLate("past its end date"))
			}

			if msg, ok := advisor.Alert(t); ok {
				fmt.Printf("\n%s %s\n", formatWarn("Alert:"), msg)
			}
			if suggestions := advisor.Suggestions(t); len(suggestions) > 0 {
				fmt.Printf("\n%s\n", formatHeader("Suggestions"))
				for _, s := range suggestions {
					fmt.Printf("  - %s\n", s.Text)
				}
			}

			if t.HasSubtasks() {
				fmt.Printf("\n%s\n", formatHeader("Subtasks"))
				for _, sub := range t.Subtasks {
					printTaskLine(sub, t, now)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
