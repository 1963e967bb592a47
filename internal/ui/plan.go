package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvillagra/gantterm/internal/llm"
	"github.com/mvillagra/gantterm/internal/task"
)

func (a *App) planCmd() *cobra.Command {
	var (
		modelFlag string
		dryRun    bool
		compact   bool
	)

	cmd := &cobra.Command{
		Use:   "plan [description]",
		Short: "Plan tasks from natural language input",
		Long: `Use AI to draft a Gantt plan from a natural language description.

The LLM proposes tasks with dates, durations and subtasks. Subtask
dates are filled in sequentially and parents derive their span from
their children.

Examples:
  gantterm plan "Website redesign starting next Monday, 3 phases of a week each"
  gantterm plan "Ship the billing migration in September" --dry-run

Interactive mode:
  After the AI proposes a plan, you can:
  - [a]ccept: Save the tasks to the chart
  - [m]odify: Provide feedback to adjust the proposal
  - [c]ancel: Exit without saving`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			input := strings.Join(args, " ")

			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}

			client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			ctx := context.Background()
			existing, err := a.repo.LoadTree(ctx)
			if err != nil {
				return fmt.Errorf("loading tasks: %w", err)
			}

			p := llm.NewPlanner(client)
			req := llm.PlanRequest{
				Input:            input,
				Today:            time.Now(),
				Existing:         existing,
				UseCompactPrompt: compact,
			}

			fmt.Println("Planning tasks...")
			result, err := p.Plan(ctx, req)
			if err != nil {
				return fmt.Errorf("planning: %w", err)
			}

			messages := p.BuildInitialMessages(req)
			reader := bufio.NewReader(os.Stdin)
			for {
				displayPlanResult(result)

				if dryRun {
					fmt.Println("\n(Dry run - tasks not saved)")
					return nil
				}

				fmt.Print("\n[a]ccept / [m]odify / [c]ancel: ")
				choice, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				choice = strings.TrimSpace(strings.ToLower(choice))

				switch choice {
				case "a", "accept":
					planned := task.BuildTree(result.Payload(), time.Now())
					existing.Tasks = append(existing.Tasks, planned.Tasks...)
					if err := a.repo.SaveTree(ctx, existing); err != nil {
						return fmt.Errorf("saving tasks: %w", err)
					}
					fmt.Printf("\n%d tasks saved\n", planned.Count())
					return nil

				case "m", "modify":
					fmt.Print("What would you like to change? ")
					modification, err := reader.ReadString('\n')
					if err != nil {
						return fmt.Errorf("reading input: %w", err)
					}
					modification = strings.TrimSpace(modification)
					if modification == "" {
						fmt.Println("No modification provided, showing current plan...")
						continue
					}

					fmt.Println("\nReplanning...")
					messages = append(messages, llm.UserMessage(modification))
					result, err = p.PlanWithMessages(ctx, messages)
					if err != nil {
						return fmt.Errorf("replanning: %w", err)
					}

				case "c", "cancel":
					fmt.Println("Planning cancelled.")
					return nil

				default:
					fmt.Println("Invalid choice. Please enter 'a', 'm', or 'c'.")
				}
			}
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the proposed plan without saving")
	cmd.Flags().BoolVar(&compact, "compact", false, "Use a shorter prompt for small local models")

	return cmd
}

// displayPlanResult shows the proposed plan.
func displayPlanResult(result *llm.PlanResponse) {
	fmt.Println()

	if len(result.Warnings) > 0 {
		fmt.Println("Warnings:")
		for _, w := range result.Warnings {
			fmt.Printf("  ! %s\n", formatWarn(w))
		}
		fmt.Println()
	}

	if len(result.Suggestions) > 0 {
		fmt.Println("Suggestions:")
		for _, s := range result.Suggestions {
			fmt.Printf("  * %s\n", s)
		}
		fmt.Println()
	}

	if len(result.Tasks) == 0 {
		fmt.Println("No tasks proposed.")
		return
	}

	fmt.Println(formatHeader("Proposed plan:"))
	for _, t := range result.Tasks {
		span := "unscheduled"
		if t.StartDate != "" {
			span = fmt.Sprintf("%s, %dd", t.StartDate, t.Duration)
		}
		fmt.Printf("  %s (%s, %s)\n", formatBar(t.Name), span, t.Priority)
		for _, sub := range t.Subtasks {
			fmt.Printf("    - %s (%dd)\n", sub.Name, sub.Duration)
		}
	}
}
