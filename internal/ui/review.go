package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvillagra/gantterm/internal/advisor"
	"github.com/mvillagra/gantterm/internal/llm"
)

func (a *App) reviewCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review the plan's health",
		Long: `Check the plan for schedule risk.

By default the LLM writes a short report. With --offline only the
built-in heuristics run: long tasks that are behind pace are flagged.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			tr, err := a.repo.LoadTree(context.Background())
			if err != nil {
				return fmt.Errorf("loading tasks: %w", err)
			}
			if tr.Empty() {
				fmt.Println("Nothing to review.")
				return nil
			}

			alerts := advisor.Review(tr)
			if len(alerts) == 0 {
				fmt.Println("No schedule alerts.")
			} else {
				fmt.Println(formatHeader("Schedule alerts"))
				for id, msg := range alerts {
					if t := tr.FindByID(id); t != nil {
						fmt.Printf("  ! %s: %s\n", t.Name, formatWarn(msg))
					}
				}
			}

			if offline {
				return nil
			}

			client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			fmt.Println("\nAsking the model for a report...")
			report, err := llm.NewReviewer(client).Review(context.Background(), tr, time.Now())
			if err != nil {
				return fmt.Errorf("reviewing plan: %w", err)
			}

			fmt.Printf("\n%s\n%s\n", formatHeader("Review"), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the LLM and run heuristics only")
	return cmd
}
