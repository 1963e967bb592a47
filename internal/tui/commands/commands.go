// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mvillagra/gantterm/internal/advisor"
	"github.com/mvillagra/gantterm/internal/chart"
	"github.com/mvillagra/gantterm/internal/config"
	"github.com/mvillagra/gantterm/internal/export"
	"github.com/mvillagra/gantterm/internal/llm"
	"github.com/mvillagra/gantterm/internal/task"
)

// TreeLoadedMsg is sent when the task tree is loaded from the repository.
type TreeLoadedMsg struct {
	Tree task.Tree
}

// TreeSavedMsg is sent after a successful persist.
type TreeSavedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// PlanStartedMsg is sent when LLM planning starts.
type PlanStartedMsg struct{}

// PlanResultMsg is sent when planning completes.
type PlanResultMsg struct {
	Result *llm.PlanResponse
}

// ReviewResultMsg is sent when the LLM plan review completes.
type ReviewResultMsg struct {
	Report string
}

// AdvisorMsg carries recomputed schedule alerts.
type AdvisorMsg struct {
	Alerts map[string]string
}

// ExportDoneMsg is sent after a chart export lands on disk.
type ExportDoneMsg struct {
	Path string
}

// LoadTree loads the full task tree from the repository.
func LoadTree(repo task.Repository) tea.Cmd {
	return func() tea.Msg {
		tr, err := repo.LoadTree(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading tasks: %w", err)}
		}
		return TreeLoadedMsg{Tree: tr}
	}
}

// SaveTree persists the tree to the repository.
func SaveTree(repo task.Repository, tr task.Tree) tea.Cmd {
	return func() tea.Msg {
		if err := repo.SaveTree(context.Background(), tr); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving tasks: %w", err)}
		}
		return TreeSavedMsg{}
	}
}

// Plan runs LLM planning over natural language input.
func Plan(input string, cfg *config.Config, existing task.Tree) tea.Cmd {
	return func() tea.Msg {
		client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}

		planner := llm.NewPlanner(client)
		result, err := planner.Plan(context.Background(), llm.PlanRequest{
			Input:    input,
			Today:    time.Now(),
			Existing: existing,
		})
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("planning: %w", err)}
		}

		return PlanResultMsg{Result: result}
	}
}

// Review asks the LLM for a health report on the current plan.
func Review(cfg *config.Config, tr task.Tree) tea.Cmd {
	return func() tea.Msg {
		client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}

		reviewer := llm.NewReviewer(client)
		report, err := reviewer.Review(context.Background(), tr, time.Now())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("reviewing plan: %w", err)}
		}

		return ReviewResultMsg{Report: report}
	}
}

// Advise recomputes schedule alerts for the tree.
func Advise(tr task.Tree) tea.Cmd {
	return func() tea.Msg {
		return AdvisorMsg{Alerts: advisor.Review(tr)}
	}
}

// ExportSVG writes the chart as an SVG file into the export directory.
func ExportSVG(cfg *config.Config, tr task.Tree, zoom chart.Zoom) tea.Cmd {
	return func() tea.Msg {
		path := exportPath(cfg, "svg")
		f, err := os.Create(path)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating export file: %w", err)}
		}
		defer f.Close()

		if err := export.WriteSVG(f, tr, time.Now(), zoom); err != nil {
			return ErrMsg{Err: fmt.Errorf("exporting SVG: %w", err)}
		}
		return ExportDoneMsg{Path: path}
	}
}

// ExportProjectCSV writes the chart as an MS Project compatible CSV.
func ExportProjectCSV(cfg *config.Config, tr task.Tree) tea.Cmd {
	return func() tea.Msg {
		path := exportPath(cfg, "csv")
		f, err := os.Create(path)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating export file: %w", err)}
		}
		defer f.Close()

		if err := export.WriteProjectCSV(f, tr); err != nil {
			return ErrMsg{Err: fmt.Errorf("exporting CSV: %w", err)}
		}
		return ExportDoneMsg{Path: path}
	}
}

func exportPath(cfg *config.Config, ext string) string {
	dir := cfg.Chart.ExportDir
	if dir == "" {
		dir = "."
	}
	name := fmt.Sprintf("gantt-%s.%s", time.Now().Format("20060102-150405"), ext)
	return filepath.Join(dir, name)
}
