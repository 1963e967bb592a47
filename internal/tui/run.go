package tui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mvillagra/gantterm/internal/config"
	"github.com/mvillagra/gantterm/internal/db"
	"github.com/mvillagra/gantterm/internal/task"
)

// Run starts the TUI.
func Run(repo task.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo task.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	ownRepo := repo == nil
	if repo == nil {
		var err error
		repo, err = openRepo(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
	}
	if ownRepo {
		defer func() { _ = repo.Close() }()
	}

	model, err := New(repo, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(*model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// openRepo opens the SQLite repository, creating the data directory on
// first run.
func openRepo(dbPath string) (task.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}
