// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mvillagra/gantterm/internal/dateutil"
	"github.com/mvillagra/gantterm/internal/task"
)

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadTree reads the full task tree, subtasks in stored order.
func (s *SQLite) LoadTree(ctx context.Context) (task.Tree, error) {
	query := `
		SELECT id, parent_id, name, start_date, duration, progress,
		       progress_calculated, color, priority, assignees
		FROM tasks
		ORDER BY parent_id IS NOT NULL, position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return task.Tree{}, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tr task.Tree
	byID := make(map[string]*task.Task)
	for rows.Next() {
		var (
			t         task.Task
			parentID  sql.NullString
			startDate sql.NullString
			calc      int
			assignees string
			priority  string
		)
		if err := rows.Scan(&t.ID, &parentID, &t.Name, &startDate, &t.Duration,
			&t.Progress, &calc, &t.Color, &priority, &assignees); err != nil {
			return task.Tree{}, fmt.Errorf("scanning task: %w", err)
		}

		t.ProgressCalculated = calc != 0
		t.Priority = task.Priority(priority)
		if startDate.Valid {
			parsed, err := parseStoredDate(startDate.String)
			if err != nil {
				return task.Tree{}, fmt.Errorf("parsing start date for %q: %w", t.Name, err)
			}
			t.StartDate = &parsed
		}
		if err := json.Unmarshal([]byte(assignees), &t.Assignees); err != nil {
			return task.Tree{}, fmt.Errorf("decoding assignees for %q: %w", t.Name, err)
		}

		// Parents always sort before children, so the lookup cannot miss.
		if parentID.Valid {
			parent, ok := byID[parentID.String]
			if !ok {
				return task.Tree{}, fmt.Errorf("subtask %q references unknown parent %s", t.Name, parentID.String)
			}
			parent.Subtasks = append(parent.Subtasks, &t)
		} else {
			tr.Tasks = append(tr.Tasks, &t)
		}
		byID[t.ID] = &t
	}
	if err := rows.Err(); err != nil {
		return task.Tree{}, fmt.Errorf("reading tasks: %w", err)
	}

	return tr, nil
}

// SaveTree replaces the stored tree with tr in one transaction.
func (s *SQLite) SaveTree(ctx context.Context, tr task.Tree) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (
			id, parent_id, position, name, start_date, duration,
			progress, progress_calculated, color, priority, assignees
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	insert := func(t *task.Task, parentID *string, position int) error {
		var startDate any
		if t.StartDate != nil {
			startDate = dateutil.Format(*t.StartDate)
		}
		assignees, err := json.Marshal(t.Assignees)
		if err != nil {
			return fmt.Errorf("encoding assignees for %q: %w", t.Name, err)
		}
		if t.Assignees == nil {
			assignees = []byte("[]")
		}

		calc := 0
		if t.ProgressCalculated {
			calc = 1
		}
		_, err = stmt.ExecContext(ctx, t.ID, parentID, position, t.Name, startDate,
			t.Duration, t.Progress, calc, t.Color, string(t.Priority), string(assignees))
		if err != nil {
			return fmt.Errorf("inserting task %q: %w", t.Name, err)
		}
		return nil
	}

	for i, t := range tr.Tasks {
		if err := insert(t, nil, i); err != nil {
			return err
		}
		for j, sub := range t.Subtasks {
			if err := insert(sub, &t.ID, j); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tasks: %w", err)
	}
	return nil
}

// parseStoredDate parses a date column in the formats SQLite may hand
// back. Rows written by this package hold plain YYYY-MM-DD text; rows
// from a database created with a DATE-typed column come back through the
// driver as RFC3339 midnights.
func parseStoredDate(s string) (time.Time, error) {
	if d, err := dateutil.ParseDate(s); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return dateutil.TruncateToDay(t.UTC()), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
