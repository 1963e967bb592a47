package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id                  TEXT PRIMARY KEY,
			parent_id           TEXT REFERENCES tasks(id) ON DELETE CASCADE,
			position            INTEGER NOT NULL,
			name                TEXT NOT NULL,
			start_date          TEXT,
			duration            INTEGER NOT NULL DEFAULT 1 CHECK(duration >= 1),
			progress            INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
			progress_calculated INTEGER NOT NULL DEFAULT 0,
			color               TEXT NOT NULL DEFAULT '',
			priority            TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high', 'critical')),
			assignees           TEXT NOT NULL DEFAULT '[]'
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tasks table: %w", err)
	}

	return nil
}
