package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			payload    BLOB NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating snapshots table: %w", err)
	}

	return nil
}
