// Package db provides snapshot storage for the planner.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// DefaultHistory is the number of snapshots kept when no limit is configured.
const DefaultHistory = 20

// ErrSnapshotNotFound is returned when a snapshot id does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Record is one stored snapshot.
type Record struct {
	ID        int64
	CreatedAt time.Time
	Payload   []byte
}

// SQLite implements plan.Repository using SQLite. Every save appends a row,
// so older snapshots stay available until pruned.
type SQLite struct {
	db   *sql.DB
	keep int
}

// New creates a new SQLite repository and runs migrations.
// keep is the number of snapshots retained; zero or less keeps everything.
func New(path string, keep int) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, keep: keep}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadSnapshot returns the newest snapshot payload, or nil if none exists.
func (s *SQLite) LoadSnapshot(ctx context.Context) ([]byte, error) {
	query := `SELECT payload FROM snapshots ORDER BY id DESC LIMIT 1`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	return payload, nil
}

// SaveSnapshot appends a snapshot and prunes old rows in one transaction.
func (s *SQLite) SaveSnapshot(ctx context.Context, data []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (payload, created_at) VALUES (?, ?)`,
		data,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	if s.keep > 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM snapshots
			WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)
		`, s.keep)
		if err != nil {
			return fmt.Errorf("pruning snapshots: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// History returns up to limit snapshots, newest first.
func (s *SQLite) History(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultHistory
	}

	query := `
		SELECT id, payload, created_at
		FROM snapshots
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}

	return records, nil
}

// Snapshot returns the snapshot with the given id.
func (s *SQLite) Snapshot(ctx context.Context, id int64) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, payload, created_at FROM snapshots WHERE id = ?`, id)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: #%d", ErrSnapshotNotFound, id)
	}
	return r, err
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		r         Record
		createdAt string
	)
	if err := row.Scan(&r.ID, &r.Payload, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("scanning snapshot: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parsing created_at: %w", err)
	}
	r.CreatedAt = t
	return r, nil
}
