// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/mark"
)

// SQLite implements mark.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ mark.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
// The parent directory is created when missing.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SetMark stores a mark, replacing the note of an existing mark on the same date.
// ID and CreatedAt are filled from the stored row.
func (s *SQLite) SetMark(ctx context.Context, m *mark.Mark) error {
	note, err := mark.NormalizeNote(m.Note)
	if err != nil {
		return err
	}
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO marks (date, note, created_at) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET note = excluded.note
		RETURNING id, created_at
	`

	var storedAt string
	err = s.db.QueryRowContext(ctx, query,
		dateutil.Format(m.Date),
		note,
		createdAt.UTC().Format(time.RFC3339),
	).Scan(&m.ID, &storedAt)
	if err != nil {
		return fmt.Errorf("upserting mark: %w", err)
	}

	m.Note = note
	m.CreatedAt, err = time.Parse(time.RFC3339, storedAt)
	if err != nil {
		return fmt.Errorf("parsing created at: %w", err)
	}
	return nil
}

// GetMark retrieves the mark on date.
func (s *SQLite) GetMark(ctx context.Context, date time.Time) (*mark.Mark, error) {
	query := `SELECT id, date, note, created_at FROM marks WHERE date = ?`

	m, err := scanMark(s.db.QueryRowContext(ctx, query, dateutil.Format(date)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying mark: %w", err)
	}
	return m, nil
}

// DeleteMark removes the mark on date.
func (s *SQLite) DeleteMark(ctx context.Context, date time.Time) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM marks WHERE date = ?`, dateutil.Format(date))
	if err != nil {
		return fmt.Errorf("deleting mark: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", mark.ErrMarkNotFound, dateutil.Format(date))
	}
	return nil
}

// ListMarksByDateRange returns marks within the date range (inclusive).
func (s *SQLite) ListMarksByDateRange(ctx context.Context, start, end time.Time) ([]*mark.Mark, error) {
	query := `
		SELECT id, date, note, created_at
		FROM marks
		WHERE date >= ? AND date <= ?
		ORDER BY date
	`

	rows, err := s.db.QueryContext(ctx, query, dateutil.Format(start), dateutil.Format(end))
	if err != nil {
		return nil, fmt.Errorf("querying marks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var marks []*mark.Mark
	for rows.Next() {
		m, err := scanMark(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mark: %w", err)
		}
		marks = append(marks, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating marks: %w", err)
	}

	return marks, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMark(sc scanner) (*mark.Mark, error) {
	var (
		m         mark.Mark
		date      string
		createdAt string
	)
	if err := sc.Scan(&m.ID, &date, &m.Note, &createdAt); err != nil {
		return nil, err
	}

	var err error
	m.Date, err = parseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	m.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &m, nil
}

// parseDate parses a stored date. SQLite may hand date-only values back
// with a midnight time component, which is dropped.
func parseDate(s string) (time.Time, error) {
	if len(s) >= 10 {
		return dateutil.ParseDate(s[:10])
	}
	return dateutil.ParseDate(s)
}

// parseTimestamp accepts RFC 3339 as written by SetMark and SQLite's
// CURRENT_TIMESTAMP format for rows inserted by hand.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
