package mark

import (
	"context"
	"time"
)

// Repository defines the storage interface for marks.
type Repository interface {
	// SetMark stores a mark, replacing any mark on the same date.
	SetMark(ctx context.Context, m *Mark) error

	// GetMark retrieves the mark on date. Returns nil if the day is unmarked.
	GetMark(ctx context.Context, date time.Time) (*Mark, error)

	// DeleteMark removes the mark on date.
	// Returns ErrMarkNotFound if the day is unmarked.
	DeleteMark(ctx context.Context, date time.Time) error

	// ListMarksByDateRange returns marks within the date range (inclusive), ordered by date.
	ListMarksByDateRange(ctx context.Context, start, end time.Time) ([]*Mark, error)

	// Close releases any resources held by the repository.
	Close() error
}
