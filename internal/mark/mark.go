// Package mark defines marked dates: days the user flagged, with an optional note.
package mark

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// MaxNoteLength is the longest note a mark may carry, in runes.
const MaxNoteLength = 200

// Validation errors.
var (
	ErrEmptyDate    = errors.New("mark date cannot be empty")
	ErrNoteTooLong  = fmt.Errorf("note must be at most %d characters", MaxNoteLength)
	ErrMarkNotFound = errors.New("mark not found")
)

// Mark is a flagged day.
type Mark struct {
	ID        int64
	Date      time.Time // midnight UTC
	Note      string
	CreatedAt time.Time
}

// New creates a Mark with validation. date must be YYYY-MM-DD.
func New(date, note string) (*Mark, error) {
	if strings.TrimSpace(date) == "" {
		return nil, ErrEmptyDate
	}
	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}
	note, err = NormalizeNote(note)
	if err != nil {
		return nil, err
	}
	return &Mark{
		Date:      d,
		Note:      note,
		CreatedAt: time.Now(),
	}, nil
}

// NormalizeNote trims the note and checks its length.
func NormalizeNote(note string) (string, error) {
	note = strings.TrimSpace(note)
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return "", ErrNoteTooLong
	}
	return note, nil
}

// DateString returns the mark's date as YYYY-MM-DD.
func (m *Mark) DateString() string {
	return dateutil.Format(m.Date)
}

// Set indexes marks by YYYY-MM-DD.
type Set map[string]*Mark

// Index builds a Set. Later marks win on duplicate dates.
func Index(marks []*Mark) Set {
	s := make(Set, len(marks))
	for _, m := range marks {
		s[m.DateString()] = m
	}
	return s
}

// Has reports whether date is marked.
func (s Set) Has(date string) bool {
	_, ok := s[date]
	return ok
}

// Note returns the note for date, or "".
func (s Set) Note(date string) string {
	if m, ok := s[date]; ok {
		return m.Note
	}
	return ""
}
