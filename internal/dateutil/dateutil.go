// Package dateutil provides date parsing, formatting and month arithmetic.
//
// All dates handled by almanac are calendar dates: midnight UTC values whose
// wall date is the only meaningful part. The boundary format is YYYY-MM-DD.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Layout is the canonical boundary format for dates.
const Layout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("max date must be on or after min date")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekdayByName returns the weekday for a case-insensitive English name.
func WeekdayByName(name string) (time.Weekday, bool) {
	wd, ok := weekdayMap[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// ParseDate parses a date string in YYYY-MM-DD format.
// The returned error wraps ErrInvalidDateFormat and names the rejected input.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// ParseDateOr parses s like ParseDate, returning the calendar date of
// fallback when s is empty.
func ParseDateOr(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return DateOf(fallback), nil
	}
	return ParseDate(s)
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// DateOf returns the wall-clock date of t as a midnight UTC value.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return EndOfMonth(t).Day()
}

// ShiftMonths returns the first day of the month n months away from t's month.
// Shifting from the first of the month avoids day-of-month overflow
// (January 31 plus one month is February, never March).
func ShiftMonths(t time.Time, n int) time.Time {
	return StartOfMonth(t).AddDate(0, n, 0)
}

// Bounds is an optional inclusive [Min, Max] date range.
// Empty strings mean the side is unbounded.
type Bounds struct {
	Min string
	Max string
}

// NewBounds validates and returns a Bounds.
// Both sides must parse when set, and Max must not precede Min.
func NewBounds(minDate, maxDate string) (Bounds, error) {
	var lo, hi time.Time
	var err error
	if minDate != "" {
		if lo, err = ParseDate(minDate); err != nil {
			return Bounds{}, fmt.Errorf("min date: %w", err)
		}
	}
	if maxDate != "" {
		if hi, err = ParseDate(maxDate); err != nil {
			return Bounds{}, fmt.Errorf("max date: %w", err)
		}
	}
	if minDate != "" && maxDate != "" && hi.Before(lo) {
		return Bounds{}, fmt.Errorf("%w: %s > %s", ErrEndDateBeforeStart, minDate, maxDate)
	}
	return Bounds{Min: minDate, Max: maxDate}, nil
}

// Contains reports whether the date string d is inside the bounds.
// Dates compare lexically because the layout is fixed-width.
func (b Bounds) Contains(d string) bool {
	if b.Min != "" && d < b.Min {
		return false
	}
	if b.Max != "" && d > b.Max {
		return false
	}
	return true
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "yesterday"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Next prefixed: "next-monday" through "next-sunday", "next-week", "next-month"
//   - "prev-week", "prev-month"
//
// Month keywords land on the first day of the target month.
// All inputs are case-insensitive.
// Returns ErrInvalidDateFormat for unrecognized input.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := DateOf(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	case "prev-week":
		return today.AddDate(0, 0, -7), nil
	case "next-month":
		return ShiftMonths(today, 1), nil
	case "prev-month":
		return ShiftMonths(today, -1), nil
	}

	// "next-monday", "next-tuesday", etc.
	if strings.HasPrefix(input, "next-") {
		weekdayName := strings.TrimPrefix(input, "next-")
		if targetDay, ok := weekdayMap[weekdayName]; ok {
			return nextWeekday(today, targetDay), nil
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	return ParseDate(input)
}

// ParseLoose accepts everything ParseRelativeDate does and falls back to
// free-form formats such as "oct 7, 1970" or "2024/03/15".
// The result is always a calendar date.
func ParseLoose(s string, relativeTo time.Time) (time.Time, error) {
	t, err := ParseRelativeDate(s, relativeTo)
	if err == nil {
		return t, nil
	}
	parsed, perr := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
	if perr != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return DateOf(parsed), nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	current := today.Weekday()
	daysUntil := int(target) - int(current)
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
