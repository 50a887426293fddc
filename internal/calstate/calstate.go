// Package calstate holds the calendar date-state model: the selected date,
// its optional navigation bounds, and the week metrics derived from it.
//
// State values are never mutated. Reduce returns a new State for every
// Action, recomputing the derived fields eagerly so they cannot go stale.
package calstate

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/dateutil"
)

// ErrNilAction is returned when Reduce is called without an action.
var ErrNilAction = errors.New("nil calendar action")

// State is a snapshot of one calendar tree.
type State struct {
	SelectedDate       time.Time
	SelectedDateString string
	MinDate            string // inclusive, empty when unbounded
	MaxDate            string // inclusive, empty when unbounded
	SelectedWeekNumber int
	WeekCountInMonth   int

	// WeekStart is the first column of the month grid. The zero value is
	// Sunday. Actions never change it.
	WeekStart time.Weekday
}

// New returns the initial state selecting now's calendar date, unbounded.
func New(now time.Time) State {
	return NewWithWeekStart(now, time.Sunday)
}

// NewWithWeekStart is New for a grid whose first column is weekStart.
func NewWithWeekStart(now time.Time, weekStart time.Weekday) State {
	return State{WeekStart: weekStart}.withSelected(dateutil.DateOf(now))
}

// Grid returns the grid arithmetic matching the state's week start.
func (s State) Grid() calendar.Grid {
	return calendar.Grid{WeekStart: s.WeekStart}
}

// Bounds returns the navigation bounds.
func (s State) Bounds() dateutil.Bounds {
	return dateutil.Bounds{Min: s.MinDate, Max: s.MaxDate}
}

// IsDisabled reports whether the day lies outside the bounds.
// Views use it to refuse selection of that day.
func (s State) IsDisabled(dayString string) bool {
	return !s.Bounds().Contains(dayString)
}

// IsSelected reports whether the day is the selected date.
func (s State) IsSelected(dayString string) bool {
	return s.SelectedDateString == dayString
}

// MonthWeeks returns the grid rows of the selected month.
func (s State) MonthWeeks() [][]calendar.Day {
	return s.Grid().MonthWeeks(s.SelectedDate)
}

// SelectedWeek returns the grid row holding the selected date.
func (s State) SelectedWeek() []calendar.Day {
	return s.Grid().WeekOf(s.SelectedDate)
}

func (s State) withSelected(d time.Time) State {
	info := s.Grid().MonthWeekInfo(d)
	s.SelectedDate = d
	s.SelectedDateString = dateutil.Format(d)
	s.SelectedWeekNumber = info.SelectedWeekNumber
	s.WeekCountInMonth = info.WeekCountInMonth
	return s
}

// Action is a navigation intent. The set of actions is closed: each one
// implements the transition itself, so an action without a transition
// does not compile.
type Action interface {
	apply(State) (State, error)
	fmt.Stringer
}

// InitDate replaces the selected date and both bounds wholesale.
// Empty bounds clear any previous ones.
type InitDate struct {
	Date    string
	MinDate string
	MaxDate string
}

// SetDate jumps to an arbitrary date. Bounds are not applied.
type SetDate struct {
	Date string
}

// AddMonth moves to the last day of the next month, clamped to MaxDate.
type AddMonth struct{}

// SubMonth moves to the last day of the previous month, clamped to the
// end of MinDate's month.
type SubMonth struct{}

func (a InitDate) String() string { return fmt.Sprintf("INIT_DATE(%s, %q..%q)", a.Date, a.MinDate, a.MaxDate) }
func (a SetDate) String() string  { return fmt.Sprintf("SET_DATE(%s)", a.Date) }
func (AddMonth) String() string   { return "ADD_MONTH" }
func (SubMonth) String() string   { return "SUB_MONTH" }

// Reduce applies a to s and returns the next state.
// On error the input state is returned unchanged.
func Reduce(s State, a Action) (State, error) {
	if a == nil {
		return s, ErrNilAction
	}
	next, err := a.apply(s)
	if err != nil {
		return s, fmt.Errorf("%s: %w", a, err)
	}
	return next, nil
}

func (a SetDate) apply(s State) (State, error) {
	d, err := dateutil.ParseDate(a.Date)
	if err != nil {
		return s, err
	}
	return s.withSelected(d), nil
}

func (a InitDate) apply(s State) (State, error) {
	d, err := dateutil.ParseDate(a.Date)
	if err != nil {
		return s, err
	}
	// Bounds are stored verbatim; inversion is the caller's concern.
	for _, bound := range []string{a.MinDate, a.MaxDate} {
		if bound == "" {
			continue
		}
		if _, err := dateutil.ParseDate(bound); err != nil {
			return s, err
		}
	}
	s.MinDate = a.MinDate
	s.MaxDate = a.MaxDate
	return s.withSelected(d), nil
}

func (AddMonth) apply(s State) (State, error) {
	candidate := dateutil.EndOfMonth(dateutil.ShiftMonths(s.SelectedDate, 1))
	if s.MaxDate != "" {
		maxDate, err := dateutil.ParseDate(s.MaxDate)
		if err != nil {
			return s, err
		}
		if candidate.After(maxDate) {
			candidate = maxDate
		}
	}
	return s.withSelected(candidate), nil
}

func (SubMonth) apply(s State) (State, error) {
	candidate := dateutil.EndOfMonth(dateutil.ShiftMonths(s.SelectedDate, -1))
	if s.MinDate != "" {
		minDate, err := dateutil.ParseDate(s.MinDate)
		if err != nil {
			return s, err
		}
		// Lands on the end of the bound's month, not the bound itself.
		if candidate.Before(minDate) {
			candidate = dateutil.EndOfMonth(minDate)
		}
	}
	return s.withSelected(candidate), nil
}
