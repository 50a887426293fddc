// Package calendar computes month grids: the padded, week-aligned day
// sequences a calendar view renders, and the week-of-month metrics derived
// from them.
package calendar

import (
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// DaysPerWeek is the number of columns in a month grid.
const DaysPerWeek = 7

// Day is a single grid cell. It is a value and never changes after creation.
type Day struct {
	DayString string // YYYY-MM-DD
	Year      int
	Month     int // 1..12
	Date      int // 1..31
}

// NewDay builds the cell for t's calendar date.
func NewDay(t time.Time) Day {
	return Day{
		DayString: dateutil.Format(t),
		Year:      t.Year(),
		Month:     int(t.Month()),
		Date:      t.Day(),
	}
}

// Time returns the cell's date as a midnight UTC value.
func (d Day) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Date, 0, 0, 0, 0, time.UTC)
}

// InMonth reports whether the cell belongs to the given month rather than
// being padding from a neighboring month.
func (d Day) InMonth(year int, month time.Month) bool {
	return d.Year == year && d.Month == int(month)
}

// WeekInfo locates a date inside its month grid.
type WeekInfo struct {
	WeekCountInMonth   int
	SelectedWeekNumber int
}

// Grid computes month layouts for a given first column weekday.
// The zero value is a Sunday-start grid.
type Grid struct {
	WeekStart time.Weekday
}

// leadingDays is the number of cells before the first of t's month.
func (g Grid) leadingDays(t time.Time) int {
	first := dateutil.StartOfMonth(t).Weekday()
	return (int(first) - int(g.WeekStart) + DaysPerWeek) % DaysPerWeek
}

// MonthDays returns every cell needed to render t's month as whole weeks:
// trailing days of the previous month, the month itself, then leading days
// of the next month until the length is a multiple of seven.
func (g Grid) MonthDays(t time.Time) []Day {
	start := g.leadingDays(t)
	daysInMonth := dateutil.DaysInMonth(t)

	remaining := 0
	if (start+daysInMonth)%DaysPerWeek != 0 {
		remaining = DaysPerWeek - (start+daysInMonth)%DaysPerWeek
	}
	total := start + daysInMonth + remaining

	first := dateutil.StartOfMonth(t).AddDate(0, 0, -start)
	days := make([]Day, 0, total)
	for i := 0; i < total; i++ {
		days = append(days, NewDay(first.AddDate(0, 0, i)))
	}
	return days
}

// MonthWeeks partitions MonthDays into rows of exactly seven cells.
func (g Grid) MonthWeeks(t time.Time) [][]Day {
	days := g.MonthDays(t)
	weeks := make([][]Day, 0, len(days)/DaysPerWeek)
	for i := 0; i < len(days); i += DaysPerWeek {
		weeks = append(weeks, days[i:i+DaysPerWeek:i+DaysPerWeek])
	}
	return weeks
}

// MonthWeekInfo returns the row of t and the row count of t's month.
func (g Grid) MonthWeekInfo(t time.Time) WeekInfo {
	return WeekInfo{
		WeekCountInMonth:   g.weekNumber(dateutil.EndOfMonth(t)),
		SelectedWeekNumber: g.weekNumber(t),
	}
}

// weekNumber is the 1-based grid row of t. The first of the month always
// resolves to row 1 because leadingDays is at most six.
func (g Grid) weekNumber(t time.Time) int {
	return (g.leadingDays(t)-1+t.Day())/DaysPerWeek + 1
}

var sunday Grid

// MonthDays returns the Sunday-start grid cells for t's month.
func MonthDays(t time.Time) []Day { return sunday.MonthDays(t) }

// MonthWeeks returns the Sunday-start grid rows for t's month.
func MonthWeeks(t time.Time) [][]Day { return sunday.MonthWeeks(t) }

// MonthWeekInfo returns the Sunday-start week metrics for t.
func MonthWeekInfo(t time.Time) WeekInfo { return sunday.MonthWeekInfo(t) }

// MonthDaysOf is MonthDays for a YYYY-MM-DD string.
func MonthDaysOf(date string) ([]Day, error) {
	t, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return MonthDays(t), nil
}

// MonthWeeksOf is MonthWeeks for a YYYY-MM-DD string.
func MonthWeeksOf(date string) ([][]Day, error) {
	t, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return MonthWeeks(t), nil
}

// MonthWeekInfoOf is MonthWeekInfo for a YYYY-MM-DD string.
func MonthWeekInfoOf(date string) (WeekInfo, error) {
	t, err := dateutil.ParseDate(date)
	if err != nil {
		return WeekInfo{}, err
	}
	return MonthWeekInfo(t), nil
}

// WeekOf returns the grid row containing t.
func (g Grid) WeekOf(t time.Time) []Day {
	weeks := g.MonthWeeks(t)
	return weeks[g.weekNumber(t)-1]
}
