package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/calstate"
	"github.com/javiermolinar/almanac/internal/locale"
	"github.com/javiermolinar/almanac/internal/mark"
)

// cellWidth is the printed width of one grid column.
const cellWidth = 4

// gridWidth is the printed width of a full week row.
const gridWidth = cellWidth * calendar.DaysPerWeek

// gridView holds what a printed grid needs.
type gridView struct {
	state  calstate.State
	weeks  [][]calendar.Day
	marks  mark.Set
	locale locale.Locale
	today  string // YYYY-MM-DD
}

// writeGrid prints the weekday header followed by one line per week.
func writeGrid(w io.Writer, g gridView) {
	var b strings.Builder
	for i, name := range g.locale.WeekdayHeader(g.state.WeekStart) {
		wd := time.Weekday((int(g.state.WeekStart) + i) % calendar.DaysPerWeek)
		cell := runewidth.FillLeft(runewidth.Truncate(name, cellWidth-1, ""), cellWidth-1) + " "
		if isWeekend(wd) {
			b.WriteString(colorWeekend.Sprint(cell))
		} else {
			b.WriteString(formatHeader(cell))
		}
	}
	fmt.Fprintln(w, b.String())

	for _, week := range g.weeks {
		b.Reset()
		for _, d := range week {
			b.WriteString(g.cell(d))
		}
		fmt.Fprintln(w, b.String())
	}
}

// cell renders one day as ">15•": a selection marker, the day number, and
// a mark dot. Colors follow the same precedence as the interactive grid.
func (g gridView) cell(d calendar.Day) string {
	selected := g.state.IsSelected(d.DayString)
	marked := g.marks.Has(d.DayString)

	prefix, suffix := " ", " "
	if selected {
		prefix = ">"
	}
	if marked {
		suffix = "•"
	}
	text := fmt.Sprintf("%s%2d%s", prefix, d.Date, suffix)

	year, month := g.state.SelectedDate.Year(), g.state.SelectedDate.Month()
	switch {
	case selected:
		return colorSelected.Sprint(text)
	case d.DayString == g.today:
		return colorToday.Sprint(text)
	case g.state.IsDisabled(d.DayString):
		return colorDisabled.Sprint(text)
	case !d.InMonth(year, month):
		return formatMuted(text)
	case marked:
		return formatMark(text)
	case isWeekend(d.Time().Weekday()):
		return colorWeekend.Sprint(text)
	default:
		return text
	}
}

// writeDayList prints one line per day with its mark note, truncated to
// width.
func writeDayList(w io.Writer, g gridView, days []calendar.Day, width int) {
	labels := make([]string, len(days))
	labelW := 0
	for i, d := range days {
		labels[i] = fmt.Sprintf("%s %s %2d", g.locale.ShortWeekday(d.Time().Weekday()), g.locale.ShortMonth(time.Month(d.Month)), d.Date)
		labelW = max(labelW, runewidth.StringWidth(labels[i]))
	}

	for i, d := range days {
		prefix := "  "
		if g.state.IsSelected(d.DayString) {
			prefix = "> "
		}
		label := runewidth.FillRight(labels[i], labelW)
		switch {
		case g.state.IsDisabled(d.DayString):
			label = colorDisabled.Sprint(label)
		case d.DayString == g.today:
			label = colorToday.Sprint(label)
		case isWeekend(d.Time().Weekday()):
			label = colorWeekend.Sprint(label)
		}

		line := prefix + label
		if g.marks.Has(d.DayString) {
			note := g.marks.Note(d.DayString)
			if note == "" {
				note = "•"
			}
			room := max(width-labelW-4, 1)
			line += "  " + formatMark(runewidth.Truncate(note, room, "…"))
		}
		fmt.Fprintln(w, line)
	}
}

// centerText pads s on the left so it sits centered in width columns.
func centerText(s string, width int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// boundsText describes the navigation range, or "" when unbounded.
func boundsText(st calstate.State) string {
	if st.MinDate == "" && st.MaxDate == "" {
		return ""
	}
	lo, hi := st.MinDate, st.MaxDate
	if lo == "" {
		lo = "…"
	}
	if hi == "" {
		hi = "…"
	}
	return fmt.Sprintf("range %s..%s", lo, hi)
}

func isWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}
