package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// agendaDays returns the days of the selected month in order.
func (m Model) agendaDays() []calendar.Day {
	year, month := m.state.SelectedDate.Year(), m.state.SelectedDate.Month()
	days := m.state.Grid().MonthDays(m.state.SelectedDate)
	out := make([]calendar.Day, 0, 31)
	for _, d := range days {
		if d.InMonth(year, month) {
			out = append(out, d)
		}
	}
	return out
}

func (m Model) agendaRows() []view.AgendaRow {
	days := m.agendaDays()
	rows := make([]view.AgendaRow, len(days))
	for i, d := range days {
		style := m.styles.AgendaStyle
		if i%2 == 1 {
			style = m.styles.AgendaAltStyle
		}
		switch {
		case m.state.IsSelected(d.DayString):
			style = m.styles.AgendaSelectedStyle
		case m.marks.Has(d.DayString):
			style = m.styles.AgendaMarkedStyle
		}

		rows[i] = view.AgendaRow{
			Label: fmt.Sprintf("%s %2d", m.locale.ShortWeekday(d.Time().Weekday()), d.Date),
			Note:  m.marks.Note(d.DayString),
			Style: style,
		}
	}
	return rows
}

// scrollAgenda moves the agenda by delta rows and reports the new top day
// to the tracker, which selects it once scrolling settles.
func (m Model) scrollAgenda(delta int) (Model, tea.Cmd) {
	if m.view != config.ViewExpandable {
		cmd := m.setStatus("The agenda is shown in the expandable view (v)")
		return m, cmd
	}

	h := m.agendaHeight()
	days := m.agendaDays()
	if h <= 0 || len(days) == 0 {
		return m, nil
	}

	maxOffset := max(len(days)-h, 0)
	offset := min(max(m.agendaOffset+delta, 0), maxOffset)
	if offset == m.agendaOffset {
		return m, nil
	}
	m.agendaOffset = offset
	m.tracker.Visible(days[offset].DayString)
	return m, nil
}

// ensureAgendaVisible scrolls the agenda so the selected day is on screen.
func (m *Model) ensureAgendaVisible() {
	h := m.agendaHeight()
	if h <= 0 {
		m.agendaOffset = 0
		return
	}

	n := len(m.agendaDays())
	idx := m.state.SelectedDate.Day() - 1
	if idx < m.agendaOffset {
		m.agendaOffset = idx
	}
	if idx >= m.agendaOffset+h {
		m.agendaOffset = idx - h + 1
	}
	m.agendaOffset = min(max(m.agendaOffset, 0), max(n-h, 0))
}
