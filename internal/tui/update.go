package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/mark"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureAgendaVisible()
		return m, nil

	case commands.StateChangedMsg:
		// Dispatches from the tracker or any other view of the store
		cmd := m.syncState("store")
		return m, tea.Batch(cmd, commands.WaitForChange(m.changes))

	case commands.MarksLoadedMsg:
		from, to := dateutil.Format(msg.Start), dateutil.Format(msg.End)
		gridFrom, gridTo := m.gridRange()
		if from > dateutil.Format(gridFrom) || to < dateutil.Format(gridTo) {
			// Stale response for a month we already left
			return m, nil
		}
		m.marks = mark.Index(msg.Marks)
		m.marksFrom, m.marksTo = from, to
		return m, nil

	case commands.MarkSavedMsg:
		date := msg.Mark.DateString()
		m.marks[date] = msg.Mark
		cmd := m.setStatus("Marked " + date)
		return m, cmd

	case commands.MarkDeletedMsg:
		delete(m.marks, msg.Date)
		cmd := m.setStatus("Unmarked " + msg.Date)
		return m, cmd

	case commands.ConfigReloadedMsg:
		if msg.Err != nil {
			LogError("config reload", msg.Err)
			cmd := m.setStatus(fmt.Sprintf("Config reload failed: %v", msg.Err))
			return m, cmd
		}
		if msg.Config.UI.View != m.config.UI.View {
			m.view = msg.Config.UI.View
		}
		m.applyConfig(msg.Config)
		m.ensureAgendaVisible()
		cmd := m.setStatus(fmt.Sprintf("Config reloaded (theme %s, locale %s)", m.theme.Name, m.locale.Tag))
		return m, cmd

	case commands.ErrMsg:
		LogError("command", msg.Err)
		cmd := m.setStatus(fmt.Sprintf("Error: %v", msg.Err))
		return m, cmd

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Cursor blink and other textinput messages
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	return m, nil
}

// syncState pulls the store's snapshot into the model.
func (m *Model) syncState(reason string) tea.Cmd {
	st, err := m.store.Snapshot()
	if err != nil {
		LogError("snapshot", err)
		return nil
	}
	m.state = st
	LogState(st, reason)
	m.ensureAgendaVisible()
	return m.loadMarksIfNeeded()
}

// gridRange returns the first and last cell of the selected month grid.
func (m Model) gridRange() (time.Time, time.Time) {
	days := m.state.Grid().MonthDays(m.state.SelectedDate)
	return days[0].Time(), days[len(days)-1].Time()
}

// loadMarksIfNeeded loads marks when the grid moved outside the loaded range.
func (m Model) loadMarksIfNeeded() tea.Cmd {
	start, end := m.gridRange()
	if m.marksFrom != "" && m.marksFrom <= dateutil.Format(start) && dateutil.Format(end) <= m.marksTo {
		return nil
	}
	return commands.LoadMarks(m.repo, start, end)
}
