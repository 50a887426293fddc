package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/tui/input"
)

const statusTTL = 3 * time.Second

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.state.SelectedDate

	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		return m.moveTo(sel.AddDate(0, 0, -1))
	case "l", "right":
		return m.moveTo(sel.AddDate(0, 0, 1))
	case "j", "down":
		return m.moveTo(sel.AddDate(0, 0, 7))
	case "k", "up":
		return m.moveTo(sel.AddDate(0, 0, -7))
	case "n", "]":
		return m.changeMonth(m.handler.AddMonth, "add_month")
	case "p", "[":
		return m.changeMonth(m.handler.SubMonth, "sub_month")
	case "t":
		return m.moveTo(m.now())
	case "g":
		return m.openPrompt(PromptGoTo)

	// Views
	case "v":
		m.view = nextView(m.view)
		m.ensureAgendaVisible()
		cmd := m.setStatus("View: " + m.view)
		return m, cmd
	case "e":
		if m.view != config.ViewExpandable {
			cmd := m.setStatus("Only the expandable view collapses (v)")
			return m, cmd
		}
		m.expanded = !m.expanded
		m.ensureAgendaVisible()
		return m, nil
	case "J", "pgdown":
		return m.scrollAgenda(1)
	case "K", "pgup":
		return m.scrollAgenda(-1)

	// Actions
	case "m":
		return m.toggleMark()
	case "y":
		return m.copySelectedDate()
	case "?":
		LogModeChange(m.mode, ModeModal, "help")
		m.mode = ModeModal
		m.modalType = ModalHelp
		return m, nil
	}

	return m, nil
}

// handlePromptKeys handles keys while the footer prompt is focused.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt("cancel")
		return m, nil

	case "enter":
		value := m.prompt.Value()
		kind := m.promptKind
		date := m.promptDate
		m.closePrompt("submit")
		if kind == PromptNote {
			return m, commands.SaveMark(m.repo, date, value)
		}
		return m.goTo(value)

	case "tab":
		if m.promptKind == PromptGoTo {
			if value, ok := input.Autocomplete(m.prompt.Value(), goToKeywords); ok {
				m.prompt.SetValue(value)
				m.prompt.CursorEnd()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleModalKeys handles keys while a modal is shown.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modalType == ModalInit {
		switch msg.String() {
		case "enter", "y":
			updated, err := m.initializeStorage()
			if err != nil {
				LogError("initializing storage", err)
				updated.initError = err.Error()
				return updated, nil
			}
			updated.closeModal("initialized")
			updated.initState = InitState{}
			cmd := updated.setStatus("Storage initialized")
			return updated, tea.Batch(updated.loadMarksIfNeeded(), cmd)
		case "q", "esc", "n":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "esc", "q", "?", "enter":
		m.closeModal("close")
	}
	return m, nil
}

func (m *Model) closeModal(reason string) {
	LogModeChange(m.mode, ModeNormal, reason)
	m.mode = ModeNormal
	m.modalType = ModalNone
}

// moveTo selects t unless it lies outside the bounds.
func (m Model) moveTo(t time.Time) (Model, tea.Cmd) {
	date := dateutil.Format(t)
	if m.state.IsDisabled(date) {
		cmd := m.setStatus(fmt.Sprintf("%s is outside %s", date, m.boundsText()))
		return m, cmd
	}

	m.stopTracking("set_date")
	if err := m.handler.SetDate(date); err != nil {
		LogError("set date", err)
		cmd := m.setStatus(fmt.Sprintf("Error: %v", err))
		return m, cmd
	}
	cmd := m.syncState("set_date")
	return m, cmd
}

func (m Model) changeMonth(step func() error, reason string) (Model, tea.Cmd) {
	m.stopTracking(reason)
	if err := step(); err != nil {
		LogError(reason, err)
		cmd := m.setStatus(fmt.Sprintf("Error: %v", err))
		return m, cmd
	}
	cmd := m.syncState(reason)
	return m, cmd
}

// stopTracking drops a scrolled date still waiting to be selected, so an
// explicit move wins over it.
func (m Model) stopTracking(reason string) {
	if !m.tracker.Pending() {
		return
	}
	m.tracker.Cancel()
	LogTrackingCancelled(reason)
}

func (m Model) goTo(value string) (Model, tea.Cmd) {
	t, err := dateutil.ParseLoose(value, m.now())
	if err != nil {
		cmd := m.setStatus(fmt.Sprintf("Invalid date %q", value))
		return m, cmd
	}
	return m.moveTo(t)
}

// toggleMark removes the selected day's mark, or prompts for a note to
// create one.
func (m Model) toggleMark() (Model, tea.Cmd) {
	if m.repo == nil {
		cmd := m.setStatus(commands.ErrNoStorage.Error())
		return m, cmd
	}
	date := m.state.SelectedDateString
	if m.marks.Has(date) {
		return m, commands.DeleteMark(m.repo, date)
	}
	return m.openPrompt(PromptNote)
}

func (m Model) copySelectedDate() (Model, tea.Cmd) {
	date := m.state.SelectedDateString
	if err := clipboard.WriteAll(date); err != nil {
		LogError("clipboard", err)
		cmd := m.setStatus(fmt.Sprintf("Clipboard unavailable: %v", err))
		return m, cmd
	}
	cmd := m.setStatus("Copied " + date)
	return m, cmd
}

// setStatus shows text in the footer until statusTTL passes.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMsg = text
	m.statusTime = time.Now().Add(statusTTL)
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func nextView(current string) string {
	views := config.Views()
	for i, v := range views {
		if v == current {
			return views[(i+1)%len(views)]
		}
	}
	return views[0]
}
