package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/tui/input"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

const maxPromptSuggestions = 3

var goToKeywords = []input.PromptKeyword{
	{Name: "today", Description: "Jump to today"},
	{Name: "tomorrow", Description: "The day after today"},
	{Name: "yesterday", Description: "The day before today"},
	{Name: "next-week", Description: "Seven days from today"},
	{Name: "prev-week", Description: "Seven days before today"},
	{Name: "next-month", Description: "First day of next month"},
	{Name: "prev-month", Description: "First day of last month"},
	{Name: "monday", Description: "Next Monday"},
	{Name: "tuesday", Description: "Next Tuesday"},
	{Name: "wednesday", Description: "Next Wednesday"},
	{Name: "thursday", Description: "Next Thursday"},
	{Name: "friday", Description: "Next Friday"},
	{Name: "saturday", Description: "Next Saturday"},
	{Name: "sunday", Description: "Next Sunday"},
}

func (m Model) promptLines(contentWidth int) []string {
	if m.mode != ModePrompt {
		return nil
	}
	state := view.PromptState{
		Label:  m.promptKind.label(),
		Value:  m.prompt.Value(),
		Cursor: "_",
	}
	if m.promptKind == PromptGoTo {
		for i, kw := range input.MatchingKeywords(m.prompt.Value(), goToKeywords) {
			if i == maxPromptSuggestions {
				break
			}
			state.Suggestions = append(state.Suggestions, view.PromptSuggestion{Name: kw.Name, Description: kw.Description})
		}
	}
	return view.PromptLines(state, contentWidth)
}

func (m Model) openPrompt(kind PromptKind) (Model, tea.Cmd) {
	LogModeChange(m.mode, ModePrompt, kind.label())
	m.mode = ModePrompt
	m.promptKind = kind
	m.promptDate = m.state.SelectedDateString
	m.prompt.Reset()
	if kind == PromptNote {
		m.prompt.Placeholder = "optional note"
	} else {
		m.prompt.Placeholder = "2024-03-15, next-month, friday..."
	}
	m.prompt.Focus()
	m.ensureAgendaVisible()
	return m, textinput.Blink
}

func (m *Model) closePrompt(reason string) {
	LogModeChange(m.mode, ModeNormal, reason)
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.Reset()
	m.ensureAgendaVisible()
}
