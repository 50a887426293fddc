package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// AgendaRow is one day in the agenda list.
type AgendaRow struct {
	Label string // e.g. "Fri 15"
	Note  string
	Style lipgloss.Style
}

// AgendaViewState holds the visible slice of the agenda.
type AgendaViewState struct {
	InnerW     int
	Height     int
	Rows       []AgendaRow
	Offset     int
	LabelWidth int
	Bg         lipgloss.Color
}

// VisibleAgendaRows returns the rows shown for offset and height.
func VisibleAgendaRows(rows []AgendaRow, offset, height int) []AgendaRow {
	if height <= 0 || offset >= len(rows) {
		return nil
	}
	offset = max(offset, 0)
	end := min(offset+height, len(rows))
	return rows[offset:end]
}

// RenderAgenda renders one line per visible day. Labels are padded to a
// common display width so notes line up with wide-character labels too.
func RenderAgenda(state AgendaViewState) string {
	if state.Height <= 0 || state.InnerW <= 0 {
		return ""
	}

	labelW := state.LabelWidth
	if labelW == 0 {
		for _, r := range state.Rows {
			labelW = max(labelW, runewidth.StringWidth(r.Label))
		}
	}

	visible := VisibleAgendaRows(state.Rows, state.Offset, state.Height)
	lines := make([]string, 0, len(visible))
	for _, r := range visible {
		text := runewidth.FillRight(r.Label, labelW)
		if r.Note != "" {
			text += "  " + r.Note
		}
		frameW, _ := r.Style.GetFrameSize()
		contentW := max(state.InnerW-frameW, 0)
		text = ansi.Truncate(text, contentW, "…")
		lines = append(lines, r.Style.Width(contentW).Render(text))
	}

	return PlaceBox(state.InnerW, state.Height, lipgloss.Top, strings.Join(lines, "\n"), state.Bg)
}
