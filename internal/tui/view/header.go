package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// HeaderViewState holds the title bar content.
type HeaderViewState struct {
	InnerW        int
	Title         string // e.g. "March 2024"
	Subtitle      string // e.g. "week 3 of 6"
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	Bg            lipgloss.Color
}

// RenderHeader renders the title on the left and the subtitle on the right.
// The subtitle is dropped first when the line is too narrow.
func RenderHeader(state HeaderViewState) string {
	if state.InnerW <= 0 {
		return ""
	}

	title := state.TitleStyle.Render(state.Title)
	subtitle := state.SubtitleStyle.Render(state.Subtitle)
	titleW := lipgloss.Width(title)
	subtitleW := lipgloss.Width(subtitle)

	gap := state.InnerW - titleW - subtitleW
	if gap < 1 {
		line := ansi.Truncate(title, state.InnerW, "…")
		return PadLinesWithBackground(line, state.InnerW, 1, state.Bg)
	}

	fill := lipgloss.NewStyle().Background(state.Bg).Render(strings.Repeat(" ", gap))
	return title + fill + subtitle
}
