// Package tui provides the terminal user interface for almanac.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/almanac/internal/tui/theme"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color

	// Title bar
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style

	// Grid headers
	DayHeaderStyle     lipgloss.Style
	WeekendHeaderStyle lipgloss.Style
	BorderStyle        lipgloss.Style

	// Grid cells, in precedence order (see dayStyle)
	SelectedStyle lipgloss.Style
	TodayStyle    lipgloss.Style
	DisabledStyle lipgloss.Style
	OutsideStyle  lipgloss.Style
	MarkedStyle   lipgloss.Style
	WeekendStyle  lipgloss.Style
	DayStyle      lipgloss.Style

	// Agenda rows
	AgendaStyle         lipgloss.Style
	AgendaAltStyle      lipgloss.Style
	AgendaSelectedStyle lipgloss.Style
	AgendaMarkedStyle   lipgloss.Style

	// Selected-day details
	InfoStyle  lipgloss.Style
	NoteStyle  lipgloss.Style
	MutedStyle lipgloss.Style

	// Footer
	StatusStyle        lipgloss.Style
	HelpStyle          lipgloss.Style
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style

	// Text input
	InputTextStyle        lipgloss.Style
	InputCursorStyle      lipgloss.Style
	InputPlaceholderStyle lipgloss.Style

	// Modal styles
	ModalStyle       lipgloss.Style
	ModalBgColor     lipgloss.Color
	ModalHeaderStyle lipgloss.Style
	ModalFooterStyle lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalBodyStyle   lipgloss.Style
	ModalKeyStyle    lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(palette.Bg)

	s.SubtitleStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(palette.Fg).
		Background(palette.Bg)

	s.WeekendHeaderStyle = s.DayHeaderStyle.
		Foreground(palette.Weekend)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(palette.Accent).
		Background(palette.Bg)

	cell := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Background(palette.Bg)

	s.DayStyle = cell.Foreground(palette.Fg)
	s.WeekendStyle = cell.Foreground(palette.Weekend)
	s.MarkedStyle = cell.Foreground(palette.Mark).Bold(true)
	s.OutsideStyle = cell.Foreground(palette.OutsideFg)
	s.DisabledStyle = cell.Foreground(palette.DisabledFg).Strikethrough(true)
	s.TodayStyle = cell.
		Background(palette.Today).
		Foreground(palette.TextOnToday).
		Bold(true)
	s.SelectedStyle = cell.
		Background(palette.Accent).
		Foreground(palette.TextOnAccent).
		Bold(true)

	s.AgendaStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.Bg).
		Padding(0, 1)
	s.AgendaAltStyle = s.AgendaStyle.
		Background(palette.AgendaAltBg)
	s.AgendaMarkedStyle = s.AgendaStyle.
		Background(palette.MarkBg).
		Foreground(palette.TextOnMark)
	s.AgendaSelectedStyle = s.AgendaStyle.
		Background(palette.Accent).
		Foreground(palette.TextOnAccent).
		Bold(true)

	s.InfoStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Fg).
		Background(palette.Bg)
	s.NoteStyle = lipgloss.NewStyle().
		Foreground(palette.Mark).
		Background(palette.Bg)
	s.MutedStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.FgMuted).
		BorderBackground(palette.Bg).
		Background(palette.BgHighlight).
		Foreground(palette.Fg).
		Padding(0, 1)

	s.PromptFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.Accent).
		BorderBackground(palette.Bg).
		Background(palette.BgSelection).
		Foreground(palette.Fg).
		Bold(true).
		Padding(0, 1)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(palette.Warning).
		Background(palette.Bg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.BgSelection)
	s.InputCursorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(palette.Accent)
	s.InputPlaceholderStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.BgSelection)

	modalBg := palette.BgHighlight
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.Accent).
		Background(modalBg).
		Foreground(palette.Fg).
		Padding(1, 2).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Fg).
		Background(modalBg)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(modalBg)

	s.ModalKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(modalBg)

	// App container - horizontal padding only, the grid border frames the rest
	s.AppStyle = lipgloss.NewStyle().
		Background(palette.Bg).
		PaddingLeft(1).
		PaddingRight(1)

	return s
}

func (s *Styles) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle: s.ModalHeaderStyle,
		ModalTitleStyle:  s.ModalTitleStyle,
		ModalFooterStyle: s.ModalFooterStyle,
		ModalStyle:       s.ModalStyle,
		ModalBodyStyle:   s.ModalBodyStyle,
		ModalKeyStyle:    s.ModalKeyStyle,
	}
}

// dayFlags describes a grid cell.
type dayFlags struct {
	selected bool
	today    bool
	disabled bool
	outside  bool // belongs to a neighboring month
	marked   bool
	weekend  bool
}

// dayStyle picks the cell style. Selection wins over everything, then
// today, then the muted states, then marks and weekends.
func (s *Styles) dayStyle(f dayFlags) lipgloss.Style {
	switch {
	case f.selected:
		return s.SelectedStyle
	case f.today:
		return s.TodayStyle
	case f.disabled:
		return s.DisabledStyle
	case f.outside:
		return s.OutsideStyle
	case f.marked:
		return s.MarkedStyle
	case f.weekend:
		return s.WeekendStyle
	default:
		return s.DayStyle
	}
}
