package tui

import (
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

const (
	minInnerWidth         = 28
	footerBaseLines       = 2 // status + help
	promptBorderLines     = 2
	promptMaxContentLines = 4
)

// layout holds section heights derived from the window size and mode.
type layout struct {
	InnerW int
	InnerH int

	HeaderH  int
	GridRows int
	GridH    int
	BodyH    int
	FooterH  int

	PromptContentW int
}

func (m Model) layout() layout {
	appW, appV := m.styles.AppStyle.GetFrameSize()
	l := layout{
		InnerW: max(m.width-appW, 0),
		InnerH: max(m.height-appV, 0),
	}

	if !m.config.UI.HideHeader {
		l.HeaderH = 1
	}

	l.GridRows = m.state.WeekCountInMonth
	if m.weekStrip() {
		l.GridRows = 1
	}
	l.GridH = view.GridHeight(l.GridRows)

	promptFrameW, _ := m.styles.PromptFocusedStyle.GetFrameSize()
	l.PromptContentW = max(l.InnerW-promptFrameW, 0)

	l.FooterH = footerBaseLines
	if m.mode == ModePrompt {
		lines := min(len(m.promptLines(l.PromptContentW)), promptMaxContentLines)
		l.FooterH += lines + promptBorderLines
	}

	l.BodyH = l.InnerH - l.HeaderH - l.GridH - l.FooterH
	return l
}

func (l layout) fits() bool {
	return l.InnerW >= minInnerWidth && l.BodyH >= 0
}

// weekStrip reports whether the grid shows only the selected week.
func (m Model) weekStrip() bool {
	switch m.view {
	case config.ViewWeek:
		return true
	case config.ViewExpandable:
		return !m.expanded
	default:
		return false
	}
}

// agendaHeight is the number of agenda rows on screen, zero when the
// agenda is hidden.
func (m Model) agendaHeight() int {
	if m.view != config.ViewExpandable {
		return 0
	}
	return max(m.layout().BodyH, 0)
}
