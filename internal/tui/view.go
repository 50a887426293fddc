package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

var helpBindings = []view.KeyBinding{
	{Keys: "h/l ←/→", Description: "previous/next day"},
	{Keys: "k/j ↑/↓", Description: "previous/next week"},
	{Keys: "p/n [/]", Description: "previous/next month"},
	{Keys: "t", Description: "today"},
	{Keys: "g", Description: "go to date"},
	{Keys: "m", Description: "mark or unmark the selected day"},
	{Keys: "v", Description: "cycle month, week and expandable views"},
	{Keys: "e", Description: "expand or collapse the calendar"},
	{Keys: "K/J", Description: "scroll the agenda"},
	{Keys: "y", Description: "copy the selected date"},
	{Keys: "?", Description: "toggle this help"},
	{Keys: "q", Description: "quit"},
}

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	showModal := m.mode == ModeModal && m.modalType != ModalNone
	modal := ""
	if showModal {
		modal = m.renderModal()
	}

	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		ModalContent:     modal,
		ShowModal:        showModal,
		ModalBg:          m.styles.ModalBgColor,
		EmptyPlaceholder: "Loading...",
	}
}

func (m Model) renderAppContent() string {
	l := m.layout()
	if !l.fits() {
		return "Terminal too small"
	}

	sections := make([]string, 0, 4)
	if l.HeaderH > 0 {
		sections = append(sections, view.RenderHeader(m.headerViewState(l)))
	}
	sections = append(sections, view.RenderTable(m.tableViewState(l)))
	if l.BodyH > 0 {
		sections = append(sections, m.renderBody(l))
	}
	sections = append(sections, view.RenderFooterModel(m.footerViewState(l)))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) headerViewState(l layout) view.HeaderViewState {
	return view.HeaderViewState{
		InnerW:        l.InnerW,
		Title:         m.locale.MonthYear(m.state.SelectedDate),
		Subtitle:      fmt.Sprintf("week %d of %d", m.state.SelectedWeekNumber, m.state.WeekCountInMonth),
		TitleStyle:    m.styles.TitleStyle,
		SubtitleStyle: m.styles.SubtitleStyle,
		Bg:            m.styles.colorBg,
	}
}

func (m Model) gridWeeks() [][]calendar.Day {
	if m.weekStrip() {
		return [][]calendar.Day{m.state.SelectedWeek()}
	}
	return m.state.MonthWeeks()
}

func (m Model) tableViewState(l layout) view.TableViewState {
	headers := m.locale.WeekdayHeader(m.state.WeekStart)
	headerStyles := make([]lipgloss.Style, len(headers))
	for i := range headers {
		wd := time.Weekday((int(m.state.WeekStart) + i) % calendar.DaysPerWeek)
		headerStyles[i] = m.styles.DayHeaderStyle
		if isWeekend(wd) {
			headerStyles[i] = m.styles.WeekendHeaderStyle
		}
	}

	today := dateutil.Format(m.now())
	year, month := m.state.SelectedDate.Year(), m.state.SelectedDate.Month()

	weeks := m.gridWeeks()
	rows := make([][]string, len(weeks))
	cellStyles := make([][]lipgloss.Style, len(weeks))
	for r, week := range weeks {
		rows[r] = make([]string, len(week))
		cellStyles[r] = make([]lipgloss.Style, len(week))
		for c, d := range week {
			marked := m.marks.Has(d.DayString)
			rows[r][c] = view.DayLabel(d.Date, marked)
			cellStyles[r][c] = m.styles.dayStyle(dayFlags{
				selected: m.state.IsSelected(d.DayString),
				today:    d.DayString == today,
				disabled: m.state.IsDisabled(d.DayString),
				outside:  !d.InMonth(year, month),
				marked:   marked,
				weekend:  isWeekend(d.Time().Weekday()),
			})
		}
	}

	return view.TableViewState{
		InnerW:       l.InnerW,
		GridH:        l.GridH,
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content: view.TableContent{
			Rows:       rows,
			CellStyles: cellStyles,
		},
		BorderStyle: m.styles.BorderStyle,
		VAlign:      lipgloss.Top,
		Bg:          m.styles.colorBg,
		Render:      true,
	}
}

func (m Model) renderBody(l layout) string {
	if m.view == config.ViewExpandable {
		return view.RenderAgenda(view.AgendaViewState{
			InnerW: l.InnerW,
			Height: l.BodyH,
			Rows:   m.agendaRows(),
			Offset: m.agendaOffset,
			Bg:     m.styles.colorBg,
		})
	}
	return m.renderDayInfo(l)
}

// renderDayInfo shows the selected day's long date, note, and range state.
func (m Model) renderDayInfo(l layout) string {
	sel := m.state.SelectedDateString
	lines := []string{m.styles.InfoStyle.Render(m.locale.LongDate(m.state.SelectedDate))}

	if m.marks.Has(sel) {
		note := m.marks.Note(sel)
		if note == "" {
			note = "marked"
		}
		note = ansi.Truncate("• "+note, l.InnerW, "…")
		lines = append(lines, m.styles.NoteStyle.Render(note))
	}
	if m.state.IsDisabled(sel) {
		lines = append(lines, m.styles.StatusStyle.Render("outside "+m.boundsText()))
	}

	return view.PlaceBox(l.InnerW, l.BodyH, lipgloss.Top, strings.Join(lines, "\n"), m.styles.colorBg)
}

func (m Model) footerViewState(l layout) view.FooterModel {
	lines := view.ClampPromptLines(m.promptLines(l.PromptContentW), promptMaxContentLines, l.PromptContentW)

	return view.FooterModel{
		InnerW:           l.InnerW,
		FooterH:          l.FooterH,
		StatusText:       m.statusText(),
		HelpText:         view.FitHints(m.helpHints(), 2, l.InnerW-m.styles.HelpStyle.GetHorizontalFrameSize()),
		PromptLines:      lines,
		PromptFocus:      m.mode == ModePrompt,
		StatusStyle:      m.styles.StatusStyle,
		HelpStyle:        m.styles.HelpStyle,
		PromptStyle:      m.styles.PromptStyle,
		PromptFocusStyle: m.styles.PromptFocusedStyle,
		VAlign:           lipgloss.Bottom,
		Bg:               m.styles.colorBg,
	}
}

// statusText returns the temporary status, or the range when bounded.
func (m Model) statusText() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if m.state.MinDate == "" && m.state.MaxDate == "" {
		return ""
	}
	return m.boundsText()
}

func (m Model) boundsText() string {
	lo, hi := m.state.MinDate, m.state.MaxDate
	if lo == "" {
		lo = "…"
	}
	if hi == "" {
		hi = "…"
	}
	return fmt.Sprintf("range %s..%s", lo, hi)
}

// helpHints lists the key hints for the current mode, most useful first.
// The last two are kept when the footer is narrow.
func (m Model) helpHints() []string {
	switch m.mode {
	case ModePrompt:
		if m.promptKind == PromptGoTo {
			return []string{"Tab: complete", "Enter: go", "Esc: cancel"}
		}
		return []string{"Enter: save mark", "Esc: cancel"}
	case ModeModal:
		if m.modalType == ModalInit {
			return []string{"Enter: create", "q: quit"}
		}
		return []string{"Esc: close"}
	default:
		return []string{"h/l: day", "j/k: week", "n/p: month", "g: go to", "m: mark", "v: view", "?: help", "q: quit"}
	}
}

func (m Model) renderModal() string {
	styles := m.styles.modalStyles()
	switch m.modalType {
	case ModalHelp:
		return view.RenderModalFrame("Keys", view.RenderKeyHelp(helpBindings, styles), "esc close", styles)
	case ModalInit:
		var body strings.Builder
		body.WriteString("almanac needs to create:\n")
		if m.initState.ConfigMissing {
			fmt.Fprintf(&body, "\n  config    %s", m.initState.ConfigPath)
		}
		if m.initState.DBMissing {
			fmt.Fprintf(&body, "\n  database  %s", m.initState.DBPath)
		}
		if m.initError != "" {
			fmt.Fprintf(&body, "\n\nError: %s", m.initError)
		}
		return view.RenderModalFrame("Welcome", styles.ModalBodyStyle.Render(body.String()), "enter create · q quit", styles)
	default:
		return ""
	}
}

func isWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}
