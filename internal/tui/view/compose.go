// Package view renders the calendar screen from plain view-state values.
// Nothing here reads the model; callers build the state structs.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ViewState is the final frame: the laid-out screen and an optional modal.
type ViewState struct {
	Width            int
	Height           int
	BaseContent      string
	ModalContent     string
	ShowModal        bool
	ModalBg          lipgloss.Color
	EmptyPlaceholder string
}

// Render composes the final view output.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}
	if !state.ShowModal || state.ModalContent == "" {
		return state.BaseContent
	}
	return RenderModalOverlay(state.BaseContent, state.ModalContent, state.Width, state.Height, state.ModalBg)
}

// PlaceBox aligns content in a w×h box whose empty cells carry bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content, lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground returns exactly height lines, each right-padded
// with bg up to width. Lines already wider than width are kept whole.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	fill := lipgloss.NewStyle().Background(bg)
	src := strings.Split(content, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(src) {
			line = src[i]
		}
		if gap := width - lipgloss.Width(line); gap > 0 {
			line += fill.Render(strings.Repeat(" ", gap))
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// modalBox is where a modal lands on the screen.
type modalBox struct {
	top, left     int
	width, height int
}

func centerBox(lines []string, screenW, screenH int) modalBox {
	w := 0
	for _, line := range lines {
		w = max(w, lipgloss.Width(line))
	}
	w = min(w, screenW)
	h := len(lines)
	return modalBox{
		top:    max((screenH-h)/2, 0),
		left:   max((screenW-w)/2, 0),
		width:  w,
		height: h,
	}
}

// RenderModalOverlay centers modalContent on top of baseContent. The modal
// keeps its background across the resets embedded in styled segments.
func RenderModalOverlay(baseContent, modalContent string, width, height int, modalBg lipgloss.Color) string {
	modal := strings.Split(modalContent, "\n")
	box := centerBox(modal, width, height)
	if box.width == 0 {
		return baseContent
	}

	fill := lipgloss.NewStyle().Background(modalBg)
	for i, line := range modal {
		lw := lipgloss.Width(line)
		switch {
		case lw > box.width:
			line = ansi.Cut(line, 0, box.width)
		case lw < box.width:
			line += fill.Render(strings.Repeat(" ", box.width-lw))
		}
		modal[i] = ApplyModalBackgroundResets(line, modalBg) + ansi.ResetStyle
	}

	base := strings.Split(PadLinesWithBackground(baseContent, width, height, ""), "\n")
	for row := box.top; row < box.top+box.height && row < len(base); row++ {
		line := base[row]
		base[row] = ansi.Cut(line, 0, box.left) + modal[row-box.top] + ansi.Cut(line, box.left+box.width, width)
	}
	return strings.Join(base, "\n")
}

// ApplyModalBackgroundResets re-opens the modal background after every
// reset sequence in line.
func ApplyModalBackgroundResets(line string, modalBg lipgloss.Color) string {
	seq := ModalBackgroundSeq(modalBg)
	if seq == "" {
		return line
	}
	r := strings.NewReplacer(
		ansi.ResetStyle, ansi.ResetStyle+seq,
		"\x1b[0m", "\x1b[0m"+seq,
		"\x1b[49m", "\x1b[49m"+seq,
	)
	return r.Replace(line)
}

// ModalBackgroundSeq returns the SGR sequence selecting modalBg.
func ModalBackgroundSeq(modalBg lipgloss.Color) string {
	if modalBg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(modalBg))).String()
}
