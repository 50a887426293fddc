package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel is the bottom of the screen: the prompt while it has focus,
// then one status line and one key hint line.
type FooterModel struct {
	InnerW           int
	FooterH          int
	StatusText       string
	HelpText         string
	PromptLines      []string
	PromptFocus      bool
	StatusStyle      lipgloss.Style
	HelpStyle        lipgloss.Style
	PromptStyle      lipgloss.Style
	PromptFocusStyle lipgloss.Style
	VAlign           lipgloss.Position
	Bg               lipgloss.Color
}

// RenderFooterModel renders the footer into FooterH lines.
func RenderFooterModel(model FooterModel) string {
	if model.FooterH <= 0 {
		return ""
	}

	parts := make([]string, 0, 3)
	if model.PromptFocus {
		parts = append(parts, RenderPrompt(model.InnerW, model.PromptFocusStyle, model.PromptLines))
	}
	parts = append(parts,
		singleLine(model.InnerW, model.StatusStyle, model.StatusText),
		singleLine(model.InnerW, model.HelpStyle, model.HelpText),
	)
	return PlaceBox(model.InnerW, model.FooterH, model.VAlign, strings.Join(parts, "\n"), model.Bg)
}

// singleLine renders text cut to the width left inside style's frame.
func singleLine(width int, style lipgloss.Style, text string) string {
	frameW, _ := style.GetFrameSize()
	w := max(width-frameW, 0)
	if w > 0 {
		text = ansi.Truncate(text, w, "")
	}
	return style.Width(w).Render(text)
}

// HintSeparator joins key hints on the help line.
const HintSeparator = " | "

// FitHints joins hints into a line of at most width cells. The last keep
// hints always stay; earlier ones are dropped from the right until the
// line fits.
func FitHints(hints []string, keep, width int) string {
	keep = min(max(keep, 0), len(hints))
	head := hints[:len(hints)-keep]
	tail := hints[len(hints)-keep:]

	for n := len(head); n >= 0; n-- {
		line := strings.Join(append(head[:n:n], tail...), HintSeparator)
		if ansi.StringWidth(line) <= width || n == 0 {
			return line
		}
	}
	return ""
}
