package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PromptSuggestion is a completion entry listed under the prompt input.
type PromptSuggestion struct {
	Name        string
	Description string
}

// PromptState is what the footer prompt shows: the input line and any
// completions for it.
type PromptState struct {
	Label       string // "go to" or "note"
	Value       string
	Cursor      string
	Suggestions []PromptSuggestion
}

// PromptLines lays the prompt out in contentWidth columns. The input wraps
// under its label; each suggestion is indented by two columns.
func PromptLines(state PromptState, contentWidth int) []string {
	if contentWidth <= 0 {
		return []string{""}
	}

	label := "> "
	if state.Label != "" {
		label = state.Label + label
	}
	lines := hangingIndent(state.Value+state.Cursor, label, contentWidth)
	for _, s := range state.Suggestions {
		lines = append(lines, hangingIndent(s.Name+" "+s.Description, "  ", contentWidth)...)
	}
	return lines
}

// ClampPromptLines keeps at most maxLines lines, ending the last kept line
// with an ellipsis when something was cut.
func ClampPromptLines(lines []string, maxLines, width int) []string {
	switch {
	case maxLines <= 0:
		return nil
	case len(lines) <= maxLines:
		return lines
	}

	out := make([]string, maxLines)
	copy(out, lines)
	out[maxLines-1] = withEllipsis(out[maxLines-1], width)
	return out
}

// WrapText breaks s into lines of at most width cells, preferring spaces
// and splitting words that do not fit.
func WrapText(s string, width int) []string {
	if width <= 0 || s == "" {
		return []string{""}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

// RenderPrompt renders the focused prompt box.
func RenderPrompt(width int, style lipgloss.Style, lines []string) string {
	frameW, _ := style.GetFrameSize()
	if len(lines) == 0 {
		lines = []string{""}
	}
	return style.Width(max(width-frameW, 0)).Render(strings.Join(lines, "\n"))
}

// hangingIndent wraps s after prefix and indents continuation lines to
// the prefix width.
func hangingIndent(s, prefix string, width int) []string {
	pw := ansi.StringWidth(prefix)
	indent := strings.Repeat(" ", pw)

	lines := WrapText(s, max(width-pw, 1))
	for i, line := range lines {
		if i == 0 {
			lines[i] = prefix + line
			continue
		}
		lines[i] = indent + line
	}
	return lines
}

func withEllipsis(s string, width int) string {
	const ellipsis = "..."
	if width < len(ellipsis) {
		return strings.Repeat(".", max(width, 0))
	}
	return ansi.Truncate(s, width-len(ellipsis), "") + ellipsis
}
