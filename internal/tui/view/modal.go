package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ModalStyles groups the styles needed to render modal frames.
type ModalStyles struct {
	ModalHeaderStyle lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalFooterStyle lipgloss.Style
	ModalStyle       lipgloss.Style
	ModalBodyStyle   lipgloss.Style
	ModalKeyStyle    lipgloss.Style
}

// KeyBinding is one row of the key help.
type KeyBinding struct {
	Keys        string
	Description string
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	header := styles.ModalHeaderStyle.Render(styles.ModalTitleStyle.Render(title))
	b.WriteString(header)
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalFooterStyle.Render(footer))
	}

	return styles.ModalStyle.Render(b.String())
}

// RenderKeyHelp renders bindings as two aligned columns.
func RenderKeyHelp(bindings []KeyBinding, styles ModalStyles) string {
	keyW := 0
	for _, kb := range bindings {
		keyW = max(keyW, runewidth.StringWidth(kb.Keys))
	}

	lines := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		keys := styles.ModalKeyStyle.Render(runewidth.FillRight(kb.Keys, keyW))
		lines = append(lines, keys+styles.ModalBodyStyle.Render("  "+kb.Description))
	}
	return strings.Join(lines, "\n")
}
