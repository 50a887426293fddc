package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func agendaRows(n int) []AgendaRow {
	rows := make([]AgendaRow, n)
	for i := range rows {
		rows[i] = AgendaRow{Label: "Day " + string(rune('A'+i)), Style: lipgloss.NewStyle()}
	}
	return rows
}

func TestVisibleAgendaRows(t *testing.T) {
	rows := agendaRows(10)

	tests := []struct {
		name   string
		offset int
		height int
		want   int
	}{
		{"from top", 0, 4, 4},
		{"middle", 3, 4, 4},
		{"clipped at end", 8, 4, 2},
		{"past end", 12, 4, 0},
		{"negative offset", -2, 3, 3},
		{"no height", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(VisibleAgendaRows(rows, tt.offset, tt.height)); got != tt.want {
				t.Errorf("got %d rows, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderAgenda_TruncatesAndAligns(t *testing.T) {
	rows := []AgendaRow{
		{Label: "Fri 1", Note: "a very long note that cannot fit in the agenda width", Style: lipgloss.NewStyle()},
		{Label: "금 15", Note: "회의", Style: lipgloss.NewStyle()},
	}

	out := RenderAgenda(AgendaViewState{InnerW: 24, Height: 3, Rows: rows, Bg: lipgloss.Color("")})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 24 {
			t.Errorf("line %d width = %d, want 24: %q", i, w, l)
		}
	}
	if !strings.Contains(lines[0], "…") {
		t.Errorf("expected truncated note, got %q", lines[0])
	}
}
