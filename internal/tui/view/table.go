package view

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableContent is the day grid: one row per week, one label and style per
// day.
type TableContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

// TableViewState holds what RenderTable needs to draw a month grid or a
// single week strip.
type TableViewState struct {
	InnerW       int
	GridH        int
	Headers      []string
	HeaderStyles []lipgloss.Style
	Content      TableContent
	BorderStyle  lipgloss.Style
	VAlign       lipgloss.Position
	Bg           lipgloss.Color
	Render       bool
}

// gridChrome is the header row plus the top, header and bottom borders.
const gridChrome = 4

// GridHeight returns the lines a grid of weeks rows occupies.
func GridHeight(weeks int) int {
	return weeks + gridChrome
}

// RenderTable draws the grid inside a rounded border without column
// separators, padded to GridH lines.
func RenderTable(state TableViewState) string {
	if !state.Render || state.GridH <= 0 {
		return ""
	}

	grid := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(state.BorderStyle).
		BorderColumn(false).
		Width(max(state.InnerW-2, 0)).
		Headers(state.Headers...).
		Rows(state.Content.Rows...).
		StyleFunc(state.cellStyle).
		Render()

	return PlaceBox(state.InnerW, state.GridH, state.VAlign, grid, state.Bg)
}

func (s TableViewState) cellStyle(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return styleAt(s.HeaderStyles, col)
	}
	if row < 0 || row >= len(s.Content.CellStyles) {
		return lipgloss.NewStyle()
	}
	return styleAt(s.Content.CellStyles[row], col)
}

func styleAt(styles []lipgloss.Style, i int) lipgloss.Style {
	if i < 0 || i >= len(styles) {
		return lipgloss.NewStyle()
	}
	return styles[i]
}

// DayLabel is a grid cell: the day number followed by a dot when marked.
func DayLabel(day int, marked bool) string {
	suffix := " "
	if marked {
		suffix = "•"
	}
	return fmt.Sprintf("%2d%s", day, suffix)
}
