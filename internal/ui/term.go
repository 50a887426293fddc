package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Selected day: reversed so it shows on any background
	colorSelected = color.New(color.ReverseVideo, color.Bold)

	// Today: bold cyan
	colorToday = color.New(color.FgCyan, color.Bold)

	// Marked days and notes: yellow to make them pop
	colorMark = color.New(color.FgYellow)

	// Saturday and Sunday
	colorWeekend = color.New(color.FgBlue)

	// Days outside the range
	colorDisabled = color.New(color.FgRed, color.Faint)

	// Muted: days outside the month, secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output, including tables.
func DisableColor() {
	color.NoColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMark formats marks and notes.
func formatMark(s string) string {
	return colorMark.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
