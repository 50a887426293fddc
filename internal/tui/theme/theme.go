// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when a name is empty or unknown.
const DefaultName = "mocha"

// Theme holds the base colors of a TUI theme. Derived shades live in
// Palette.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Agenda rows, subtle highlight
	BgSelection string `toml:"bg_selection"` // Selected day
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Days outside the month, help text
	Accent      string `toml:"accent"`       // Title, primary accent, borders
	Mark        string `toml:"mark"`         // Marked days
	Weekend     string `toml:"weekend"`      // Saturday and Sunday numbers
	Today       string `toml:"today"`        // Today's cell
	Warning     string `toml:"warning"`      // Errors, refused moves
}

// Load loads a theme by name from the embedded files. Unknown names load
// DefaultName.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !IsAvailable(name) {
		name = DefaultName
	}

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	t.applyDefaults()
	return &t, nil
}

// applyDefaults fills optional colors from the required ones.
func (t *Theme) applyDefaults() {
	t.BgHighlight = coalesce(t.BgHighlight, t.Bg)
	t.BgSelection = coalesce(t.BgSelection, t.BgHighlight)
	t.Weekend = coalesce(t.Weekend, t.Accent)
	t.Today = coalesce(t.Today, t.Warning, t.Accent)
	t.Mark = coalesce(t.Mark, t.Accent)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the theme names, darkest first.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
