package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the theme colors plus the shades derived from them.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Mark        lipgloss.Color
	Weekend     lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	// OutsideFg is used for grid days that belong to a neighboring month.
	OutsideFg lipgloss.Color
	// DisabledFg is used for days outside the selectable range.
	DisabledFg lipgloss.Color

	MarkBg        lipgloss.Color
	AgendaAltBg   lipgloss.Color
	SelectedWeek  lipgloss.Color
	TextOnAccent  lipgloss.Color
	TextOnToday   lipgloss.Color
	TextOnMark    lipgloss.Color
	TextOnWarning lipgloss.Color
}

// NewPalette derives a Palette from t. A nil theme uses DefaultName.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := isLightTheme(t.Bg)
	markBg := tintBg(t.Mark, t.Bg, light)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Mark:        lipgloss.Color(t.Mark),
		Weekend:     lipgloss.Color(t.Weekend),
		Today:       lipgloss.Color(t.Today),
		Warning:     lipgloss.Color(t.Warning),

		OutsideFg:  lipgloss.Color(blendColors(t.FgMuted, t.Bg, 0.35)),
		DisabledFg: lipgloss.Color(blendColors(t.FgMuted, t.Bg, 0.65)),

		MarkBg:       lipgloss.Color(markBg),
		AgendaAltBg:  lipgloss.Color(alternateShade(t.BgHighlight, light)),
		SelectedWeek: lipgloss.Color(blendColors(t.BgHighlight, t.Bg, 0.5)),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnToday:   lipgloss.Color(chooseTextColor(t.Today, t.Bg, t.Fg)),
		TextOnMark:    lipgloss.Color(chooseTextColor(markBg, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// tintBg turns an accent into a cell background: a pale wash on light
// themes, a dimmed shade on dark ones.
func tintBg(accent, bg string, light bool) string {
	if light {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

// minDarkChannel keeps darkened colors distinguishable from black.
const minDarkChannel = 40.0 / 255.0

// darkenColor halves each channel, flooring at minDarkChannel.
func darkenColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return colorful.Color{
		R: max(c.R*0.5, minDarkChannel),
		G: max(c.G*0.5, minDarkChannel),
		B: max(c.B*0.5, minDarkChannel),
	}.Hex()
}

// alternateShade nudges hex a little away from the background for zebra
// rows.
func alternateShade(hex string, light bool) string {
	if light {
		return blendColors(hex, "#000000", 0.05)
	}
	return blendColors(hex, "#ffffff", 0.06)
}

// chooseTextColor picks whichever text color contrasts more with bg.
func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

// contrastRatio is the WCAG contrast ratio of two colors.
func contrastRatio(a, b string) float64 {
	l1, l2 := relativeLuminance(a), relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// relativeLuminance is the WCAG relative luminance, 0 for invalid input.
func relativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// blendColors mixes a towards b; ratio is clamped to [0, 1]. Invalid
// input returns a unchanged.
func blendColors(a, b string, ratio float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendRgb(cb, min(max(ratio, 0), 1)).Clamped().Hex()
}
