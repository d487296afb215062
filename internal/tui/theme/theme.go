// Package theme holds the colour palette and pre-built styles of the TUI.
package theme

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgCrust    string
	BgBase     string
	BgSurface0 string
	BgSurface1 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	styles     *Styles
	stylesOnce sync.Once
}

var current = NewCatppuccinMocha()

// Current returns the active theme.
func Current() *Theme { return current }

// HexToColor converts a #RRGGBB string to a color.
func HexToColor(hex string) color.Color {
	return lipgloss.Color(hex)
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	c := HexToColor
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Italic(true),
		Text:        lipgloss.NewStyle().Foreground(c(t.FgBase)),
		Muted:       lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		Label:       lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Width(18),
		Value:       lipgloss.NewStyle().Foreground(c(t.FgBright)),

		PanelTitle:        lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Bold(true),
		PanelTitleFocused: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		PanelRule:         lipgloss.NewStyle().Foreground(c(t.BgSurface1)),

		StepCurrent: lipgloss.NewStyle().Foreground(c(t.FgBright)).Bold(true),
		StepOther:   lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		StepLocked:  lipgloss.NewStyle().Foreground(c(t.FgMuted)),

		StatusComplete:   lipgloss.NewStyle().Foreground(c(t.Success)),
		StatusInProgress: lipgloss.NewStyle().Foreground(c(t.Warning)),
		StatusBlocked:    lipgloss.NewStyle().Foreground(c(t.Error)),
		StatusNotStarted: lipgloss.NewStyle().Foreground(c(t.FgMuted)),

		BannerError: lipgloss.NewStyle().
			Foreground(c(t.BgCrust)).
			Background(c(t.Error)).
			Bold(true).
			Padding(0, 1),
		BannerNeutral: lipgloss.NewStyle().
			Foreground(c(t.FgBase)).
			Background(c(t.BgSurface0)).
			Padding(0, 1),
		FieldError: lipgloss.NewStyle().Foreground(c(t.Error)),

		Message: lipgloss.NewStyle().Foreground(c(t.Info)),
		Badge: lipgloss.NewStyle().
			Foreground(c(t.BgCrust)).
			Background(c(t.Warning)).
			Padding(0, 1),

		HintKey:       lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().Foreground(c(t.BgSurface1)),
	}
}
