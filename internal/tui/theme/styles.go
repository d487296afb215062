package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style
	Subtitle    lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style

	PanelTitle        lipgloss.Style
	PanelTitleFocused lipgloss.Style
	PanelRule         lipgloss.Style

	// Sidebar step names
	StepCurrent lipgloss.Style
	StepOther   lipgloss.Style
	StepLocked  lipgloss.Style

	// Step status glyphs
	StatusComplete   lipgloss.Style
	StatusInProgress lipgloss.Style
	StatusBlocked    lipgloss.Style
	StatusNotStarted lipgloss.Style

	BannerError   lipgloss.Style
	BannerNeutral lipgloss.Style
	FieldError    lipgloss.Style

	Message lipgloss.Style
	Badge   lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style
}
