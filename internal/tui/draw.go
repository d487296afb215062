package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/mark3labs/listwiz/internal/tui/theme"
)

// DrawText renders text at a position, clipped to the area.
func DrawText(scr uv.Screen, area uv.Rectangle, text string) {
	if area.Empty() {
		return
	}
	uv.NewStyledString(text).Draw(scr, area)
}

// DrawPanel renders a "Title ────────" header and returns the inner content
// area below it. Focus is indicated by the header color.
func DrawPanel(scr uv.Screen, area uv.Rectangle, title string, focused bool) uv.Rectangle {
	if area.Empty() {
		return area
	}
	s := theme.Current().S()
	titleStyle := s.PanelTitle
	if focused {
		titleStyle = s.PanelTitleFocused
	}

	styledTitle := titleStyle.Render(title)
	ruleWidth := max(area.Dx()-lipgloss.Width(styledTitle)-1, 0)
	header := styledTitle + " " + s.PanelRule.Render(strings.Repeat("─", ruleWidth))
	DrawText(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1), header)

	inner := area
	inner.Min.Y = min(area.Min.Y+1, area.Max.Y)
	return inner
}

// clipLines keeps at most n lines of s.
func clipLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}
