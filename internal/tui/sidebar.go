package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/tui/theme"
	"github.com/mark3labs/listwiz/internal/wizard"
)

// statusGlyph returns the indicator and style for a step status.
func statusGlyph(status listing.StepStatus) (string, lipgloss.Style) {
	s := theme.Current().S()
	switch status {
	case listing.StatusComplete:
		return "✓", s.StatusComplete
	case listing.StatusInProgress:
		return "►", s.StatusInProgress
	case listing.StatusBlocked:
		return "⊘", s.StatusBlocked
	default:
		return "○", s.StatusNotStarted
	}
}

// renderSidebar lists the steps with their number key, status glyph and
// title. Steps that cannot be opened directly are dimmed.
func renderSidebar(v wizard.View, canNavigate func(listing.Step) bool, width int) string {
	s := theme.Current().S()
	lines := make([]string, 0, len(v.Order)+2)
	for i, step := range v.Order {
		glyph, glyphStyle := statusGlyph(v.Statuses[step])

		nameStyle := s.StepOther
		switch {
		case step == v.Step:
			nameStyle = s.StepCurrent
		case !canNavigate(step):
			nameStyle = s.StepLocked
		}

		title := step.Meta().Title
		if avail := width - 6; avail > 3 && lipgloss.Width(title) > avail {
			title = title[:avail-1] + "…"
		}
		cursor := " "
		if step == v.Step {
			cursor = "▸"
		}
		lines = append(lines, fmt.Sprintf("%s%s %s %s",
			cursor,
			s.Muted.Render(fmt.Sprint(i+1)),
			glyphStyle.Render(glyph),
			nameStyle.Render(title),
		))
	}
	if v.Bypass {
		lines = append(lines, "", s.Badge.Render("bypass on"))
	}
	return strings.Join(lines, "\n")
}
