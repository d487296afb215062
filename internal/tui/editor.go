package tui

import (
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"
)

// NarrativeEditedMsg carries the headline and description back from $EDITOR.
type NarrativeEditedMsg struct {
	Headline    string
	Description string
}

// EditorFailedMsg reports that the external editor could not be used.
type EditorFailedMsg struct {
	Err error
}

// narrativeFile is the text handed to the editor: the headline on the first
// line, a blank line, then the description.
func narrativeFile(headline, description string) string {
	return headline + "\n\n" + description + "\n"
}

// parseNarrative splits edited text back into headline and description.
func parseNarrative(content string) (headline, description string) {
	content = strings.TrimLeft(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	headline, description, _ = strings.Cut(content, "\n")
	return strings.TrimSpace(headline), strings.TrimSpace(description)
}

// openEditor launches $EDITOR on a temp file holding the narrative.
func openEditor(headline, description string) tea.Cmd {
	tmpfile, err := os.CreateTemp("", "listwiz_narrative_*.md")
	if err != nil {
		return failed(err)
	}
	if _, err := tmpfile.WriteString(narrativeFile(headline, description)); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return failed(err)
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("listwiz", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		return failed(err)
	}

	path := tmpfile.Name()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer os.Remove(path)
		if err != nil {
			return EditorFailedMsg{Err: err}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return EditorFailedMsg{Err: err}
		}
		h, d := parseNarrative(string(content))
		return NarrativeEditedMsg{Headline: h, Description: d}
	})
}

func failed(err error) tea.Cmd {
	return func() tea.Msg { return EditorFailedMsg{Err: err} }
}
