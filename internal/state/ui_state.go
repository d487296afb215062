// Package state persists terminal UI preferences between runs.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/listwiz/internal/logger"
)

// MaxHistory is the number of command lines kept.
const MaxHistory = 50

const fileName = "ui-state.json"

// UIState holds persistent UI preferences that carry across sessions.
type UIState struct {
	Sidebar SidebarState `json:"sidebar"`
	// History holds recent command lines, oldest first.
	History []string `json:"history,omitempty"`
}

// SidebarState holds sidebar visibility preference.
type SidebarState struct {
	Visible bool `json:"visible"`
}

// DefaultUIState returns the default UI state.
func DefaultUIState() *UIState {
	return &UIState{
		Sidebar: SidebarState{Visible: true},
	}
}

// Remember appends line to the history. Repeating the latest entry is
// ignored and the oldest entries fall off past MaxHistory.
func (s *UIState) Remember(line string) {
	if line == "" {
		return
	}
	if n := len(s.History); n > 0 && s.History[n-1] == line {
		return
	}
	s.History = append(s.History, line)
	if over := len(s.History) - MaxHistory; over > 0 {
		s.History = append([]string(nil), s.History[over:]...)
	}
}

// Load reads the UI state from <dataDir>/ui-state.json.
// Returns default state if the file doesn't exist or on error.
func Load(dataDir string) *UIState {
	path := filepath.Join(dataDir, fileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultUIState()
	}
	if err != nil {
		logger.Warn("Failed to read UI state file: %v", err)
		return DefaultUIState()
	}

	state := DefaultUIState()
	if err := json.Unmarshal(data, state); err != nil {
		logger.Warn("Failed to parse UI state JSON: %v", err)
		return DefaultUIState()
	}
	return state
}

// Save writes the UI state to <dataDir>/ui-state.json, creating the
// directory when needed.
func Save(dataDir string, state *UIState) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling UI state: %w", err)
	}

	path := filepath.Join(dataDir, fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}

	logger.Debug("UI state saved to %s", path)
	return nil
}
