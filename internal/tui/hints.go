package tui

import (
	"strings"

	"github.com/mark3labs/listwiz/internal/tui/theme"
)

// Key labels shown in hint bars.
const (
	KeyNext    = "ctrl+n"
	KeyBack    = "ctrl+b"
	KeyBypass  = "ctrl+v"
	KeyEdit    = "ctrl+e"
	KeyCommand = ":"
	KeyJump    = "1-6"
	KeySidebar = "ctrl+s"
	KeyHistory = "up/down"
	KeyEnter   = "enter"
	KeyEsc     = "esc"
	KeyQuit    = "ctrl+c"
)

// RenderHintBar renders key-description pairs separated by dots.
// Example: RenderHintBar("enter", "run", "esc", "cancel") -> "enter run . esc cancel"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + s.HintSeparator.Render(".") + " ")
		}
		b.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return b.String()
}

func hintsNavigating() string {
	return RenderHintBar(
		KeyNext, "next",
		KeyBack, "back",
		KeyJump, "jump",
		KeyBypass, "bypass",
		KeyEdit, "headline",
		KeyCommand, "command",
		KeySidebar, "sidebar",
		KeyQuit, "quit",
	)
}

func hintsCommand() string {
	return RenderHintBar(KeyEnter, "run", KeyHistory, "history", KeyNext, "next", KeyEsc, "close", KeyQuit, "quit")
}
