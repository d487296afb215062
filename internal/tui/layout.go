package tui

import uv "github.com/charmbracelet/ultraviolet"

// Layout breakpoints and dimensions
const (
	// CompactWidthBreakpoint is the minimum width for showing the sidebar
	CompactWidthBreakpoint = 80
	// SidebarWidth is the width of the step list
	SidebarWidth = 28
	// bottomRows is banner, message, command line and hints
	bottomRows = 4
)

// LayoutMode represents the layout mode based on terminal size
type LayoutMode int

const (
	// LayoutDesktop shows the step sidebar next to the main panel
	LayoutDesktop LayoutMode = iota
	// LayoutCompact hides the sidebar
	LayoutCompact
)

// Layout defines the rectangular regions for all UI components
type Layout struct {
	Mode    LayoutMode
	Area    uv.Rectangle
	Sidebar uv.Rectangle
	Main    uv.Rectangle
	Banner  uv.Rectangle
	Message uv.Rectangle
	Input   uv.Rectangle
	Hints   uv.Rectangle
}

// IsCompact returns true if the layout is in compact mode
func (l Layout) IsCompact() bool {
	return l.Mode == LayoutCompact
}

// CalculateLayout computes the layout rectangles based on terminal dimensions
func CalculateLayout(width, height int) Layout {
	mode := LayoutDesktop
	if width < CompactWidthBreakpoint {
		mode = LayoutCompact
	}

	area := uv.Rectangle{Max: uv.Position{X: width, Y: height}}

	contentHeight := max(area.Dy()-bottomRows, 0)
	content, rest := uv.SplitVertical(area, uv.Fixed(contentHeight))
	banner, rest := uv.SplitVertical(rest, uv.Fixed(1))
	message, rest := uv.SplitVertical(rest, uv.Fixed(1))
	input, hints := uv.SplitVertical(rest, uv.Fixed(1))

	var sidebar, main uv.Rectangle
	if mode == LayoutDesktop {
		sidebar, main = uv.SplitHorizontal(content, uv.Fixed(SidebarWidth))
		main.Min.X++ // gap between panels
	} else {
		main = content
	}

	return Layout{
		Mode:    mode,
		Area:    area,
		Sidebar: sidebar,
		Main:    main,
		Banner:  banner,
		Message: message,
		Input:   input,
		Hints:   hints,
	}
}

// WithoutSidebar gives the main panel the full content width.
func (l Layout) WithoutSidebar() Layout {
	if l.Mode == LayoutCompact {
		return l
	}
	l.Mode = LayoutCompact
	l.Main.Min.X = l.Area.Min.X
	l.Sidebar = uv.Rectangle{}
	return l
}
