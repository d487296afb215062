// Package tui is the interactive terminal front end of the listing wizard.
package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/mark3labs/listwiz/internal/command"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/state"
	"github.com/mark3labs/listwiz/internal/tui/theme"
	"github.com/mark3labs/listwiz/internal/wizard"
)

// App is the main Bubbletea model. Every action goes through the command
// dispatcher so the keyboard, the command line and scripts behave the same.
type App struct {
	dispatcher *command.Dispatcher
	ctl        *wizard.Controller

	input    textinput.Model
	ui       *state.UIState
	histPos  int
	message  string
	output   string
	isError  bool
	layout   Layout
	width    int
	height   int
	quitting bool
	closed   bool
}

// New creates the app for the session behind d.
func New(d *command.Dispatcher) *App {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "pricing sellingPrice=1500000"
	ti.CharLimit = 2000

	return &App{
		dispatcher: d,
		ctl:        d.Controller(),
		input:      ti,
		ui:         state.DefaultUIState(),
	}
}

// SetUIState restores persisted preferences and command history.
func (a *App) SetUIState(s *state.UIState) {
	if s == nil {
		s = state.DefaultUIState()
	}
	a.ui = s
	a.histPos = len(s.History)
	a.relayout()
}

// UIState returns the preferences to persist.
func (a *App) UIState() *state.UIState {
	return a.ui
}

func (a *App) relayout() {
	a.layout = CalculateLayout(a.width, a.height)
	if !a.ui.Sidebar.Visible {
		a.layout = a.layout.WithoutSidebar()
	}
}

// Init initializes the application and returns any initial commands.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		a.input.SetWidth(max(a.width-4, 10))
		return a, nil

	case tea.KeyPressMsg:
		return a.handleKeyPress(msg)

	case NarrativeEditedMsg:
		a.dispatch("narrative", map[string]any{
			"headline":    msg.Headline,
			"description": msg.Description,
		})
		return a, nil

	case EditorFailedMsg:
		a.setError(fmt.Errorf("editor: %w", msg.Err))
		return a, nil
	}

	if a.input.Focused() {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// ctrl shortcuts work everywhere, including the command line
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		a.Close()
		return a, tea.Quit
	case "ctrl+n":
		a.dispatch("next", nil)
		return a, nil
	case "ctrl+b":
		a.dispatch("back", nil)
		return a, nil
	case "ctrl+v":
		a.dispatch("bypass", map[string]any{"enabled": !a.ctl.Store().Bypass()})
		return a, nil
	case "ctrl+s":
		a.ui.Sidebar.Visible = !a.ui.Sidebar.Visible
		a.relayout()
		return a, nil
	case "ctrl+e":
		d := a.ctl.Store().Draft()
		return a, openEditor(d.Headline, d.Description)
	}

	if a.input.Focused() {
		switch msg.String() {
		case "enter":
			line := strings.TrimSpace(a.input.Value())
			a.input.SetValue("")
			if line == "" {
				a.input.Blur()
				return a, nil
			}
			a.ui.Remember(line)
			a.histPos = len(a.ui.History)
			a.runLine(line)
			return a, nil
		case "up":
			a.recall(-1)
			return a, nil
		case "down":
			a.recall(1)
			return a, nil
		case "esc":
			a.input.Reset()
			a.input.Blur()
			a.histPos = len(a.ui.History)
			return a, nil
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	if key := msg.String(); key == ":" {
		return a, a.input.Focus()
	} else if step, ok := stepForKey(key); ok {
		a.dispatch("goto", map[string]any{"step": string(step)})
	}
	return a, nil
}

// recall moves through the command history. Moving past the newest entry
// clears the line.
func (a *App) recall(delta int) {
	h := a.ui.History
	a.histPos = min(max(a.histPos+delta, 0), len(h))
	if a.histPos == len(h) {
		a.input.SetValue("")
		return
	}
	a.input.SetValue(h[a.histPos])
	a.input.CursorEnd()
}

// stepForKey maps "1".."n" to the step at that position.
func stepForKey(key string) (listing.Step, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return "", false
	}
	order := listing.Order()
	i := int(key[0] - '1')
	if i >= len(order) {
		return "", false
	}
	return order[i], true
}

func (a *App) runLine(line string) {
	res, err := a.dispatcher.DispatchLine(line)
	if err != nil {
		a.setError(err)
		return
	}
	a.setMessage(res.Message)
}

func (a *App) dispatch(name string, args map[string]any) {
	res, err := a.dispatcher.Dispatch(name, args)
	if err != nil {
		a.setError(err)
		return
	}
	a.setMessage(res.Message)
}

// setMessage shows the first line in the message bar and keeps any further
// lines as command output under the step.
func (a *App) setMessage(msg string) {
	first, rest, _ := strings.Cut(msg, "\n")
	a.message = first
	a.output = strings.TrimSpace(rest)
	a.isError = false
}

func (a *App) setError(err error) {
	logger.Debug("tui: %v", err)
	a.message = err.Error()
	a.output = ""
	a.isError = true
}

// Close releases outstanding upload handles and closes the session. It is
// safe to call more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	store := a.ctl.Store()
	if n := store.TeardownGallery(); n > 0 {
		logger.Debug("tui: released %d upload handles", n)
	}
	a.ctl.Close()
	store.Close()
}

// View renders the app as a full-screen view.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.quitting {
		view.AltScreen = false
		view.Content = lipgloss.NewLayer("")
		return view
	}

	view.Content = lipgloss.NewLayer(a.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgBase)
	return view
}

// Render draws every component to a screen buffer and returns it as text.
func (a *App) Render() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	canvas := uv.NewScreenBuffer(a.width, a.height)
	a.Draw(canvas, canvas.Bounds())
	return canvas.Render()
}

// Draw renders all components to the screen buffer.
func (a *App) Draw(scr uv.Screen, _ uv.Rectangle) {
	s := theme.Current().S()
	v := a.ctl.View()
	l := a.layout

	if !l.IsCompact() {
		inner := DrawPanel(scr, l.Sidebar, "Steps", false)
		DrawText(scr, inner, renderSidebar(v, a.ctl.CanNavigate, l.Sidebar.Dx()))
	}

	title := fmt.Sprintf("Step %d of %d: %s", v.Index+1, len(v.Order), v.Meta.Title)
	inner := DrawPanel(scr, l.Main, title, true)
	body := renderMain(a.ctl.Store().Draft(), v, len(a.ctl.Store().OutstandingHandles()), inner.Dx())
	if a.output != "" {
		body += "\n\n" + s.Muted.Render(a.output)
	}
	DrawText(scr, inner, clipLines(body, inner.Dy()))

	switch {
	case v.Banner != "" && v.Variant == wizard.BannerError:
		DrawText(scr, l.Banner, s.BannerError.Render(v.Banner))
	case v.Banner != "":
		DrawText(scr, l.Banner, s.BannerNeutral.Render(v.Banner))
	case v.NextDisabled:
		DrawText(scr, l.Banner, s.Muted.Render(v.Live.Message))
	}

	if a.message != "" {
		style := s.Message
		if a.isError {
			style = s.FieldError
		}
		DrawText(scr, l.Message, style.Render(a.message))
	}

	if a.input.Focused() {
		DrawText(scr, l.Input, a.input.View())
		DrawText(scr, l.Hints, hintsCommand())
	} else {
		DrawText(scr, l.Input, s.Muted.Render("press : to type a command"))
		DrawText(scr, l.Hints, hintsNavigating())
	}
}
