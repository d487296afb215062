// Package command is the text vocabulary shared by the scripted runner, the
// terminal UI and the MCP server. Each command decodes its arguments fully
// before touching the session, so a rejected command changes nothing.
package command

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mark3labs/listwiz/internal/media"
	"github.com/mark3labs/listwiz/internal/wizard"
)

// ErrUnknownCommand is returned for names outside the vocabulary.
var ErrUnknownCommand = errors.New("unknown command")

// ParamKind is the JSON type of a parameter.
type ParamKind string

const (
	KindString  ParamKind = "string"
	KindNumber  ParamKind = "number"
	KindInteger ParamKind = "integer"
	KindBoolean ParamKind = "boolean"
	KindArray   ParamKind = "array"
)

// Param describes one argument or patch field.
type Param struct {
	Name        string
	Kind        ParamKind
	Description string
	Required    bool
	Nullable    bool
	Enum        []string
}

// Handler runs a command. It returns the message shown to the user.
type Handler func(d *Dispatcher, a *args) (string, error)

// Command is one entry of the vocabulary. Patch commands take their fields
// directly as arguments.
type Command struct {
	Name        string
	Description string
	Params      []Param
	Fields      []Param
	handler     Handler
}

// IsPatch reports whether the command merges a set of draft fields.
func (c Command) IsPatch() bool { return len(c.Fields) > 0 }

// Result is the outcome of a dispatched command.
type Result struct {
	Command string      `json:"command"`
	Message string      `json:"message"`
	View    wizard.View `json:"view"`
}

// Lookup finds a command by name.
func Lookup(name string) (Command, bool) {
	i := slices.IndexFunc(registry, func(c Command) bool { return c.Name == name })
	if i < 0 {
		return Command{}, false
	}
	return registry[i], true
}

// All returns every command in display order.
func All() []Command {
	return slices.Clone(registry)
}

// Dispatcher runs commands against one wizard controller.
type Dispatcher struct {
	ctl         *wizard.Controller
	sampleBatch int
}

// NewDispatcher returns a dispatcher for ctl. sampleBatch is how many library
// photos add-samples adds when no count is given; non-positive means the
// editor default.
func NewDispatcher(ctl *wizard.Controller, sampleBatch int) *Dispatcher {
	if sampleBatch <= 0 {
		sampleBatch = media.DefaultSampleBatch
	}
	return &Dispatcher{ctl: ctl, sampleBatch: sampleBatch}
}

// Controller returns the controller commands act on.
func (d *Dispatcher) Controller() *wizard.Controller { return d.ctl }

// Dispatch runs the named command with raw arguments.
func (d *Dispatcher) Dispatch(name string, raw map[string]any) (Result, error) {
	cmd, ok := Lookup(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	msg, err := cmd.handler(d, newArgs(raw))
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}
	return Result{Command: name, Message: msg, View: d.ctl.View()}, nil
}

// DispatchLine parses and runs one line of command text.
func (d *Dispatcher) DispatchLine(line string) (Result, error) {
	name, raw, err := ParseLine(line)
	if err != nil {
		return Result{}, err
	}
	return d.Dispatch(name, raw)
}
