// Package scenario replays YAML scripts of wizard commands against a fresh
// session. Scripts drive the `listwiz script` command and the end-to-end tests.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mark3labs/listwiz/internal/command"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/session"
	"github.com/mark3labs/listwiz/internal/wizard"
)

// Script is a parsed scenario file.
type Script struct {
	Name   string  `yaml:"name"`
	Strict *bool   `yaml:"strict"`
	Steps  []Step  `yaml:"steps"`
	Expect *Expect `yaml:"expect"`
}

// Step is one command. In YAML it is either a mapping with command and args
// or a single command line such as "pricing sellingPrice=1500000".
type Step struct {
	Command string         `yaml:"command"`
	Args    map[string]any `yaml:"args"`
}

// UnmarshalYAML accepts both the mapping and the command line form.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		name, raw, err := command.ParseLine(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*s = Step{Command: name, Args: raw}
		return nil
	}
	type plain Step
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if p.Command == "" {
		return fmt.Errorf("line %d: step has no command", node.Line)
	}
	*s = Step(p)
	return nil
}

// Expect describes the state a script should end in. Empty fields are not
// checked.
type Expect struct {
	Step     listing.Step                        `yaml:"step"`
	Valid    *bool                               `yaml:"valid"`
	Errors   []string                            `yaml:"errors"`
	Statuses map[listing.Step]listing.StepStatus `yaml:"statuses"`
	Photos   *int                                `yaml:"photos"`
}

// Entry is one line of the transcript.
type Entry struct {
	Command string       `json:"command" yaml:"command"`
	Message string       `json:"message" yaml:"message"`
	Step    listing.Step `json:"step" yaml:"step"`
	Banner  string       `json:"banner,omitempty" yaml:"banner,omitempty"`
}

// Report is the outcome of a run.
type Report struct {
	Name       string        `json:"name"`
	Transcript []Entry       `json:"transcript"`
	State      session.State `json:"state"`
	View       wizard.View   `json:"view"`
}

// Options configures a run.
type Options struct {
	// StrictValidation applies when the script does not set strict itself.
	StrictValidation bool
	SampleBatch      int
	Clock            func() time.Time
	NewID            func() string
	// Observe receives every session event of the run.
	Observe func(session.Event)
}

// Parse decodes a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("scenario has no steps")
	}
	return &s, nil
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Run loads the script at path and runs it.
func Run(ctx context.Context, path string, opts Options) (*Report, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, opts)
}

// Run applies every step to a fresh session in order. It stops at the first
// command error. The report is returned even when the run fails, so the
// transcript shows how far it got.
func (s *Script) Run(ctx context.Context, opts Options) (*Report, error) {
	strict := opts.StrictValidation
	if s.Strict != nil {
		strict = *s.Strict
	}
	store := session.New(session.Options{
		StrictValidation: strict,
		Clock:            opts.Clock,
		NewID:            opts.NewID,
	})
	if opts.Observe != nil {
		store.Subscribe(opts.Observe)
	}
	// Close drops every listener, after the observer has seen the close.
	defer store.Close()
	ctl := wizard.New(store)
	defer ctl.Close()
	d := command.NewDispatcher(ctl, opts.SampleBatch)

	rep := &Report{Name: s.Name}
	finish := func(err error) (*Report, error) {
		rep.State = store.State()
		rep.View = ctl.View()
		return rep, err
	}

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}
		res, err := d.Dispatch(step.Command, step.Args)
		if err != nil {
			return finish(fmt.Errorf("step %d: %w", i+1, err))
		}
		logger.Debug("scenario %q step %d: %s -> %s", s.Name, i+1, step.Command, res.View.Step)
		rep.Transcript = append(rep.Transcript, Entry{
			Command: step.Command,
			Message: res.Message,
			Step:    res.View.Step,
			Banner:  res.View.Banner,
		})
	}

	rep, _ = finish(nil)
	if s.Expect != nil {
		if err := s.Expect.check(rep); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

func (e *Expect) check(rep *Report) error {
	var errs []error
	v := rep.View
	if e.Step != "" && v.Step != e.Step {
		errs = append(errs, fmt.Errorf("expected step %s, got %s", e.Step, v.Step))
	}
	if e.Valid != nil && v.Live.Valid != *e.Valid {
		errs = append(errs, fmt.Errorf("expected %s valid=%t, got %t (%s)", v.Step, *e.Valid, v.Live.Valid, v.Live.Message))
	}
	if e.Errors != nil {
		got := v.Errors.Fields()
		want := slices.Clone(e.Errors)
		slices.Sort(got)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			errs = append(errs, fmt.Errorf("expected errors on %v, got %v", want, got))
		}
	}
	for step, want := range e.Statuses {
		if got := rep.State.Status(step); got != want {
			errs = append(errs, fmt.Errorf("expected %s to be %s, got %s", step, want, got))
		}
	}
	if e.Photos != nil && len(rep.State.Draft.Media.Photos) != *e.Photos {
		errs = append(errs, fmt.Errorf("expected %d photos, got %d", *e.Photos, len(rep.State.Draft.Media.Photos)))
	}
	if len(errs) > 0 {
		return fmt.Errorf("scenario %q: %w", rep.Name, errors.Join(errs...))
	}
	return nil
}
