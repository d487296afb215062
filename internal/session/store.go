// Package session holds the state of one listing wizard session: the draft,
// step progress, persisted step errors and the validation bypass flag.
//
// A Store is explicitly constructed per session and is not safe for
// concurrent use. Every mutating method returns the resulting State.
package session

import (
	"errors"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/mark3labs/listwiz/internal/catalog"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/media"
	"github.com/mark3labs/listwiz/internal/validation"
)

// ErrUnknownLocation is returned when a catalog location lookup finds nothing.
var ErrUnknownLocation = errors.New("unknown location")

// Options configures a new Store. Zero values pick the defaults.
type Options struct {
	// StrictValidation starts the session with the bypass off.
	StrictValidation bool
	Clock            func() time.Time
	NewID            func() string
	Catalog          *catalog.Catalog
}

// State is an immutable snapshot of a session.
type State struct {
	Draft       *listing.Draft                      `json:"draft"`
	CurrentStep listing.Step                        `json:"currentStep"`
	StepOrder   []listing.Step                      `json:"stepOrder"`
	Statuses    map[listing.Step]listing.StepStatus `json:"statusByStep"`
	Errors      map[listing.Step]*validation.Errors `json:"errorsByStep"`
	Bypass      bool                                `json:"validationBypassEnabled"`
}

// Status returns the status of step, not-started when unknown.
func (st State) Status(step listing.Step) listing.StepStatus {
	if status, ok := st.Statuses[step]; ok {
		return status
	}
	return listing.StatusNotStarted
}

// StepErrors returns the persisted errors of step or nil.
func (st State) StepErrors(step listing.Step) *validation.Errors {
	return st.Errors[step]
}

// Store owns the draft and progress of one session.
type Store struct {
	id        string
	opts      Options
	catalog   *catalog.Catalog
	validator *validation.Validator
	editor    *media.Editor
	handles   *media.Handles

	draft    *listing.Draft
	current  listing.Step
	statuses map[listing.Step]listing.StepStatus
	errors   map[listing.Step]*validation.Errors
	bypass   bool

	listeners    []listener
	nextListener int
}

// New starts a fresh session.
func New(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	editor := media.NewEditor(opts.Catalog.Samples, opts.Catalog.Projects)
	editor.NewID = opts.NewID

	s := &Store{
		id:        opts.NewID(),
		opts:      opts,
		catalog:   opts.Catalog,
		validator: validation.New(opts.Catalog.Taxonomy),
		editor:    editor,
		handles:   media.NewHandles(),
	}
	s.init()
	logger.Debug("session %s started (bypass=%t)", s.id, s.bypass)
	return s
}

func (s *Store) init() {
	s.draft = listing.NewDraft(s.opts.NewID(), s.clock())
	s.current = listing.Order()[0]
	s.statuses = listing.InitialStatuses()
	s.errors = make(map[listing.Step]*validation.Errors)
	s.bypass = !s.opts.StrictValidation
}

func (s *Store) clock() time.Time {
	return s.opts.Clock()
}

// ID identifies the session. It survives Reset.
func (s *Store) ID() string { return s.id }

// Catalog returns the reference data the session reads.
func (s *Store) Catalog() *catalog.Catalog { return s.catalog }

// State returns a deep copy of the current session state.
func (s *Store) State() State {
	errs := make(map[listing.Step]*validation.Errors, len(s.errors))
	for step, e := range s.errors {
		errs[step] = e.Clone()
	}
	return State{
		Draft:       s.draft.Clone(),
		CurrentStep: s.current,
		StepOrder:   listing.Order(),
		Statuses:    maps.Clone(s.statuses),
		Errors:      errs,
		Bypass:      s.bypass,
	}
}

// CurrentStep returns the step the session is on.
func (s *Store) CurrentStep() listing.Step { return s.current }

// Bypass reports whether validation bypass is enabled.
func (s *Store) Bypass() bool { return s.bypass }

// Status returns the status of step.
func (s *Store) Status(step listing.Step) listing.StepStatus {
	if status, ok := s.statuses[step]; ok {
		return status
	}
	return listing.StatusNotStarted
}

// StepErrors returns a copy of the persisted errors for step, or nil.
func (s *Store) StepErrors(step listing.Step) *validation.Errors {
	errs, ok := s.errors[step]
	if !ok {
		return nil
	}
	return errs.Clone()
}

// Draft returns a copy of the live draft.
func (s *Store) Draft() *listing.Draft { return s.draft.Clone() }

// GoToStep moves to step when it is part of the step order. The target
// becomes in-progress unless it is already complete.
func (s *Store) GoToStep(step listing.Step) State {
	if !step.InOrder() {
		logger.Debug("session %s: ignoring navigation to %q", s.id, step)
		return s.State()
	}
	return s.moveTo(step, s.entryStatus(step), "goto")
}

// NextStep advances one position. It is a no-op on the last step.
func (s *Store) NextStep() State {
	order := listing.Order()
	i := s.current.Index()
	if i < 0 || i+1 >= len(order) {
		return s.State()
	}
	target := order[i+1]
	return s.moveTo(target, s.entryStatus(target), "next")
}

// PreviousStep retreats one position and marks that step in-progress. It is a
// no-op on the first step.
func (s *Store) PreviousStep() State {
	i := s.current.Index()
	if i <= 0 {
		return s.State()
	}
	return s.moveTo(listing.Order()[i-1], listing.StatusInProgress, "previous")
}

func (s *Store) entryStatus(step listing.Step) listing.StepStatus {
	if s.statuses[step] == listing.StatusComplete {
		return listing.StatusComplete
	}
	return listing.StatusInProgress
}

func (s *Store) moveTo(step listing.Step, status listing.StepStatus, action string) State {
	prev := s.current
	if prev == listing.StepGallery && step != listing.StepGallery {
		s.releaseAll("leave-gallery")
	}
	s.current = step
	s.statuses[step] = status
	logger.Debug("session %s: %s %s -> %s", s.id, action, prev, step)
	s.emit(KindStep, action, step, string(prev))
	return s.State()
}

// SetStepStatus records the status of a known step.
func (s *Store) SetStepStatus(step listing.Step, status listing.StepStatus) State {
	if !step.Known() {
		return s.State()
	}
	s.statuses[step] = status
	s.emit(KindStatus, string(status), step, "")
	return s.State()
}

// SetStepErrors persists errs for step. An empty set clears the entry.
func (s *Store) SetStepErrors(step listing.Step, errs *validation.Errors) State {
	if errs.Empty() {
		return s.ClearStepErrors(step)
	}
	s.errors[step] = errs.Clone()
	field, _, _ := errs.First()
	s.emit(KindErrors, "set", step, field)
	return s.State()
}

// ClearStepErrors drops the persisted errors of step.
func (s *Store) ClearStepErrors(step listing.Step) State {
	if _, ok := s.errors[step]; !ok {
		return s.State()
	}
	delete(s.errors, step)
	s.emit(KindErrors, "clear", step, "")
	return s.State()
}

// ValidateStep runs the rules for step against the live draft. It changes
// nothing.
func (s *Store) ValidateStep(step listing.Step) validation.Result {
	return s.validator.Validate(step, s.draft)
}

// SetValidationBypass toggles the bypass. Enabling it clears every persisted
// error. Disabling it validates the current step and, when that fails,
// persists the errors and blocks the step.
func (s *Store) SetValidationBypass(enabled bool) State {
	s.bypass = enabled
	action := "off"
	if enabled {
		action = "on"
	}
	logger.Debug("session %s: validation bypass %s", s.id, action)
	s.emit(KindBypass, action, s.current, "")

	if enabled {
		for _, step := range listing.Order() {
			s.ClearStepErrors(step)
		}
	} else if res := s.ValidateStep(s.current); !res.Valid {
		s.SetStepErrors(s.current, res.Errors)
		s.SetStepStatus(s.current, listing.StatusBlocked)
	}
	return s.State()
}

// Reset discards the draft and all progress and starts over with a new draft
// id. Outstanding upload handles are released.
func (s *Store) Reset() State {
	s.releaseAll("reset")
	s.init()
	logger.Debug("session %s: reset", s.id)
	s.emit(KindSession, "reset", s.current, s.draft.ID)
	return s.State()
}

// Close releases every upload handle and drops all listeners.
func (s *Store) Close() {
	s.releaseAll("close")
	s.emit(KindSession, "close", s.current, "")
	s.listeners = nil
}

// OutstandingHandles lists the upload handles not yet released.
func (s *Store) OutstandingHandles() []string {
	return s.handles.Outstanding()
}
