// Package wizard drives a session through the fixed step sequence: advance
// with validation, retreat, direct navigation and the error display contract.
package wizard

import (
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/session"
	"github.com/mark3labs/listwiz/internal/validation"
)

// BannerVariant styles the banner above the step.
type BannerVariant string

const (
	BannerError   BannerVariant = "error"
	BannerNeutral BannerVariant = "neutral"
)

// View is what a front end needs to render the current step.
type View struct {
	Step         listing.Step                        `json:"step"`
	Index        int                                 `json:"index"`
	Order        []listing.Step                      `json:"order"`
	Statuses     map[listing.Step]listing.StepStatus `json:"statuses"`
	IsFirst      bool                                `json:"isFirst"`
	IsLast       bool                                `json:"isLast"`
	Errors       *validation.Errors                  `json:"errors"`
	Banner       string                              `json:"banner"`
	Variant      BannerVariant                       `json:"variant"`
	NextDisabled bool                                `json:"nextDisabled"`
	Bypass       bool                                `json:"bypass"`
	Meta         listing.Metadata                    `json:"meta"`
	Live         validation.Result                   `json:"live"`
}

// Controller applies the wizard transitions to a store.
type Controller struct {
	store       *session.Store
	unsubscribe func()
	reconciling bool
}

// New attaches a controller to store. Persisted errors of the current step
// are dropped as soon as the step validates again.
func New(store *session.Store) *Controller {
	c := &Controller{store: store}
	c.unsubscribe = store.Subscribe(c.onEvent)
	return c
}

// Store returns the underlying session.
func (c *Controller) Store() *session.Store { return c.store }

// Close detaches the controller from its store.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) onEvent(session.Event) {
	if c.reconciling {
		return
	}
	c.reconciling = true
	defer func() { c.reconciling = false }()
	c.reconcile()
}

// reconcile clears stale persisted errors once the current step is valid.
func (c *Controller) reconcile() {
	step := c.store.CurrentStep()
	if c.store.StepErrors(step).Empty() {
		return
	}
	if !c.store.ValidateStep(step).Valid {
		return
	}
	logger.Debug("wizard: %s is valid again, clearing persisted errors", step)
	c.store.ClearStepErrors(step)
	if c.store.Status(step) == listing.StatusBlocked {
		c.store.SetStepStatus(step, listing.StatusInProgress)
	}
}

// Next completes the current step and advances. With bypass off the step must
// validate first; on failure its errors are persisted, it is blocked and the
// session stays put. Next on the last step does nothing and reports false.
func (c *Controller) Next() bool {
	step := c.store.CurrentStep()
	if c.isLast(step) {
		return false
	}
	if !c.store.Bypass() {
		res := c.store.ValidateStep(step)
		if !res.Valid {
			logger.Debug("wizard: %s blocked: %s", step, res.Message)
			c.store.SetStepErrors(step, res.Errors)
			c.store.SetStepStatus(step, listing.StatusBlocked)
			return false
		}
	}
	c.store.SetStepStatus(step, listing.StatusComplete)
	c.store.ClearStepErrors(step)
	c.store.NextStep()
	return true
}

// Back moves to the previous step without validating. It reports false on
// the first step.
func (c *Controller) Back() bool {
	if c.store.CurrentStep().Index() <= 0 {
		return false
	}
	c.store.PreviousStep()
	return true
}

// CanNavigate reports whether step may be opened directly: complete and
// in-progress steps always, blocked steps only while they carry persisted
// errors.
func (c *Controller) CanNavigate(step listing.Step) bool {
	if !step.InOrder() {
		return false
	}
	switch c.store.Status(step) {
	case listing.StatusComplete, listing.StatusInProgress:
		return true
	case listing.StatusBlocked:
		return !c.store.StepErrors(step).Empty()
	default:
		return false
	}
}

// Navigate opens step when CanNavigate allows it.
func (c *Controller) Navigate(step listing.Step) bool {
	if !c.CanNavigate(step) {
		return false
	}
	c.store.GoToStep(step)
	return true
}

// SetValidationBypass toggles the bypass on the store.
func (c *Controller) SetValidationBypass(enabled bool) {
	c.store.SetValidationBypass(enabled)
}

func (c *Controller) isLast(step listing.Step) bool {
	order := listing.Order()
	return step == order[len(order)-1]
}

// View builds the render contract for the current step.
func (c *Controller) View() View {
	st := c.store.State()
	step := st.CurrentStep
	live := c.store.ValidateStep(step)

	displayed := validation.NewErrors()
	if !st.Bypass {
		if persisted := st.StepErrors(step); !persisted.Empty() {
			displayed = persisted
		} else if !live.Valid {
			displayed = live.Errors.Clone()
		}
	}

	v := View{
		Step:         step,
		Index:        step.Index(),
		Order:        st.StepOrder,
		Statuses:     st.Statuses,
		IsFirst:      step.Index() == 0,
		IsLast:       c.isLast(step),
		Errors:       displayed,
		Variant:      BannerNeutral,
		NextDisabled: !st.Bypass && !live.Valid,
		Bypass:       st.Bypass,
		Meta:         step.Meta(),
		Live:         live,
	}
	if _, msg, ok := displayed.First(); ok {
		v.Banner = msg
		v.Variant = BannerError
	}
	return v
}
