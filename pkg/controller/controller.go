package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-leadform/internal/logging"
	"github.com/goliatone/go-leadform/pkg/extraction"
	"github.com/goliatone/go-leadform/pkg/interfaces"
	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/validation"
)

// Message keys resolved through the translator.
const (
	KeySubmitFailed  = "submit.failed"
	KeyTriggerSend   = "submit.send"
	KeyTriggerResend = "submit.resend"
	KeyTriggerWait   = "submit.waiting"
)

const submitFailedFallback = "Erro ao enviar formulário. Por favor, tente novamente."

var (
	// ErrSubmissionInFlight is returned by Submit while a request is pending.
	ErrSubmissionInFlight = errors.New("controller: submission already in flight")
	// ErrUnknownField is returned by Change for keys outside the nine fields.
	ErrUnknownField = errors.New("controller: unknown field")
)

// Extractor sends a payload to the extraction service and returns the
// markdown answer.
type Extractor interface {
	Extract(ctx context.Context, payload extraction.Payload) (string, error)
}

// Outcome is the result of a Submit call.
type Outcome string

const (
	// OutcomeInvalid means validation failed and nothing was sent.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeFailed means the request was sent and did not succeed.
	OutcomeFailed Outcome = "failed"
	// OutcomeSucceeded means the answer was stored and the form cleared.
	OutcomeSucceeded Outcome = "succeeded"
)

// Observer receives one call per finished Submit.
type Observer interface {
	ObserveSubmission(outcome Outcome)
}

// Snapshot is a consistent copy of the controller state plus the derived
// trigger presentation.
type Snapshot struct {
	Data   model.FormData        `json:"data"`
	Errors model.FormErrors      `json:"errors"`
	State  model.SubmissionState `json:"state"`
	Status model.Status          `json:"status"`
	Locale string                `json:"locale"`
	// TriggerLabel is the message key of the submit button label.
	TriggerLabel    string `json:"triggerLabel"`
	TriggerDisabled bool   `json:"triggerDisabled"`
}

// Controller is safe for concurrent use. At most one submission is in
// flight at any time.
type Controller struct {
	mu     sync.Mutex
	data   model.FormData
	errors model.FormErrors
	state  model.SubmissionState

	extractor  Extractor
	validator  *validation.Validator
	translator render.Translator
	locale     string
	logger     interfaces.Logger
	observer   Observer
	listeners  []func(Snapshot)
	seq        uint64

	// notifyMu orders listener delivery; delivered is the seq of the last
	// snapshot handed to listeners.
	notifyMu  sync.Mutex
	delivered uint64
}

// New constructs a Controller for an empty form.
func New(extractor Extractor, opts ...Option) (*Controller, error) {
	if extractor == nil {
		return nil, errors.New("controller: extractor is required")
	}
	c := &Controller{
		errors:    model.NewFormErrors(),
		state:     model.NewSubmissionState(),
		extractor: extractor,
		locale:    render.DefaultLocale,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.translator == nil {
		catalog, err := render.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("controller: load catalog: %w", err)
		}
		c.translator = catalog
	}
	if c.validator == nil {
		c.validator = validation.New(validation.WithTranslator(c.translator))
	}
	c.validator = c.validator.WithLocale(c.locale)
	return c, nil
}

// Locale returns the language of user facing messages.
func (c *Controller) Locale() string {
	return c.locale
}

// Listen registers fn to run after every state change. Callbacks run
// outside the controller lock, in registration order, and never see an
// older state after a newer one; a snapshot superseded before delivery is
// skipped. Callbacks must not call Change, Submit or Reset.
func (c *Controller) Listen(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Change stores value for field and clears that field's error, if any. No
// validation runs.
func (c *Controller) Change(field model.Field, value string) error {
	if !field.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	c.mu.Lock()
	c.data.Set(field, value)
	if c.errors.Has(field) {
		c.errors.Clear(field)
	}
	seq, snap := c.publishLocked()
	c.mu.Unlock()

	c.notify(seq, snap)
	return nil
}

// Submit validates the form and, when valid, sends it. Validation and
// delivery failures are reported through the Outcome and the state; the
// error is non-nil only when the call was refused.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	logger := logging.FromContext(ctx, c.logger)

	c.mu.Lock()
	if c.state.Submitting() {
		c.mu.Unlock()
		return "", ErrSubmissionInFlight
	}

	errs, ok := c.validator.Check(c.data)
	c.errors = errs
	if !ok {
		seq, snap := c.publishLocked()
		c.mu.Unlock()

		logger.Debug("submission.invalid", "fields", fieldNames(errs.Fields()))
		c.notify(seq, snap)
		c.observe(OutcomeInvalid)
		return OutcomeInvalid, nil
	}

	c.state.Phase = model.PhaseSubmitting
	c.state.Error = ""
	payload := extraction.PayloadFromForm(c.data)
	seq, snap := c.publishLocked()
	c.mu.Unlock()

	c.notify(seq, snap)
	logger.Info("submission.started")

	content, err := c.extractor.Extract(ctx, payload)

	c.mu.Lock()
	c.state.Phase = model.PhaseIdle
	outcome := OutcomeSucceeded
	if err != nil {
		outcome = OutcomeFailed
		c.state.Outcome = model.OutcomeFailed
		c.state.Error = render.Translate(c.translator, c.locale, KeySubmitFailed, submitFailedFallback)
	} else {
		c.state.Outcome = model.OutcomeSucceeded
		c.state.Payload = content
		c.state.HasPayload = true
		c.data = model.FormData{}
		c.errors = model.NewFormErrors()
	}
	seq, snap = c.publishLocked()
	c.mu.Unlock()

	if err != nil {
		logger.Error("submission.failed", "error", err)
	} else {
		logger.Info("submission.succeeded", "content_bytes", len(content))
	}
	c.notify(seq, snap)
	c.observe(outcome)
	return outcome, nil
}

// Submitting reports whether a request is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Submitting()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Reset returns the form to its freshly mounted state. A pending submission
// keeps running and its result is still applied when it finishes.
func (c *Controller) Reset() {
	c.mu.Lock()
	phase := c.state.Phase
	c.data = model.FormData{}
	c.errors = model.NewFormErrors()
	c.state = model.NewSubmissionState()
	c.state.Phase = phase
	seq, snap := c.publishLocked()
	c.mu.Unlock()

	c.notify(seq, snap)
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Data:   c.data,
		Errors: c.errors.Clone(),
		State:  c.state,
		Status: c.state.Status(),
		Locale: c.locale,
	}
	switch {
	case c.state.Submitting():
		snap.TriggerLabel = KeyTriggerWait
		snap.TriggerDisabled = true
	case c.state.HasPayload:
		snap.TriggerLabel = KeyTriggerResend
	default:
		snap.TriggerLabel = KeyTriggerSend
	}
	return snap
}

// publishLocked numbers the current state for delivery to listeners.
func (c *Controller) publishLocked() (uint64, Snapshot) {
	c.seq++
	return c.seq, c.snapshotLocked()
}

func (c *Controller) notify(seq uint64, snap Snapshot) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if seq <= c.delivered {
		return
	}
	c.delivered = seq

	c.mu.Lock()
	listeners := make([]func(Snapshot), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (c *Controller) observe(outcome Outcome) {
	if c.observer != nil {
		c.observer.ObserveSubmission(outcome)
	}
}

func fieldNames(fields []model.Field) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.String())
	}
	return out
}
