package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-leadform/internal/logging"
	"github.com/goliatone/go-leadform/pkg/controller"
	"github.com/goliatone/go-leadform/pkg/interfaces"
	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
)

// Renderer drives a lead form from the terminal: it prompts each field,
// submits through the controller, re-prompts invalid fields and prints the
// service answer.
type Renderer struct {
	driver     PromptDriver
	translator render.Translator
	theme      Theme
	logger     interfaces.Logger
}

// New constructs a TUI renderer with defaults (survey driver, embedded
// catalog).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		logger: logging.NoOp(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.translator == nil {
		catalog, err := render.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("tui: load catalog: %w", err)
		}
		r.translator = catalog
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// Run fills and submits the form held by ctrl. It returns the final snapshot
// once the submission succeeded or the user declined to retry a failed one.
// Every retry is a new user initiated submission.
func (r *Renderer) Run(ctx context.Context, ctrl *controller.Controller) (controller.Snapshot, error) {
	if ctx == nil {
		return controller.Snapshot{}, errors.New("tui: context is required")
	}
	if ctrl == nil {
		return controller.Snapshot{}, ErrNoController
	}

	locale := ctrl.Locale()
	if err := r.info(ctx, r.t(locale, "tui.intro")); err != nil {
		return controller.Snapshot{}, err
	}

	pending := model.DisplayOrder()
	for {
		for _, field := range pending {
			if err := r.promptField(ctx, ctrl, field); err != nil {
				return ctrl.Snapshot(), err
			}
		}

		outcome, err := ctrl.Submit(ctx)
		if err != nil {
			return ctrl.Snapshot(), err
		}
		snap := ctrl.Snapshot()

		switch outcome {
		case controller.OutcomeInvalid:
			pending = invalidFields(snap.Errors)
			if err := r.reportErrors(ctx, snap); err != nil {
				return snap, err
			}
		case controller.OutcomeFailed:
			if err := r.info(ctx, r.theme.ErrorPrefix+snap.State.Error); err != nil {
				return snap, err
			}
			retry, err := r.driver.Confirm(ctx, ConfirmConfig{
				Message: r.t(locale, "tui.retry"),
				Default: true,
			})
			if err != nil {
				return snap, err
			}
			if !retry {
				return snap, nil
			}
			pending = nil
		default:
			r.logger.Debug("tui.completed", "content_bytes", len(snap.State.Payload))
			if err := r.info(ctx, r.t(locale, "tui.response")); err != nil {
				return snap, err
			}
			if err := r.info(ctx, snap.State.Payload); err != nil {
				return snap, err
			}
			return snap, nil
		}
	}
}

func (r *Renderer) promptField(ctx context.Context, ctrl *controller.Controller, field model.Field) error {
	def, ok := model.Definition(field)
	if !ok {
		return fmt.Errorf("tui: no definition for field %q", field)
	}
	snap := ctrl.Snapshot()
	locale := snap.Locale

	message := r.t(locale, def.LabelKey)
	if def.Required {
		message += " " + r.t(locale, "page.required_hint")
	}
	help := r.t(locale, def.PlaceholderKey)
	current := snap.Data.Get(field)

	var (
		value string
		err   error
	)
	if def.Input == model.InputTextArea {
		value, err = r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: help})
	} else {
		value, err = r.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: help})
	}
	if err != nil {
		return err
	}
	return ctrl.Change(field, value)
}

func (r *Renderer) reportErrors(ctx context.Context, snap controller.Snapshot) error {
	lines := []string{r.theme.ErrorPrefix + r.t(snap.Locale, "tui.fix_errors")}
	for _, field := range invalidFields(snap.Errors) {
		def, _ := model.Definition(field)
		lines = append(lines, fmt.Sprintf("  - %s: %s", r.t(snap.Locale, def.LabelKey), snap.Errors.Get(field)))
	}
	return r.info(ctx, strings.Join(lines, "\n"))
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	if strings.TrimSpace(msg) == "" {
		return nil
	}
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) t(locale, key string) string {
	return render.Translate(r.translator, locale, key, "")
}

// invalidFields lists the fields with an error in display order.
func invalidFields(errs model.FormErrors) []model.Field {
	var out []model.Field
	for _, field := range model.DisplayOrder() {
		if errs.Has(field) {
			out = append(out, field)
		}
	}
	return out
}
