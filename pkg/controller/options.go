package controller

import (
	"strings"

	"github.com/goliatone/go-leadform/pkg/interfaces"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/validation"
)

// Option configures a Controller.
type Option func(*Controller)

// WithValidator replaces the default validator. The validator's locale is
// overridden by WithLocale.
func WithValidator(v *validation.Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithTranslator sets the message source for the submission error and the
// validator.
func WithTranslator(t render.Translator) Option {
	return func(c *Controller) {
		if t != nil {
			c.translator = t
		}
	}
}

// WithLocale selects the language of user facing messages.
func WithLocale(locale string) Option {
	return func(c *Controller) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			c.locale = trimmed
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithListener registers a callback invoked after every state change.
func WithListener(fn func(Snapshot)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.listeners = append(c.listeners, fn)
		}
	}
}

// WithObserver reports submission outcomes, typically to metrics.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observer = observer
	}
}
