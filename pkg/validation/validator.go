package validation

import (
	"errors"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
)

// Validator evaluates FormData and produces localized FormErrors.
type Validator struct {
	translator render.Translator
	locale     string
}

// Option configures a Validator.
type Option func(*Validator)

// WithTranslator overrides the message source. Defaults to the embedded
// catalog.
func WithTranslator(t render.Translator) Option {
	return func(v *Validator) {
		if t != nil {
			v.translator = t
		}
	}
}

// WithLocale selects the language of produced messages.
func WithLocale(locale string) Option {
	return func(v *Validator) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			v.locale = trimmed
		}
	}
}

// New constructs a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{locale: render.DefaultLocale}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	if v.translator == nil {
		if catalog, err := render.DefaultCatalog(); err == nil {
			v.translator = catalog
		}
	}
	return v
}

// Locale returns the language messages are produced in.
func (v *Validator) Locale() string {
	return v.locale
}

// WithLocale returns a copy of v producing messages in locale.
func (v *Validator) WithLocale(locale string) *Validator {
	clone := *v
	WithLocale(locale)(&clone)
	return &clone
}

// Errors runs every rule and returns the raw failures keyed by field name.
// The result is nil when the data is valid.
func (v *Validator) Errors(data model.FormData) ozzo.Errors {
	var errs ozzo.Errors
	for _, field := range model.Fields() {
		rules, ok := fieldRules[field]
		if !ok {
			continue
		}
		value := data.Get(field)
		for _, rule := range rules {
			if err := rule.Validate(value); err != nil {
				if errs == nil {
					errs = ozzo.Errors{}
				}
				errs[field.String()] = err
			}
		}
	}
	return errs
}

// Validate returns a complete error snapshot for data. Every field has a
// key; an empty message means the field passed.
func (v *Validator) Validate(data model.FormData) model.FormErrors {
	out := model.NewFormErrors()
	for name, err := range v.Errors(data) {
		field, parseErr := model.ParseField(name)
		if parseErr != nil {
			continue
		}
		out.Set(field, v.message(field, err))
	}
	return out
}

// Check validates data and reports whether it is valid.
func (v *Validator) Check(data model.FormData) (model.FormErrors, bool) {
	errs := v.Validate(data)
	return errs, errs.Valid()
}

func (v *Validator) message(field model.Field, err error) string {
	var ruleErr ozzo.Error
	if !errors.As(err, &ruleErr) {
		return err.Error()
	}
	code := ruleErr.Code()
	return render.TranslateFirst(v.translator, v.locale, ruleErr.Message(),
		code+"."+field.String(),
		code+".default",
	)
}
