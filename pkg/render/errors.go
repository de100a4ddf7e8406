package render

import (
	"strings"

	"github.com/goliatone/go-leadform/pkg/model"
)

// ErrorMapping splits validation output into field-level messages keyed by
// input name and form-level messages shown in the page alert.
type ErrorMapping struct {
	Fields map[string]string `json:"fields,omitempty"`
	Form   []string          `json:"form,omitempty"`
}

// Empty reports whether the mapping carries no message at all.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MapFormErrors converts FormErrors plus any form-level messages into an
// ErrorMapping. Fields without a message are omitted.
func MapFormErrors(errs model.FormErrors, formLevel ...string) ErrorMapping {
	mapping := ErrorMapping{}
	for _, field := range errs.Fields() {
		if mapping.Fields == nil {
			mapping.Fields = make(map[string]string)
		}
		mapping.Fields[field.String()] = strings.TrimSpace(errs.Get(field))
	}
	mapping.Form = normalizeMessages(formLevel)
	return mapping
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
