package render

import (
	"errors"
	"fmt"
	"strings"
)

// Translator resolves message keys for a locale. Implementations return an
// error when the key is unknown so callers can apply their own fallback.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler produces the string used when a key cannot be
// translated. args carries the caller supplied parameters; fallback text is
// passed as map[string]any{"default": ...}.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

var (
	// ErrMissingTranslator is reported to MissingTranslationHandler when no
	// translator was configured.
	ErrMissingTranslator = errors.New("render: translator is not configured")
	// ErrMissingTranslation signals an unknown key.
	ErrMissingTranslation = errors.New("render: translation not found")
)

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if values, ok := arg.(map[string]any); ok {
			if fallback := strings.TrimSpace(anyToString(values["default"])); fallback != "" {
				return fallback
			}
		}
	}
	return key
}

// Translate resolves key through t, falling back to fallback (or the key
// itself) when the translator is missing or has no entry.
func Translate(t Translator, locale, key, fallback string, args ...any) string {
	return translate(locale, key, fallback, t, missingTranslationDefault, args...)
}

// TranslateFirst returns the first key that resolves, or fallback.
func TranslateFirst(t Translator, locale, fallback string, keys ...string) string {
	if t != nil {
		for _, key := range keys {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if msg, err := t.Translate(locale, key); err == nil && strings.TrimSpace(msg) != "" {
				return msg
			}
		}
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	if len(keys) > 0 {
		return keys[0]
	}
	return ""
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}

	result, err := t.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

func anyToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
