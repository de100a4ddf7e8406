package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassPage     ChromeClass = "leadform-page"
	ClassHero     ChromeClass = "leadform-hero"
	ClassForm     ChromeClass = "leadform-form"
	ClassGrid     ChromeClass = "leadform-grid"
	ClassField    ChromeClass = "leadform-field"
	ClassWide     ChromeClass = "leadform-field--wide"
	ClassInvalid  ChromeClass = "leadform-field--invalid"
	ClassResponse ChromeClass = "leadform-response"
	ClassErrors   ChromeClass = "leadform-errors"
	ClassActions  ChromeClass = "leadform-actions"
)

// ChromeClasses overrides the class applied to each page region. Empty
// values keep the defaults.
type ChromeClasses struct {
	Page     string
	Form     string
	Grid     string
	Response string
	Errors   string
	Actions  string
}

func (c ChromeClasses) resolve() map[string]string {
	pick := func(override string, fallback ChromeClass) string {
		if cleaned := sanitizeClassList(override); cleaned != "" {
			return cleaned
		}
		return string(fallback)
	}
	return map[string]string{
		"page":     pick(c.Page, ClassPage),
		"hero":     string(ClassHero),
		"form":     pick(c.Form, ClassForm),
		"grid":     pick(c.Grid, ClassGrid),
		"field":    string(ClassField),
		"wide":     string(ClassWide),
		"invalid":  string(ClassInvalid),
		"response": pick(c.Response, ClassResponse),
		"errors":   pick(c.Errors, ClassErrors),
		"actions":  pick(c.Actions, ClassActions),
	}
}
