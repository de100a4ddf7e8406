package validation

import (
	"regexp"
	"strings"
	"unicode"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-leadform/pkg/model"
)

// Error codes. Each code is also the message catalog prefix: the message for
// a field is looked up as "<code>.<field>" and then "<code>.default".
const (
	CodeRequired      = "validation.required"
	CodeInvalidFormat = "validation.invalid_format"
	CodeTooLong       = "validation.too_long"
)

var (
	// ErrRequired reports a blank required field.
	ErrRequired = ozzo.NewError(CodeRequired, "Campo obrigatório.")
	// ErrInvalidFormat reports a value that does not match the expected shape.
	ErrInvalidFormat = ozzo.NewError(CodeInvalidFormat, "Formato inválido.")
	// ErrTooLong reports text above the character budget.
	ErrTooLong = ozzo.NewError(CodeTooLong, "Texto muito longo.")
)

// phonePattern is an E.164 shape checked against the digits of the input.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Required fails when the trimmed string value is empty. ozzo's own Required
// rule accepts whitespace-only strings.
var Required = ozzo.By(func(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
})

// Phone strips every non-digit character from a non-empty value and matches
// the result against an E.164 pattern. Empty values pass.
var Phone = ozzo.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !phonePattern.MatchString(digitsOnly(s)) {
		return ErrInvalidFormat
	}
	return nil
})

// MaxRunes fails when the value has more than max characters.
func MaxRunes(max int) ozzo.Rule {
	return ozzo.RuneLength(0, max).ErrorObject(ErrTooLong)
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fieldRules lists the rules of every validated field. Rules run in order
// and the last failing rule decides the reported error.
var fieldRules = map[model.Field][]ozzo.Rule{
	model.FieldCompany:     {Required},
	model.FieldName:        {Required},
	model.FieldRole:        {Required},
	model.FieldSector:      {Required},
	model.FieldPhone:       {Required, Phone},
	model.FieldDescription: {Required, MaxRunes(model.DescriptionMaxLength)},
}
