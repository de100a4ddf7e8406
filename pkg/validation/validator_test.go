package validation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/testsupport"
	"github.com/goliatone/go-leadform/pkg/validation"
)

func TestValidateAcceptsCompleteForm(t *testing.T) {
	v := validation.New()

	errs, ok := v.Check(testsupport.ValidForm())
	if !ok {
		t.Fatalf("expected valid form, got %v", errs.Fields())
	}
	if v.Errors(testsupport.ValidForm()) != nil {
		t.Fatalf("expected nil raw errors")
	}
}

func TestValidateSingleBlankRequiredField(t *testing.T) {
	v := validation.New()
	required := []model.Field{
		model.FieldCompany,
		model.FieldName,
		model.FieldRole,
		model.FieldSector,
		model.FieldPhone,
		model.FieldDescription,
	}

	for _, field := range required {
		t.Run(field.String(), func(t *testing.T) {
			data := testsupport.ValidForm()
			data.Set(field, "")

			errs := v.Validate(data)
			if diff := cmp.Diff([]model.Field{field}, errs.Fields()); diff != "" {
				t.Fatalf("invalid fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateReturnsEveryField(t *testing.T) {
	data := testsupport.ValidForm()
	data.Company = ""

	errs := validation.New().Validate(data)
	if len(errs) != len(model.Definitions()) {
		t.Fatalf("expected %d keys, got %d", len(model.Definitions()), len(errs))
	}
	for _, def := range model.Definitions() {
		msg, present := errs[def.Field]
		if !present {
			t.Fatalf("missing key for %s", def.Field)
		}
		if (msg != "") != (def.Field == model.FieldCompany) {
			t.Fatalf("unexpected message for %s: %q", def.Field, msg)
		}
	}
}

func TestValidateOptionalFieldsAreFree(t *testing.T) {
	data := testsupport.ValidForm()
	data.Email = "not an email"
	data.Problems = ""
	data.Innovation = testsupport.LongText('x', 2000)

	if _, ok := validation.New().Check(data); !ok {
		t.Fatalf("optional fields must not be validated")
	}
}

func TestValidateMessagesPortuguese(t *testing.T) {
	errs := validation.New().Validate(model.FormData{})

	want := map[model.Field]string{
		model.FieldCompany:     "Nome da empresa é obrigatório",
		model.FieldName:        "Nome é obrigatório.",
		model.FieldRole:        "Cargo é obrigatório.",
		model.FieldSector:      "Setor é obrigatório.",
		model.FieldPhone:       "Telefone é obrigatório.",
		model.FieldDescription: "Descrição é obrigatória.",
	}
	for field, message := range want {
		if got := errs.Get(field); got != message {
			t.Fatalf("%s: want %q, got %q", field, message, got)
		}
	}
	if errs.Has(model.FieldEmail) {
		t.Fatalf("email should not be required")
	}
}

func TestValidateMessagesEnglish(t *testing.T) {
	data := testsupport.ValidForm()
	data.Phone = "abc"

	errs := validation.New(validation.WithLocale("en-US")).Validate(data)
	if got := errs.Get(model.FieldPhone); got != "Invalid phone format." {
		t.Fatalf("unexpected english phone message %q", got)
	}
}

func TestValidatePhone(t *testing.T) {
	v := validation.New()
	cases := []struct {
		phone string
		code  string
	}{
		{phone: "+5511999999999"},
		{phone: "(11) 99999-9999"},
		{phone: "12"},
		{phone: "abc", code: validation.CodeInvalidFormat},
		{phone: "0800 123 456", code: validation.CodeInvalidFormat},
		{phone: "1", code: validation.CodeInvalidFormat},
		{phone: "1234567890123456", code: validation.CodeInvalidFormat},
		{phone: "   ", code: validation.CodeInvalidFormat},
		{phone: "", code: validation.CodeRequired},
	}

	for _, tc := range cases {
		t.Run(tc.phone, func(t *testing.T) {
			data := testsupport.ValidForm()
			data.Phone = tc.phone

			got := codeOf(t, v, data, "phone")
			if got != tc.code {
				t.Fatalf("phone %q: want code %q, got %q", tc.phone, tc.code, got)
			}
		})
	}
}

func TestValidateDescriptionLength(t *testing.T) {
	v := validation.New()
	cases := []struct {
		name        string
		description string
		code        string
	}{
		{name: "at limit", description: testsupport.LongText('a', 300)},
		{name: "multibyte at limit", description: testsupport.LongText('ç', 300)},
		{name: "over limit", description: testsupport.LongText('a', 301), code: validation.CodeTooLong},
		{name: "blank over limit", description: strings.Repeat(" ", 301), code: validation.CodeTooLong},
		{name: "blank", description: "  ", code: validation.CodeRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := testsupport.ValidForm()
			data.Description = tc.description

			if got := codeOf(t, v, data, "description"); got != tc.code {
				t.Fatalf("want code %q, got %q", tc.code, got)
			}
		})
	}

	data := testsupport.ValidForm()
	data.Description = testsupport.LongText('a', 301)
	if got := v.Validate(data).Get(model.FieldDescription); got != "A descrição deve ter no máximo 300 caracteres" {
		t.Fatalf("unexpected too long message %q", got)
	}
}

func TestValidateFallsBackToRuleMessage(t *testing.T) {
	v := validation.New(validation.WithTranslator(emptyTranslator{}))

	errs := v.Validate(model.FormData{})
	if got := errs.Get(model.FieldCompany); got != "Campo obrigatório." {
		t.Fatalf("unexpected fallback %q", got)
	}
}

func TestValidatorWithLocaleCopies(t *testing.T) {
	base := validation.New()
	en := base.WithLocale("en")

	if base.Locale() != "pt-BR" || en.Locale() != "en" {
		t.Fatalf("unexpected locales %q %q", base.Locale(), en.Locale())
	}
}

func codeOf(t *testing.T, v *validation.Validator, data model.FormData, field string) string {
	t.Helper()
	err, ok := v.Errors(data)[field]
	if !ok {
		return ""
	}
	coded, ok := err.(interface{ Code() string })
	if !ok {
		t.Fatalf("error %v carries no code", err)
	}
	return coded.Code()
}

type emptyTranslator struct{}

func (emptyTranslator) Translate(string, string, ...any) (string, error) {
	return "", nil
}
