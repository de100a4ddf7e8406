package model

import (
	"fmt"
	"strings"
)

// Field identifies one of the nine lead form inputs.
type Field string

const (
	FieldCompany     Field = "company"
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldRole        Field = "role"
	FieldSector      Field = "sector"
	FieldDescription Field = "description"
	FieldProblems    Field = "problems"
	FieldInnovation  Field = "innovation"
)

// DescriptionMaxLength is the character budget of the company description.
const DescriptionMaxLength = 300

var dataOrder = []Field{
	FieldCompany,
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldRole,
	FieldSector,
	FieldDescription,
	FieldProblems,
	FieldInnovation,
}

// Fields returns every field key in canonical data order.
func Fields() []Field {
	out := make([]Field, len(dataOrder))
	copy(out, dataOrder)
	return out
}

// ParseField resolves a raw input name into a Field. Surrounding whitespace
// and case are ignored.
func ParseField(raw string) (Field, error) {
	candidate := Field(strings.ToLower(strings.TrimSpace(raw)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", fmt.Errorf("model: unknown field %q", raw)
}

// Valid reports whether f is one of the nine known keys.
func (f Field) Valid() bool {
	for _, known := range dataOrder {
		if f == known {
			return true
		}
	}
	return false
}

func (f Field) String() string {
	return string(f)
}

// InputKind selects the control rendered for a field.
type InputKind string

const (
	InputText     InputKind = "text"
	InputTextArea InputKind = "textarea"
)

// FieldDefinition carries the static presentation metadata for a field.
// Labels and placeholders are message catalog keys, resolved at render time.
type FieldDefinition struct {
	Field          Field     `json:"field"`
	Input          InputKind `json:"input"`
	Required       bool      `json:"required"`
	LabelKey       string    `json:"labelKey"`
	PlaceholderKey string    `json:"placeholderKey"`
	// Wide fields span both columns of the form grid.
	Wide bool `json:"wide,omitempty"`
}

var definitions = []FieldDefinition{
	define(FieldCompany, InputText, true, false),
	define(FieldRole, InputText, true, false),
	define(FieldPhone, InputText, true, false),
	define(FieldSector, InputText, true, false),
	define(FieldName, InputText, true, false),
	define(FieldDescription, InputTextArea, true, false),
	define(FieldProblems, InputTextArea, false, true),
	define(FieldInnovation, InputTextArea, false, true),
	define(FieldEmail, InputText, false, true),
}

func define(field Field, input InputKind, required, wide bool) FieldDefinition {
	return FieldDefinition{
		Field:          field,
		Input:          input,
		Required:       required,
		LabelKey:       "fields." + string(field) + ".label",
		PlaceholderKey: "fields." + string(field) + ".placeholder",
		Wide:           wide,
	}
}

// Definitions returns the field definitions in page display order.
func Definitions() []FieldDefinition {
	out := make([]FieldDefinition, len(definitions))
	copy(out, definitions)
	return out
}

// DisplayOrder returns the field keys in page display order.
func DisplayOrder() []Field {
	out := make([]Field, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, def.Field)
	}
	return out
}

// Definition looks up the definition of a single field.
func Definition(field Field) (FieldDefinition, bool) {
	for _, def := range definitions {
		if def.Field == field {
			return def, true
		}
	}
	return FieldDefinition{}, false
}
