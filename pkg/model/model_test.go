package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/model"
)

func TestParseField(t *testing.T) {
	field, err := model.ParseField("  Description ")
	if err != nil {
		t.Fatalf("parse field: %v", err)
	}
	if field != model.FieldDescription {
		t.Fatalf("expected description, got %q", field)
	}

	if _, err := model.ParseField("budget"); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestFormDataGetSet(t *testing.T) {
	var data model.FormData
	if !data.IsZero() {
		t.Fatalf("expected zero form")
	}

	for _, field := range model.Fields() {
		if !data.Set(field, "v-"+field.String()) {
			t.Fatalf("set %s failed", field)
		}
	}
	if data.Set(model.Field("budget"), "x") {
		t.Fatalf("expected unknown field to be rejected")
	}

	want := model.FormData{
		Company:     "v-company",
		Name:        "v-name",
		Email:       "v-email",
		Phone:       "v-phone",
		Role:        "v-role",
		Sector:      "v-sector",
		Description: "v-description",
		Problems:    "v-problems",
		Innovation:  "v-innovation",
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Fatalf("form data mismatch (-want +got):\n%s", diff)
	}
	if got := data.Values()[model.FieldPhone]; got != "v-phone" {
		t.Fatalf("values: expected v-phone, got %q", got)
	}
}

func TestFormErrorsHelpers(t *testing.T) {
	errs := model.NewFormErrors()
	if !errs.Valid() {
		t.Fatalf("fresh errors should be valid")
	}

	errs.Set(model.FieldPhone, "bad phone")
	errs.Set(model.FieldCompany, "required")
	if errs.Valid() {
		t.Fatalf("expected invalid errors")
	}
	if diff := cmp.Diff([]model.Field{model.FieldCompany, model.FieldPhone}, errs.Fields()); diff != "" {
		t.Fatalf("error fields mismatch (-want +got):\n%s", diff)
	}

	clone := errs.Clone()
	errs.Clear(model.FieldPhone)
	if clone.Get(model.FieldPhone) != "bad phone" {
		t.Fatalf("clone should not observe later mutations")
	}
	if errs.Has(model.FieldPhone) {
		t.Fatalf("expected phone error cleared")
	}
	if !errs.Has(model.FieldCompany) {
		t.Fatalf("clear must not touch other fields")
	}
}

func TestDefinitionsDisplayOrder(t *testing.T) {
	want := []model.Field{
		model.FieldCompany,
		model.FieldRole,
		model.FieldPhone,
		model.FieldSector,
		model.FieldName,
		model.FieldDescription,
		model.FieldProblems,
		model.FieldInnovation,
		model.FieldEmail,
	}
	if diff := cmp.Diff(want, model.DisplayOrder()); diff != "" {
		t.Fatalf("display order mismatch (-want +got):\n%s", diff)
	}

	def, ok := model.Definition(model.FieldDescription)
	if !ok {
		t.Fatalf("expected description definition")
	}
	if def.Input != model.InputTextArea || !def.Required {
		t.Fatalf("unexpected description definition: %+v", def)
	}
	if def.LabelKey != "fields.description.label" {
		t.Fatalf("unexpected label key %q", def.LabelKey)
	}
}

func TestSubmissionStateStatus(t *testing.T) {
	state := model.NewSubmissionState()
	if state.Status() != model.StatusIdle {
		t.Fatalf("expected idle, got %s", state.Status())
	}

	state.Phase = model.PhaseSubmitting
	if state.Status() != model.StatusSubmitting || !state.Submitting() {
		t.Fatalf("expected submitting")
	}

	state.Phase = model.PhaseIdle
	state.Outcome = model.OutcomeFailed
	if state.Status() != model.StatusCompleted {
		t.Fatalf("expected completed, got %s", state.Status())
	}
}
