package render_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestMapErrorPayload(t *testing.T) {
	cfg := testsupport.ContactForm()

	payload := map[string][]string{
		"full_name":                 {"Name is required", " Name is required "},
		"/values/topic":             {"Pick a topic"},
		"body.message":              {"Too short"},
		"$.data.age[0]":             {"Must be a number"},
		"non_field_errors":          {"Form level error"},
		"request/body/unknown":      {"Falls back to form errors"},
		"":                          {"Unscoped form error"},
		"sections/0/rows/0/consent": {"Must agree"},
	}

	mapped := render.MapErrorPayload(cfg, payload)

	wantFields := map[string][]string{
		"full_name": {"Name is required"},
		"topic":     {"Pick a topic"},
		"message":   {"Too short"},
		"age":       {"Must be a number"},
		"consent":   {"Must agree"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Unscoped form error", "Form level error", "Falls back to form errors"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldErrors(t *testing.T) {
	got := render.FieldErrors(map[string][]string{
		" email ": {"Bad", "Bad ", ""},
		"":        {"dropped"},
		"empty":   {"  "},
	})
	want := map[string][]string{"email": {"Bad"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if render.FieldErrors(nil) != nil {
		t.Fatalf("nil input should stay nil")
	}
}

func TestErrorsFrom(t *testing.T) {
	err := fmt.Errorf("submit: %w", &render.RequiredError{Fields: map[string][]string{"a": {"A is required"}}})
	want := map[string][]string{"a": {"A is required"}}
	if diff := cmp.Diff(want, render.ErrorsFrom(err)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if render.ErrorsFrom(render.ErrSessionClosed) != nil {
		t.Fatalf("plain errors carry no field messages")
	}
}
