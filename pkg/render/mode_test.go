package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		name string
		id   string
		want render.Mode
	}{
		{name: "", want: render.Create{}},
		{name: "create", want: render.Create{}},
		{name: "EDIT", id: "s1", want: render.Edit{SubmissionID: "s1"}},
		{name: "view", id: " s2 ", want: render.View{SubmissionID: "s2"}},
		{name: "layout-edit", id: "s3", want: render.LayoutEdit{SubmissionID: "s3"}},
		{name: "layout-edit-builder", id: "s4", want: render.LayoutEdit{SubmissionID: "s4"}},
	}
	for _, tc := range cases {
		got, err := render.ParseMode(tc.name, tc.id)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", tc.name, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("ParseMode(%q) mismatch (-want +got):\n%s", tc.name, diff)
		}
		if render.ModeName(got) == "" {
			t.Fatalf("mode %T has no name", got)
		}
	}

	for _, bad := range []struct{ name, id string }{{"edit", ""}, {"view", ""}, {"layout-edit", ""}, {"wizard", "x"}} {
		if _, err := render.ParseMode(bad.name, bad.id); !errors.Is(err, render.ErrUnknownMode) {
			t.Fatalf("ParseMode(%q, %q) expected ErrUnknownMode, got %v", bad.name, bad.id, err)
		}
	}
}

func TestModeBehaviour(t *testing.T) {
	cases := []struct {
		mode     render.Mode
		name     string
		readOnly bool
		required bool
		submit   string
	}{
		{render.Create{}, "create", false, true, "Submit"},
		{render.Edit{SubmissionID: "x"}, "edit", false, true, "Save"},
		{render.View{SubmissionID: "x"}, "view", true, false, ""},
		{render.LayoutEdit{SubmissionID: "x"}, "layout-edit", true, false, "Save Edited Layout"},
	}
	for _, tc := range cases {
		if got := render.ModeName(tc.mode); got != tc.name {
			t.Fatalf("ModeName = %q, want %q", got, tc.name)
		}
		if render.ReadOnly(tc.mode) != tc.readOnly {
			t.Fatalf("%s: ReadOnly = %v", tc.name, !tc.readOnly)
		}
		if render.EnforcesRequired(tc.mode) != tc.required {
			t.Fatalf("%s: EnforcesRequired = %v", tc.name, !tc.required)
		}
		if got := render.SubmitLabel(tc.mode); got != tc.submit {
			t.Fatalf("%s: SubmitLabel = %q, want %q", tc.name, got, tc.submit)
		}
		if render.Describe(tc.mode) == "" {
			t.Fatalf("%s: missing banner", tc.name)
		}
	}
	if render.ModeName(nil) != "" || render.Describe(nil) != "" {
		t.Fatalf("nil mode should have no name or banner")
	}
}
