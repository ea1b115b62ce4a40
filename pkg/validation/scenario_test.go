package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/layout"
)

func TestValidateFollowsBuilderEdits(t *testing.T) {
	ids := builder.CounterGenerator("id")
	reducer := builder.NewReducer(ids)

	state := layout.FormConfig{ID: builder.DefaultFormID, ViewType: layout.ViewTypeCreate, SectionsEnabled: true}
	if diff := cmp.Diff([]string{"At least one section is required."}, Messages(ValidateLayout(state))); diff != "" {
		t.Fatalf("empty config (-want +got):\n%s", diff)
	}

	state = reducer.Apply(state, builder.AddSection{})
	if len(state.Sections) != 1 || len(state.Sections[0].Rows) != 1 {
		t.Fatalf("expected one section with one row, got %+v", state.Sections)
	}
	section := state.Sections[0]
	row := section.Rows[0]
	for _, field := range row.Fields[1:] {
		state = reducer.Apply(state, builder.DeleteField{SectionID: section.ID, RowID: row.ID, FieldID: field.ID})
	}
	state = reducer.Apply(state, builder.UpdateField{
		SectionID: section.ID,
		RowID:     row.ID,
		FieldID:   row.Fields[0].ID,
		Patch:     builder.PatchLabel(""),
	})
	if got := len(state.Sections[0].Rows[0].Fields); got != 1 {
		t.Fatalf("expected a single field, got %d", got)
	}

	wantLayout := []LayoutError{{Message: "All fields must have a label.", SectionID: section.ID, RowID: row.ID}}
	if diff := cmp.Diff(wantLayout, ValidateLayout(state)); diff != "" {
		t.Fatalf("layout errors (-want +got):\n%s", diff)
	}

	wantAll := []string{"Form label is required", "All fields must have a label."}
	if diff := cmp.Diff(wantAll, Messages(Validate(state))); diff != "" {
		t.Fatalf("settings and layout errors (-want +got):\n%s", diff)
	}

	state = reducer.Apply(state, builder.SetLabel{Label: "Survey"})
	if diff := cmp.Diff([]string{"All fields must have a label."}, Messages(Validate(state))); diff != "" {
		t.Fatalf("after naming the form (-want +got):\n%s", diff)
	}
}
