package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

func field(id, label string, size layout.FieldSize) layout.Field {
	return layout.Field{ID: id, Name: "f_" + id, Label: label, Type: layout.FieldTypeText, Size: size}
}

func TestValidateLayout(t *testing.T) {
	cases := []struct {
		name string
		cfg  layout.FormConfig
		want []LayoutError
	}{
		{
			name: "empty config",
			cfg:  layout.FormConfig{SectionsEnabled: true},
			want: []LayoutError{{Message: "At least one section is required."}},
		},
		{
			name: "sections disabled",
			cfg:  layout.FormConfig{SectionsEnabled: false},
			want: nil,
		},
		{
			name: "sections disabled ignores broken tree",
			cfg: layout.FormConfig{
				SectionsEnabled: false,
				Sections:        []layout.Section{{ID: "s1"}},
			},
			want: nil,
		},
		{
			name: "blank label without rows",
			cfg: layout.FormConfig{
				SectionsEnabled: true,
				Sections:        []layout.Section{{ID: "s1", Label: ""}},
			},
			want: []LayoutError{
				{Message: "Section label is required.", SectionID: "s1"},
				{Message: `Section "Untitled" must have at least one row.`, SectionID: "s1"},
			},
		},
		{
			name: "empty row",
			cfg: layout.FormConfig{
				SectionsEnabled: true,
				Sections: []layout.Section{{
					ID:    "s1",
					Label: "Contact",
					Rows:  []layout.Row{{ID: "r1"}},
				}},
			},
			want: []LayoutError{
				{Message: `Each row must contain at least one field (section "Contact").`, SectionID: "s1", RowID: "r1"},
			},
		},
		{
			name: "two large fields overflow",
			cfg: layout.FormConfig{
				SectionsEnabled: true,
				Sections: []layout.Section{{
					ID:    "s1",
					Label: "Contact",
					Rows: []layout.Row{{
						ID:     "r1",
						Fields: []layout.Field{field("a", "A", layout.FieldSizeLarge), field("b", "B", layout.FieldSizeLarge)},
					}},
				}},
			},
			want: []LayoutError{
				{Message: `Row in section "Contact" exceeds 100% width (currently 132%).`, SectionID: "s1", RowID: "r1"},
			},
		},
		{
			name: "three small fields fit",
			cfg: layout.FormConfig{
				SectionsEnabled: true,
				Sections: []layout.Section{{
					ID:    "s1",
					Label: "Contact",
					Rows: []layout.Row{{
						ID: "r1",
						Fields: []layout.Field{
							field("a", "A", layout.FieldSizeSmall),
							field("b", "B", layout.FieldSizeSmall),
							field("c", "C", layout.FieldSizeSmall),
						},
					}},
				}},
			},
			want: nil,
		},
		{
			name: "blank field label",
			cfg: layout.FormConfig{
				SectionsEnabled: true,
				Sections: []layout.Section{{
					ID:    "s1",
					Label: "Contact",
					Rows: []layout.Row{{
						ID:     "r1",
						Fields: []layout.Field{field("a", "  ", layout.FieldSizeSmall)},
					}},
				}},
			},
			want: []LayoutError{
				{Message: "All fields must have a label.", SectionID: "s1", RowID: "r1"},
			},
		},
		{
			name: "one message per blank field",
			cfg: layout.FormConfig{
				SectionsEnabled: true,
				Sections: []layout.Section{{
					ID:    "s1",
					Label: "Contact",
					Rows: []layout.Row{{
						ID:     "r1",
						Fields: []layout.Field{field("a", "", layout.FieldSizeSmall), field("b", "", layout.FieldSizeSmall)},
					}},
				}},
			},
			want: []LayoutError{
				{Message: "All fields must have a label.", SectionID: "s1", RowID: "r1"},
				{Message: "All fields must have a label.", SectionID: "s1", RowID: "r1"},
			},
		},
		{
			name: "findings follow traversal order",
			cfg: layout.FormConfig{
				SectionsEnabled: true,
				Sections: []layout.Section{
					{
						ID:    "s1",
						Label: " ",
						Rows: []layout.Row{
							{ID: "r1", Fields: []layout.Field{field("a", "", layout.FieldSizeExtraLarge), field("b", "B", layout.FieldSizeSmall)}},
							{ID: "r2"},
						},
					},
					{ID: "s2", Label: "Second"},
				},
			},
			want: []LayoutError{
				{Message: "Section label is required.", SectionID: "s1"},
				{Message: `Row in section " " exceeds 100% width (currently 133%).`, SectionID: "s1", RowID: "r1"},
				{Message: "All fields must have a label.", SectionID: "s1", RowID: "r1"},
				{Message: `Each row must contain at least one field (section " ").`, SectionID: "s1", RowID: "r2"},
				{Message: `Section "Second" must have at least one row.`, SectionID: "s2"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateLayout(tc.cfg)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("findings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateLayoutDoesNotMutate(t *testing.T) {
	cfg := layout.FormConfig{
		SectionsEnabled: true,
		Sections:        []layout.Section{{ID: "s1", Rows: []layout.Row{{ID: "r1"}}}},
	}
	before := cfg.Clone()
	_ = ValidateLayout(cfg)
	if diff := cmp.Diff(before, cfg); diff != "" {
		t.Fatalf("validator mutated config (-want +got):\n%s", diff)
	}
}

func TestValidateSettingsAndValidate(t *testing.T) {
	cfg := layout.FormConfig{Label: " ", ViewType: "", SectionsEnabled: true}

	want := []string{
		"Form label is required",
		"View type is required",
		"At least one section is required.",
	}
	if diff := cmp.Diff(want, Messages(Validate(cfg))); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	ok := layout.FormConfig{Label: "Survey", ViewType: layout.ViewTypeEdit}
	if errs := Validate(ok); len(errs) != 0 {
		t.Fatalf("expected no findings, got %v", errs)
	}
}

func TestLayoutErrorImplementsError(t *testing.T) {
	var err error = LayoutError{Message: "All fields must have a label."}
	if err.Error() != "All fields must have a label." {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}
