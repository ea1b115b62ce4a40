package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sampleConfig() FormConfig {
	return FormConfig{
		ID:              "form-1",
		Label:           "Onboarding",
		ViewType:        ViewTypeCreate,
		SectionsEnabled: true,
		Sections: []Section{
			{
				ID:    "s1",
				Label: "Profile",
				Rows: []Row{
					{
						ID: "r1",
						Fields: []Field{
							{ID: "f1", Name: "first_name", Label: "First name", Type: FieldTypeText, Size: FieldSizeMedium, Required: true},
							{ID: "f2", Name: "plan", Label: "Plan", Type: FieldTypeSelect, Size: FieldSizeMedium, Options: []string{"free", "pro"}},
						},
					},
				},
			},
			{
				ID:        "s2",
				Label:     "Extras",
				Collapsed: true,
				Rows: []Row{
					{ID: "r2", Fields: []Field{{ID: "f3", Name: "agree", Label: "Agree", Type: FieldTypeCheckbox, Size: FieldSizeExtraLarge}}},
					{ID: "r3"},
				},
			},
		},
	}
}

func TestFieldSizeTables(t *testing.T) {
	cases := []struct {
		size    FieldSize
		percent int
		span    int
	}{
		{FieldSizeSmall, 33, 4},
		{FieldSizeMedium, 50, 6},
		{FieldSizeLarge, 66, 8},
		{FieldSizeExtraLarge, 100, 12},
		{FieldSize("huge"), 0, 12},
	}
	for _, tc := range cases {
		if got := tc.size.Percent(); got != tc.percent {
			t.Errorf("%s percent: want %d, got %d", tc.size, tc.percent, got)
		}
		if got := tc.size.Span(); got != tc.span {
			t.Errorf("%s span: want %d, got %d", tc.size, tc.span, got)
		}
	}
	if FieldSize("huge").Valid() {
		t.Fatalf("expected unknown size to be invalid")
	}
}

func TestRowPercent(t *testing.T) {
	row := Row{Fields: []Field{{Size: FieldSizeLarge}, {Size: FieldSizeLarge}}}
	if got := RowPercent(row); got != 132 {
		t.Fatalf("want 132, got %d", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := sampleConfig()
	clone := original.Clone()

	clone.Sections[0].Label = "Changed"
	clone.Sections[0].Rows[0].Fields[1].Options[0] = "mutated"
	clone.Sections[1].Rows = append(clone.Sections[1].Rows, Row{ID: "r4"})

	if diff := cmp.Diff(sampleConfig(), original); diff != "" {
		t.Fatalf("original mutated through clone (-want +got):\n%s", diff)
	}
}

func TestValuesClone(t *testing.T) {
	values := Values{"name": "Alice", "nested": map[string]any{"a": []any{1, 2}}}
	clone := values.Clone()
	clone["name"] = "Bob"
	clone["nested"].(map[string]any)["a"].([]any)[0] = 99

	if values["name"] != "Alice" {
		t.Fatalf("scalar leaked through clone")
	}
	if values["nested"].(map[string]any)["a"].([]any)[0] != 1 {
		t.Fatalf("nested slice leaked through clone")
	}
	if Values(nil).Clone() != nil {
		t.Fatalf("nil values should clone to nil")
	}
}

func TestLookups(t *testing.T) {
	cfg := sampleConfig()
	if idx := cfg.FindSection("s2"); idx != 1 {
		t.Fatalf("FindSection: want 1, got %d", idx)
	}
	if idx := cfg.FindSection("missing"); idx != -1 {
		t.Fatalf("FindSection missing: want -1, got %d", idx)
	}
	if idx := cfg.Sections[0].FindRow("r1"); idx != 0 {
		t.Fatalf("FindRow: want 0, got %d", idx)
	}
	if idx := cfg.Sections[0].Rows[0].FindField("f2"); idx != 1 {
		t.Fatalf("FindField: want 1, got %d", idx)
	}
	want := []string{"first_name", "plan", "agree"}
	if diff := cmp.Diff(want, cfg.FieldNames()); diff != "" {
		t.Fatalf("FieldNames mismatch (-want +got):\n%s", diff)
	}
	if !cfg.HasFieldName("agree") || cfg.HasFieldName("nope") {
		t.Fatalf("HasFieldName mismatch")
	}
	ids := cfg.IDs()
	for _, id := range []string{"form-1", "s1", "s2", "r1", "r2", "r3", "f1", "f2", "f3"} {
		if _, ok := ids[id]; !ok {
			t.Fatalf("expected id %q in IDs()", id)
		}
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatMsgpack} {
		t.Run(string(format), func(t *testing.T) {
			want := sampleConfig()
			data, err := Encode(format, want)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := Decode(format, data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(FormatJSON, []byte("   ")); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := Decode(Format("xml"), []byte("<a/>")); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := ParseFormat("toml"); err == nil {
		t.Fatalf("expected error for unsupported format name")
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"form.yaml": FormatYAML,
		"form.yml":  FormatYAML,
		"form.json": FormatJSON,
		"form.mp":   FormatMsgpack,
		"form.txt":  FormatJSON,
	}
	for path, want := range cases {
		if got := FormatFromPath(path); got != want {
			t.Errorf("%s: want %s, got %s", path, want, got)
		}
	}
}

func TestDecodeValuesYAML(t *testing.T) {
	values, err := DecodeValues(FormatYAML, []byte("name: Alice\nagree: true\nage: 30\n"))
	if err != nil {
		t.Fatalf("decode values: %v", err)
	}
	if values["name"] != "Alice" || values["agree"] != true || values["age"] != 30 {
		t.Fatalf("unexpected values: %#v", values)
	}
}
