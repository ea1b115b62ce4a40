package builder

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

func TestDecodeAction(t *testing.T) {
	label := "Renamed"
	required := true

	cases := []struct {
		name    string
		payload string
		want    Action
	}{
		{
			name:    "set label",
			payload: `{"type":"SET_FORM_LABEL","label":"Renamed"}`,
			want:    SetLabel{Label: label},
		},
		{
			name:    "lower case type",
			payload: `{"type":"add_section"}`,
			want:    AddSection{},
		},
		{
			name:    "sections toggle",
			payload: `{"type":"SET_SECTIONS_ENABLED","enabled":false}`,
			want:    SetSectionsEnabled{Enabled: false},
		},
		{
			name:    "add field",
			payload: `{"type":"ADD_FIELD","sectionId":"s1","rowId":"r1","fieldType":"checkbox"}`,
			want:    AddField{SectionID: "s1", RowID: "r1", FieldType: layout.FieldTypeCheckbox},
		},
		{
			name:    "update field",
			payload: `{"type":"UPDATE_FIELD","sectionId":"s1","rowId":"r1","fieldId":"f1","patch":{"required":true}}`,
			want:    UpdateField{SectionID: "s1", RowID: "r1", FieldID: "f1", Patch: FieldPatch{Required: &required}},
		},
		{
			name:    "load config",
			payload: `{"type":"LOAD_CONFIG","config":{"id":"x","label":"X","viewType":"edit","sectionsEnabled":true,"sections":[]}}`,
			want:    LoadConfig{Config: layout.FormConfig{ID: "x", Label: "X", ViewType: layout.ViewTypeEdit, SectionsEnabled: true, Sections: []layout.Section{}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeAction([]byte(tc.payload))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("action mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeActionErrors(t *testing.T) {
	cases := map[string]struct {
		payload string
		want    error
	}{
		"not json":      {payload: `{`, want: ErrMalformedEnvelope},
		"missing type":  {payload: `{}`, want: ErrMalformedEnvelope},
		"unknown type":  {payload: `{"type":"EXPLODE"}`, want: ErrUnknownAction},
		"missing patch": {payload: `{"type":"UPDATE_FIELD","fieldId":"f1"}`, want: ErrMalformedEnvelope},
		"missing label": {payload: `{"type":"UPDATE_SECTION_LABEL","sectionId":"s1"}`, want: ErrMalformedEnvelope},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeAction([]byte(tc.payload)); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
