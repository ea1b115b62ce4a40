package widgets

import (
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  layout.Field
		expect string
	}{
		{name: "text", field: layout.Field{Type: layout.FieldTypeText}, expect: ControlText},
		{name: "number", field: layout.Field{Type: layout.FieldTypeNumber}, expect: ControlNumber},
		{name: "date", field: layout.Field{Type: layout.FieldTypeDate}, expect: ControlDate},
		{name: "textarea", field: layout.Field{Type: layout.FieldTypeTextarea}, expect: ControlTextarea},
		{name: "checkbox", field: layout.Field{Type: layout.FieldTypeCheckbox}, expect: ControlCheckbox},
		{name: "select", field: layout.Field{Type: layout.FieldTypeSelect, Options: []string{"a"}}, expect: ControlSelect},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(tc.field)
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestResolve_UnknownType(t *testing.T) {
	reg := NewRegistry()
	if got, ok := reg.Resolve(layout.Field{Type: "color"}); ok {
		t.Fatalf("expected no control for unknown type, got %q", got)
	}
	if got := reg.ResolveOr(layout.Field{Type: "color"}, ControlText); got != ControlText {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register("toggle", 999, func(field layout.Field) bool {
		return field.Type == layout.FieldTypeCheckbox
	})

	got, ok := reg.Resolve(layout.Field{Type: layout.FieldTypeCheckbox})
	if !ok || got != "toggle" {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
}

func TestEmptyRegistry(t *testing.T) {
	if _, ok := NewEmptyRegistry().Resolve(layout.Field{Type: layout.FieldTypeText}); ok {
		t.Fatalf("empty registry should never resolve")
	}
	var nilReg *Registry
	if _, ok := nilReg.Resolve(layout.Field{Type: layout.FieldTypeText}); ok {
		t.Fatalf("nil registry should never resolve")
	}
}

func TestLabelInline(t *testing.T) {
	if !LabelInline(ControlCheckbox) || LabelInline(ControlText) {
		t.Fatalf("only checkboxes render labels inline")
	}
}
