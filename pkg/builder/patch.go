package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// ErrInvalidPatch is returned when a field patch does not fit the field it
// targets. The reducer leaves the config untouched in that case.
var ErrInvalidPatch = errors.New("builder: invalid field patch")

var (
	errPatchOptionsNotSelect = errors.New("options are only allowed on select fields")
	errPatchInvalidType      = errors.New("unknown field type")
	errPatchInvalidSize      = errors.New("unknown field size")
	errPatchBlankName        = errors.New("field name is required")
	errPatchDuplicateName    = errors.New("field name already in use")
)

// defaultSelectOption seeds new select fields.
const defaultSelectOption = "Option 1"

// FieldPatch is a typed partial update of a field. Nil members are left
// untouched; Options replaces the whole option list when set.
type FieldPatch struct {
	Name     *string           `json:"name,omitempty" yaml:"name,omitempty"`
	Label    *string           `json:"label,omitempty" yaml:"label,omitempty"`
	Type     *layout.FieldType `json:"type,omitempty" yaml:"type,omitempty"`
	Size     *layout.FieldSize `json:"size,omitempty" yaml:"size,omitempty"`
	Required *bool             `json:"required,omitempty" yaml:"required,omitempty"`
	Options  *[]string         `json:"options,omitempty" yaml:"options,omitempty"`
}

// PatchLabel, PatchName and friends build single-attribute patches.
func PatchLabel(label string) FieldPatch { return FieldPatch{Label: &label} }

func PatchName(name string) FieldPatch { return FieldPatch{Name: &name} }

func PatchType(t layout.FieldType) FieldPatch { return FieldPatch{Type: &t} }

func PatchSize(size layout.FieldSize) FieldPatch { return FieldPatch{Size: &size} }

func PatchRequired(required bool) FieldPatch { return FieldPatch{Required: &required} }

func PatchOptions(options ...string) FieldPatch {
	opts := append([]string{}, options...)
	return FieldPatch{Options: &opts}
}

// Empty reports whether the patch carries no attribute.
func (p FieldPatch) Empty() bool {
	return p.Name == nil && p.Label == nil && p.Type == nil && p.Size == nil && p.Required == nil && p.Options == nil
}

// Merge overlays other on top of p; attributes set in other win.
func (p FieldPatch) Merge(other FieldPatch) FieldPatch {
	out := p
	if other.Name != nil {
		out.Name = other.Name
	}
	if other.Label != nil {
		out.Label = other.Label
	}
	if other.Type != nil {
		out.Type = other.Type
	}
	if other.Size != nil {
		out.Size = other.Size
	}
	if other.Required != nil {
		out.Required = other.Required
	}
	if other.Options != nil {
		out.Options = other.Options
	}
	return out
}

// Apply returns field with the patch merged in. Switching a field to select
// seeds an option when none are supplied; switching away drops options.
func (p FieldPatch) Apply(field layout.Field) layout.Field {
	out := field.Clone()
	if p.Name != nil {
		out.Name = strings.TrimSpace(*p.Name)
	}
	if p.Label != nil {
		out.Label = *p.Label
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Size != nil {
		out.Size = *p.Size
	}
	if p.Required != nil {
		out.Required = *p.Required
	}
	if p.Options != nil {
		out.Options = append([]string{}, (*p.Options)...)
	}

	if out.Type == layout.FieldTypeSelect {
		if out.Options == nil {
			out.Options = []string{defaultSelectOption}
		}
	} else {
		out.Options = nil
	}
	return out
}

// Validate checks the patch against the field it targets inside cfg.
func (p FieldPatch) Validate(cfg layout.FormConfig, field layout.Field) error {
	next := p.Apply(field)
	if p.Type != nil && !next.Type.Valid() {
		return fmt.Errorf("%w: %v %q", ErrInvalidPatch, errPatchInvalidType, *p.Type)
	}
	if p.Size != nil && !next.Size.Valid() {
		return fmt.Errorf("%w: %v %q", ErrInvalidPatch, errPatchInvalidSize, *p.Size)
	}
	if p.Options != nil && next.Type != layout.FieldTypeSelect {
		return fmt.Errorf("%w: %v (field %q is %s)", ErrInvalidPatch, errPatchOptionsNotSelect, field.Name, next.Type)
	}
	if p.Name != nil {
		if next.Name == "" {
			return fmt.Errorf("%w: %v", ErrInvalidPatch, errPatchBlankName)
		}
		if next.Name != field.Name && cfg.HasFieldName(next.Name) {
			return fmt.Errorf("%w: %v %q", ErrInvalidPatch, errPatchDuplicateName, next.Name)
		}
	}
	return nil
}
