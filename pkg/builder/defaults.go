package builder

import "github.com/goliatone/go-formbuilder/pkg/layout"

const (
	// DefaultFormID is the id of the config a fresh session starts with.
	DefaultFormID = "form-1"
	// DefaultSectionLabel is the label given to new sections.
	DefaultSectionLabel = "New Section"
	// DefaultFieldLabel is the label given to new fields.
	DefaultFieldLabel = "Field label"
	// DefaultRowFieldCount is the number of text fields seeded in a new row.
	DefaultRowFieldCount = 3
)

// InitialConfig returns the config a new builder session starts from: an
// unlabeled create form with sections enabled and one default section.
func InitialConfig(ids IDGenerator) layout.FormConfig {
	if ids == nil {
		ids = UUIDGenerator()
	}
	alloc := newAllocator(ids, map[string]struct{}{DefaultFormID: {}}, nil)
	return layout.FormConfig{
		ID:              DefaultFormID,
		Label:           "",
		ViewType:        layout.ViewTypeCreate,
		SectionsEnabled: true,
		Sections:        []layout.Section{alloc.section()},
	}
}

func (a *allocator) field(fieldType layout.FieldType) layout.Field {
	field := layout.Field{
		ID:       a.id(),
		Name:     a.fieldName(),
		Label:    DefaultFieldLabel,
		Type:     fieldType,
		Size:     layout.FieldSizeSmall,
		Required: false,
	}
	if fieldType == layout.FieldTypeSelect {
		field.Options = []string{defaultSelectOption}
	}
	return field
}

func (a *allocator) row() layout.Row {
	row := layout.Row{ID: a.id(), Fields: make([]layout.Field, 0, DefaultRowFieldCount)}
	for i := 0; i < DefaultRowFieldCount; i++ {
		row.Fields = append(row.Fields, a.field(layout.FieldTypeText))
	}
	return row
}

func (a *allocator) section() layout.Section {
	return layout.Section{
		ID:        a.id(),
		Label:     DefaultSectionLabel,
		Collapsed: false,
		Rows:      []layout.Row{a.row()},
	}
}
