package layout

// FieldType enumerates the input kinds a field can render as.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeSelect   FieldType = "select"
	FieldTypeDate     FieldType = "date"
)

// FieldTypes returns the supported field types in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeNumber,
		FieldTypeTextarea,
		FieldTypeCheckbox,
		FieldTypeSelect,
		FieldTypeDate,
	}
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeTextarea, FieldTypeCheckbox, FieldTypeSelect, FieldTypeDate:
		return true
	default:
		return false
	}
}

// ViewType is the default render mode stored on a form.
type ViewType string

const (
	ViewTypeCreate ViewType = "create"
	ViewTypeEdit   ViewType = "edit"
	ViewTypeView   ViewType = "view"
)

// Valid reports whether v is one of create, edit or view.
func (v ViewType) Valid() bool {
	switch v {
	case ViewTypeCreate, ViewTypeEdit, ViewTypeView:
		return true
	default:
		return false
	}
}

// Field models a single input inside a row. Name is the key used in the
// submitted values map and must be unique across the whole config. Options
// are only meaningful for select fields.
type Field struct {
	ID       string    `json:"id" yaml:"id" msgpack:"id"`
	Name     string    `json:"name" yaml:"name" msgpack:"name"`
	Label    string    `json:"label" yaml:"label" msgpack:"label"`
	Type     FieldType `json:"type" yaml:"type" msgpack:"type"`
	Size     FieldSize `json:"size" yaml:"size" msgpack:"size"`
	Required bool      `json:"required" yaml:"required" msgpack:"required"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty" msgpack:"options,omitempty"`
}

// Row is an ordered group of fields sharing one 12-column grid line.
type Row struct {
	ID     string  `json:"id" yaml:"id" msgpack:"id"`
	Fields []Field `json:"fields" yaml:"fields" msgpack:"fields"`
}

// Section groups rows under a label. Collapsed is builder UI state only.
type Section struct {
	ID        string `json:"id" yaml:"id" msgpack:"id"`
	Label     string `json:"label" yaml:"label" msgpack:"label"`
	Collapsed bool   `json:"collapsed" yaml:"collapsed" msgpack:"collapsed"`
	Rows      []Row  `json:"rows" yaml:"rows" msgpack:"rows"`
}

// FormConfig is the root aggregate of the layout tree. When SectionsEnabled
// is false the sections are kept but neither rendered nor validated.
type FormConfig struct {
	ID              string    `json:"id" yaml:"id" msgpack:"id"`
	Label           string    `json:"label" yaml:"label" msgpack:"label"`
	ViewType        ViewType  `json:"viewType" yaml:"viewType" msgpack:"viewType"`
	SectionsEnabled bool      `json:"sectionsEnabled" yaml:"sectionsEnabled" msgpack:"sectionsEnabled"`
	Sections        []Section `json:"sections" yaml:"sections" msgpack:"sections"`
}

// Values maps field names to the filled-in answers (scalars or booleans).
type Values map[string]any
