package builder

import "github.com/goliatone/go-formbuilder/pkg/layout"

// Action is a structural edit applied by the reducer. The set of actions is
// closed; callers construct one of the exported action structs below.
type Action interface {
	kind() string
}

// Kind returns the wire name of an action (for example "ADD_FIELD").
func Kind(action Action) string {
	if action == nil {
		return ""
	}
	return action.kind()
}

// SetLabel replaces the form label. Empty labels are allowed and reported by
// validation instead.
type SetLabel struct {
	Label string
}

// SetViewType replaces the default render mode. Invalid values are ignored.
type SetViewType struct {
	ViewType layout.ViewType
}

// SetSectionsEnabled toggles whether the section tree is rendered and
// validated. The tree itself is kept either way.
type SetSectionsEnabled struct {
	Enabled bool
}

// AddSection appends a default section with one default row.
type AddSection struct{}

// DeleteSection removes a section and everything below it.
type DeleteSection struct {
	SectionID string
}

// ToggleSectionCollapse flips the collapsed flag of a section.
type ToggleSectionCollapse struct {
	SectionID string
}

// UpdateSectionLabel replaces a section label.
type UpdateSectionLabel struct {
	SectionID string
	Label     string
}

// AddRow appends a default row to a section.
type AddRow struct {
	SectionID string
}

// DeleteRow removes a row from a section.
type DeleteRow struct {
	SectionID string
	RowID     string
}

// AddField appends a default field of the given type to a row.
type AddField struct {
	SectionID string
	RowID     string
	FieldType layout.FieldType
}

// DeleteField removes a field from a row.
type DeleteField struct {
	SectionID string
	RowID     string
	FieldID   string
}

// UpdateField merges a typed patch into a field.
type UpdateField struct {
	SectionID string
	RowID     string
	FieldID   string
	Patch     FieldPatch
}

// LoadConfig replaces the whole tree, for example when a stored submission
// layout is reopened in the builder.
type LoadConfig struct {
	Config layout.FormConfig
}

const (
	KindSetLabel              = "SET_FORM_LABEL"
	KindSetViewType           = "SET_VIEW_TYPE"
	KindSetSectionsEnabled    = "SET_SECTIONS_ENABLED"
	KindAddSection            = "ADD_SECTION"
	KindDeleteSection         = "DELETE_SECTION"
	KindToggleSectionCollapse = "TOGGLE_SECTION_COLLAPSE"
	KindUpdateSectionLabel    = "UPDATE_SECTION_LABEL"
	KindAddRow                = "ADD_ROW"
	KindDeleteRow             = "DELETE_ROW"
	KindAddField              = "ADD_FIELD"
	KindDeleteField           = "DELETE_FIELD"
	KindUpdateField           = "UPDATE_FIELD"
	KindLoadConfig            = "LOAD_CONFIG"
)

func (SetLabel) kind() string              { return KindSetLabel }
func (SetViewType) kind() string           { return KindSetViewType }
func (SetSectionsEnabled) kind() string    { return KindSetSectionsEnabled }
func (AddSection) kind() string            { return KindAddSection }
func (DeleteSection) kind() string         { return KindDeleteSection }
func (ToggleSectionCollapse) kind() string { return KindToggleSectionCollapse }
func (UpdateSectionLabel) kind() string    { return KindUpdateSectionLabel }
func (AddRow) kind() string                { return KindAddRow }
func (DeleteRow) kind() string             { return KindDeleteRow }
func (AddField) kind() string              { return KindAddField }
func (DeleteField) kind() string           { return KindDeleteField }
func (UpdateField) kind() string           { return KindUpdateField }
func (LoadConfig) kind() string            { return KindLoadConfig }
