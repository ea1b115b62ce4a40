package builder

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// ErrUnknownAction is returned for nil or foreign actions.
var ErrUnknownAction = errors.New("builder: unknown action")

// Reducer applies actions to a form config without mutating its input.
type Reducer struct {
	ids IDGenerator
}

// NewReducer returns a reducer drawing ids from ids, or from random UUIDs
// when ids is nil.
func NewReducer(ids IDGenerator) *Reducer {
	if ids == nil {
		ids = UUIDGenerator()
	}
	return &Reducer{ids: ids}
}

// Apply returns the config that results from applying action to state.
// Actions that target missing ids, carry a rejected patch, or load a config
// with duplicate ids or names return state unchanged.
func (r *Reducer) Apply(state layout.FormConfig, action Action) layout.FormConfig {
	next, _, err := r.apply(state, action)
	if err != nil {
		return state
	}
	return next
}

// Reduce behaves like Apply but reports rejected patches, configs loaded
// with duplicate ids or names, and unknown actions.
func (r *Reducer) Reduce(state layout.FormConfig, action Action) (layout.FormConfig, error) {
	next, _, err := r.apply(state, action)
	if err != nil {
		return state, err
	}
	return next, nil
}

// apply reports whether the action changed anything so callers can skip
// recording no-ops.
func (r *Reducer) apply(state layout.FormConfig, action Action) (layout.FormConfig, bool, error) {
	switch a := action.(type) {
	case SetLabel:
		if state.Label == a.Label {
			return state, false, nil
		}
		next := state.Clone()
		next.Label = a.Label
		return next, true, nil

	case SetViewType:
		if !a.ViewType.Valid() || state.ViewType == a.ViewType {
			return state, false, nil
		}
		next := state.Clone()
		next.ViewType = a.ViewType
		return next, true, nil

	case SetSectionsEnabled:
		if state.SectionsEnabled == a.Enabled {
			return state, false, nil
		}
		next := state.Clone()
		next.SectionsEnabled = a.Enabled
		return next, true, nil

	case AddSection:
		next := state.Clone()
		next.Sections = append(next.Sections, r.allocatorFor(next).section())
		return next, true, nil

	case DeleteSection:
		idx := state.FindSection(a.SectionID)
		if idx < 0 {
			return state, false, nil
		}
		next := state.Clone()
		next.Sections = append(next.Sections[:idx], next.Sections[idx+1:]...)
		return next, true, nil

	case ToggleSectionCollapse:
		return r.editSection(state, a.SectionID, func(_ layout.FormConfig, section *layout.Section) error {
			section.Collapsed = !section.Collapsed
			return nil
		})

	case UpdateSectionLabel:
		idx := state.FindSection(a.SectionID)
		if idx < 0 || state.Sections[idx].Label == a.Label {
			return state, false, nil
		}
		next := state.Clone()
		next.Sections[idx].Label = a.Label
		return next, true, nil

	case AddRow:
		return r.editSection(state, a.SectionID, func(cfg layout.FormConfig, section *layout.Section) error {
			section.Rows = append(section.Rows, r.allocatorFor(cfg).row())
			return nil
		})

	case DeleteRow:
		return r.editRow(state, a.SectionID, a.RowID, func(_ layout.FormConfig, section *layout.Section, idx int) error {
			section.Rows = append(section.Rows[:idx], section.Rows[idx+1:]...)
			return nil
		})

	case AddField:
		fieldType := a.FieldType
		if fieldType == "" {
			fieldType = layout.FieldTypeText
		}
		if !fieldType.Valid() {
			return state, false, nil
		}
		return r.editRow(state, a.SectionID, a.RowID, func(cfg layout.FormConfig, section *layout.Section, idx int) error {
			row := &section.Rows[idx]
			row.Fields = append(row.Fields, r.allocatorFor(cfg).field(fieldType))
			return nil
		})

	case DeleteField:
		return r.editRow(state, a.SectionID, a.RowID, func(_ layout.FormConfig, section *layout.Section, idx int) error {
			row := &section.Rows[idx]
			fieldIdx := row.FindField(a.FieldID)
			if fieldIdx < 0 {
				return errNoChange
			}
			row.Fields = append(row.Fields[:fieldIdx], row.Fields[fieldIdx+1:]...)
			return nil
		})

	case UpdateField:
		if a.Patch.Empty() {
			return state, false, nil
		}
		return r.editRow(state, a.SectionID, a.RowID, func(cfg layout.FormConfig, section *layout.Section, idx int) error {
			row := &section.Rows[idx]
			fieldIdx := row.FindField(a.FieldID)
			if fieldIdx < 0 {
				return errNoChange
			}
			if err := a.Patch.Validate(cfg, row.Fields[fieldIdx]); err != nil {
				return err
			}
			row.Fields[fieldIdx] = a.Patch.Apply(row.Fields[fieldIdx])
			return nil
		})

	case LoadConfig:
		if err := CheckUnique(a.Config); err != nil {
			return state, false, err
		}
		return a.Config.Clone(), true, nil

	case nil:
		return state, false, ErrUnknownAction

	default:
		return state, false, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
}

// errNoChange aborts an edit without reporting an error to the caller.
var errNoChange = errors.New("builder: no change")

func (r *Reducer) editSection(state layout.FormConfig, sectionID string, fn func(layout.FormConfig, *layout.Section) error) (layout.FormConfig, bool, error) {
	idx := state.FindSection(sectionID)
	if idx < 0 {
		return state, false, nil
	}
	next := state.Clone()
	if err := fn(next, &next.Sections[idx]); err != nil {
		return settle(state, err)
	}
	return next, true, nil
}

func (r *Reducer) editRow(state layout.FormConfig, sectionID, rowID string, fn func(layout.FormConfig, *layout.Section, int) error) (layout.FormConfig, bool, error) {
	sectionIdx := state.FindSection(sectionID)
	if sectionIdx < 0 {
		return state, false, nil
	}
	rowIdx := state.Sections[sectionIdx].FindRow(rowID)
	if rowIdx < 0 {
		return state, false, nil
	}
	next := state.Clone()
	if err := fn(next, &next.Sections[sectionIdx], rowIdx); err != nil {
		return settle(state, err)
	}
	return next, true, nil
}

func settle(state layout.FormConfig, err error) (layout.FormConfig, bool, error) {
	if errors.Is(err, errNoChange) {
		return state, false, nil
	}
	return state, false, err
}

func (r *Reducer) allocatorFor(cfg layout.FormConfig) *allocator {
	return newAllocator(r.ids, cfg.IDs(), cfg.FieldNames())
}
