package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

var (
	// ErrDuplicateID is returned when a loaded config reuses an entity id.
	ErrDuplicateID = errors.New("builder: duplicate id")
	// ErrDuplicateName is returned when a loaded config reuses a field name.
	ErrDuplicateName = errors.New("builder: duplicate field name")
)

// DuplicateError locates the first reused id or field name in a config.
// Path is a JSON pointer into the encoded config.
type DuplicateError struct {
	Err   error
	Value string
	Path  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%v %q at %s", e.Err, e.Value, e.Path)
}

func (e *DuplicateError) Unwrap() error {
	return e.Err
}

// CheckUnique reports the first id shared by two entities (the form id
// included) or the first field name shared by two fields. Blank ids and
// names count as values, so two blank names collide.
func CheckUnique(cfg layout.FormConfig) error {
	ids := map[string]struct{}{}
	if cfg.ID != "" {
		ids[cfg.ID] = struct{}{}
	}
	names := map[string]struct{}{}

	claim := func(id, path string) error {
		id = strings.TrimSpace(id)
		if _, taken := ids[id]; taken {
			return &DuplicateError{Err: ErrDuplicateID, Value: id, Path: path + "/id"}
		}
		ids[id] = struct{}{}
		return nil
	}

	for s, section := range cfg.Sections {
		sectionPath := fmt.Sprintf("/sections/%d", s)
		if err := claim(section.ID, sectionPath); err != nil {
			return err
		}
		for r, row := range section.Rows {
			rowPath := fmt.Sprintf("%s/rows/%d", sectionPath, r)
			if err := claim(row.ID, rowPath); err != nil {
				return err
			}
			for f, field := range row.Fields {
				fieldPath := fmt.Sprintf("%s/fields/%d", rowPath, f)
				if err := claim(field.ID, fieldPath); err != nil {
					return err
				}
				if _, taken := names[field.Name]; taken {
					return &DuplicateError{Err: ErrDuplicateName, Value: field.Name, Path: fieldPath + "/name"}
				}
				names[field.Name] = struct{}{}
			}
		}
	}
	return nil
}
