package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// LayoutError is a structural finding on the layout tree. SectionID and RowID
// locate the offending node when the finding is not form-wide.
type LayoutError struct {
	Message   string `json:"message"`
	SectionID string `json:"sectionId,omitempty"`
	RowID     string `json:"rowId,omitempty"`
}

func (e LayoutError) Error() string {
	return e.Message
}

const untitledSection = "Untitled"

// ValidateLayout collects every structural problem in cfg, in section, row,
// field order. A config with sections disabled is always valid.
func ValidateLayout(cfg layout.FormConfig) []LayoutError {
	if !cfg.SectionsEnabled {
		return nil
	}

	var errs []LayoutError
	if len(cfg.Sections) == 0 {
		errs = append(errs, LayoutError{Message: "At least one section is required."})
	}

	for _, section := range cfg.Sections {
		if strings.TrimSpace(section.Label) == "" {
			errs = append(errs, LayoutError{
				Message:   "Section label is required.",
				SectionID: section.ID,
			})
		}

		if len(section.Rows) == 0 {
			name := section.Label
			if name == "" {
				name = untitledSection
			}
			errs = append(errs, LayoutError{
				Message:   fmt.Sprintf("Section \"%s\" must have at least one row.", name),
				SectionID: section.ID,
			})
		}

		for _, row := range section.Rows {
			if len(row.Fields) == 0 {
				errs = append(errs, LayoutError{
					Message:   fmt.Sprintf("Each row must contain at least one field (section \"%s\").", section.Label),
					SectionID: section.ID,
					RowID:     row.ID,
				})
			}

			if total := layout.RowPercent(row); total > layout.MaxRowPercent {
				errs = append(errs, LayoutError{
					Message:   fmt.Sprintf("Row in section \"%s\" exceeds 100%% width (currently %d%%).", section.Label, total),
					SectionID: section.ID,
					RowID:     row.ID,
				})
			}

			for _, field := range row.Fields {
				if strings.TrimSpace(field.Label) == "" {
					errs = append(errs, LayoutError{
						Message:   "All fields must have a label.",
						SectionID: section.ID,
						RowID:     row.ID,
					})
				}
			}
		}
	}
	return errs
}
