package validation

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// ValidateSettings checks the form-level settings edited next to the tree.
func ValidateSettings(cfg layout.FormConfig) []LayoutError {
	var errs []LayoutError
	if strings.TrimSpace(cfg.Label) == "" {
		errs = append(errs, LayoutError{Message: "Form label is required"})
	}
	if !cfg.ViewType.Valid() {
		errs = append(errs, LayoutError{Message: "View type is required"})
	}
	return errs
}

// Validate runs the settings checks followed by the layout checks. This is
// the gate used before a config is saved.
func Validate(cfg layout.FormConfig) []LayoutError {
	errs := ValidateSettings(cfg)
	return append(errs, ValidateLayout(cfg)...)
}

// Messages flattens findings into their messages.
func Messages(errs []LayoutError) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Message)
	}
	return out
}
