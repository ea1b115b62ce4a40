package openapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// ValidateValues type-checks the non-empty values of a submission. Nil and
// empty-string values are skipped, so presence of required fields is left to
// the preview session. Numeric strings are accepted for number fields and
// the usual checkbox spellings ("on", "true", "1") for checkboxes. The
// result maps field names to messages and is nil when everything checks out.
func ValidateValues(cfg layout.FormConfig, values layout.Values) map[string][]string {
	if len(values) == 0 {
		return nil
	}
	fields := make(map[string]layout.Field)
	for _, field := range cfg.Fields() {
		fields[field.Name] = field
	}

	payload := make(map[string]any, len(values))
	for name, value := range values {
		field, ok := fields[name]
		if !ok || isBlank(value) {
			continue
		}
		payload[name] = coerce(field, value)
	}
	if len(payload) == 0 {
		return nil
	}

	err := valuesSchema(cfg, false).VisitJSON(payload, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	out := make(map[string][]string)
	collect(err, func(name string) {
		field, ok := fields[name]
		if !ok {
			return
		}
		msg := typeMessage(field)
		for _, existing := range out[name] {
			if existing == msg {
				return
			}
		}
		out[name] = append(out[name], msg)
	})
	if len(out) == 0 {
		out[""] = []string{err.Error()}
	}
	return out
}

// Validator adapts ValidateValues to the preview session hook.
func Validator() render.ValuesValidator {
	return ValidateValues
}

func collect(err error, report func(name string)) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			collect(inner, report)
		}
	case *openapi3.SchemaError:
		if pointer := e.JSONPointer(); len(pointer) > 0 {
			report(pointer[0])
		}
	default:
		if inner := errors.Unwrap(err); inner != nil {
			collect(inner, report)
		}
	}
}

func typeMessage(field layout.Field) string {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	switch field.Type {
	case layout.FieldTypeNumber:
		return fmt.Sprintf("%s must be a number", label)
	case layout.FieldTypeCheckbox:
		return fmt.Sprintf("%s must be checked or unchecked", label)
	case layout.FieldTypeDate:
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", label)
	case layout.FieldTypeSelect:
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(field.Options, ", "))
	default:
		return fmt.Sprintf("%s must be text", label)
	}
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}

func coerce(field layout.Field, value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case string:
		switch field.Type {
		case layout.FieldTypeNumber:
			if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return n
			}
		case layout.FieldTypeCheckbox:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "on", "yes", "1", "checked":
				return true
			case "false", "off", "no", "0":
				return false
			}
		}
	}
	return value
}
