package render

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

var (
	// ErrUnknownMode is returned for nil modes or unparsable mode names.
	ErrUnknownMode = errors.New("render: unknown mode")
	// ErrStoreRequired is returned when a session is opened without a store.
	ErrStoreRequired = errors.New("render: submission store is required")
	// ErrSubmissionNotFound is returned when a mode targets a submission that
	// is not stored.
	ErrSubmissionNotFound = errors.New("render: submission not found")
	// ErrSessionClosed is returned by Submit after the session closed.
	ErrSessionClosed = errors.New("render: session is closed")
)

// FieldErrorer is implemented by submit errors that carry per-field
// messages keyed by field name.
type FieldErrorer interface {
	error
	FieldErrors() map[string][]string
}

// RequiredError lists required fields left empty on submit.
type RequiredError struct {
	Fields map[string][]string
}

func (e *RequiredError) Error() string {
	return "render: required fields missing: " + strings.Join(sortedKeys(e.Fields), ", ")
}

// FieldErrors implements FieldErrorer.
func (e *RequiredError) FieldErrors() map[string][]string {
	return e.Fields
}

// ValuesError carries findings reported by a values validator.
type ValuesError struct {
	Fields map[string][]string
}

func (e *ValuesError) Error() string {
	return "render: invalid values: " + strings.Join(sortedKeys(e.Fields), ", ")
}

// FieldErrors implements FieldErrorer.
func (e *ValuesError) FieldErrors() map[string][]string {
	return e.Fields
}

// RequiredMessage formats the message shown under an empty required field.
func RequiredMessage(label string) string {
	return fmt.Sprintf("%s is required", label)
}

// ErrorsFrom extracts per-field messages from a submit error.
func ErrorsFrom(err error) map[string][]string {
	var fe FieldErrorer
	if errors.As(err, &fe) {
		return FieldErrors(fe.FieldErrors())
	}
	return nil
}

// ErrorMapping splits an error payload into field-level and form-level
// messages. Field keys are field names.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// FieldErrors normalises a field error map: names and messages are trimmed,
// duplicates dropped and empty entries removed.
func FieldErrors(in map[string][]string) map[string][]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]string, len(in))
	for name, messages := range in {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		merged := normalizeMessages(append(out[key], messages...))
		if len(merged) == 0 {
			continue
		}
		out[key] = merged
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MapErrorPayload routes a server payload onto the fields of cfg. Keys may be
// bare names, dotted or JSON pointer paths, optionally wrapped in
// "values"/"body"/"data"; anything that does not name a field becomes a
// form-level message.
func MapErrorPayload(cfg layout.FormConfig, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	names := make(map[string]struct{})
	for _, name := range cfg.FieldNames() {
		names[name] = struct{}{}
	}

	keys := sortedKeys(payload)
	for _, rawPath := range keys {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		name, formLevel := mapErrorPath(rawPath, names)
		if formLevel {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[name] = normalizeMessages(append(mapping.Fields[name], messages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, names map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}
	if _, ok := names[trimmed]; ok {
		return trimmed, false
	}

	segments := dropWrapperSegments(parsePathSegments(trimmed))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		if _, ok := names[segment]; ok {
			return segment, false
		}
	}
	return "", true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":    {},
		"request": {},
		"payload": {},
		"data":    {},
		"values":  {},
	}

	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func sortedKeys(in map[string][]string) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
