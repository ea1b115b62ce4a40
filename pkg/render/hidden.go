package render

import (
	"fmt"
	"sort"
	"strings"
)

const (
	HiddenMode         = "_mode"
	HiddenSubmissionID = "_submission"
	HiddenFormID       = "_form"
)

// HiddenField is a hidden input emitted alongside the visible controls.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// PlanHiddenFields returns the inputs that let a posted preview be routed
// back to its session: form id, mode and target submission.
func PlanHiddenFields(plan Plan, extra map[string]string) []HiddenField {
	base := map[string]string{
		HiddenFormID: plan.FormID,
		HiddenMode:   plan.ModeName,
	}
	if plan.SubmissionID != "" {
		base[HiddenSubmissionID] = plan.SubmissionID
	}
	merged := MergeHiddenFields(base)
	for name, value := range extra {
		if key := strings.TrimSpace(name); key != "" {
			merged[key] = value
		}
	}
	return SortedHiddenFields(merged)
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	return out
}

// SortedHiddenFields sorts hidden fields by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: fields[name]})
	}
	return result
}
