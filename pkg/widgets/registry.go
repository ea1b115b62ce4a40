package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// Built-in control identifiers exposed by the registry.
const (
	ControlText     = "input:text"
	ControlNumber   = "input:number"
	ControlDate     = "input:date"
	ControlTextarea = "textarea"
	ControlCheckbox = "checkbox"
	ControlSelect   = "select"
)

// Matcher decides whether a control should handle the supplied field.
type Matcher func(field layout.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects controls for fields based on registered matchers. Higher
// priority wins; ties fall back to registration order. An empty registry
// never resolves a control.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without the built-ins.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a matcher with the provided control name and priority.
// Higher priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the control name for a field.
func (r *Registry) Resolve(field layout.Field) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// ResolveOr returns the resolved control or fallback.
func (r *Registry) ResolveOr(field layout.Field, fallback string) string {
	if name, ok := r.Resolve(field); ok {
		return name
	}
	return fallback
}

// LabelInline reports whether a control renders its label next to the
// input instead of above it.
func LabelInline(control string) bool {
	return control == ControlCheckbox
}

func (r *Registry) registerBuiltins() {
	byType := []struct {
		control string
		kind    layout.FieldType
	}{
		{ControlSelect, layout.FieldTypeSelect},
		{ControlCheckbox, layout.FieldTypeCheckbox},
		{ControlTextarea, layout.FieldTypeTextarea},
		{ControlDate, layout.FieldTypeDate},
		{ControlNumber, layout.FieldTypeNumber},
		{ControlText, layout.FieldTypeText},
	}
	for i, entry := range byType {
		kind := entry.kind
		r.Register(entry.control, 90-i*10, func(field layout.Field) bool {
			return field.Type == kind
		})
	}
}
