package tui

import (
	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// State tracks values collected during a prompt session and the errors to
// show next to each field.
type State struct {
	values layout.Values
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors. Both are copied.
func NewState(prefill layout.Values, errs map[string][]string) *State {
	values := prefill.Clone()
	if values == nil {
		values = layout.Values{}
	}
	copied := make(map[string][]string, len(errs))
	for name, messages := range errs {
		copied[name] = append([]string(nil), messages...)
	}
	return &State{values: values, errors: copied}
}

// Values returns the collected values.
func (s *State) Values() layout.Values {
	if s == nil {
		return nil
	}
	return s.values
}

// ErrorsFor returns the messages attached to a field name.
func (s *State) ErrorsFor(name string) []string {
	if s == nil {
		return nil
	}
	return s.errors[name]
}

// Get returns the value stored for name.
func (s *State) Get(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}

// Set stores value under name. A nil value removes the entry.
func (s *State) Set(name string, value any) {
	if value == nil {
		delete(s.values, name)
		return
	}
	s.values[name] = value
}
