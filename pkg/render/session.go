package render

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

// Store is the slice of the history store a preview session needs.
type Store interface {
	Get(id string) (history.Submission, bool)
	Add(cfg layout.FormConfig, values layout.Values) string
	UpdateValues(id string, values layout.Values) bool
	UpdateLayout(id string, cfg layout.FormConfig) bool
}

// ValuesValidator type-checks submitted values against cfg, returning
// messages keyed by field name.
type ValuesValidator func(cfg layout.FormConfig, values layout.Values) map[string][]string

// State is the lifecycle state of a preview session.
type State int

const (
	StateOpen State = iota
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome reports what a submit did.
type Outcome struct {
	Mode         string `json:"mode"`
	SubmissionID string `json:"submissionId,omitempty"`
	Closed       bool   `json:"closed"`
}

// SessionOption customises a preview session.
type SessionOption func(*Session)

// WithLayoutSaved registers fn to run after a LayoutEdit submit stored the
// new config, so hosts can navigate back to the history.
func WithLayoutSaved(fn func(submissionID string)) SessionOption {
	return func(s *Session) {
		s.onLayoutSaved = fn
	}
}

// WithValuesValidator adds a typed values check run after the required
// check in Create and Edit modes.
func WithValuesValidator(fn ValuesValidator) SessionOption {
	return func(s *Session) {
		s.validator = fn
	}
}

// WithSessionControls overrides the control registry used by Plan.
func WithSessionControls(reg *widgets.Registry) SessionOption {
	return func(s *Session) {
		s.controls = reg
	}
}

// WithSessionLogger injects the session logger.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is one open preview. It holds the config being previewed and the
// values pre-filled for its mode until it is submitted or closed.
type Session struct {
	mu            sync.Mutex
	cfg           layout.FormConfig
	mode          Mode
	store         Store
	values        layout.Values
	state         State
	onLayoutSaved func(string)
	validator     ValuesValidator
	controls      *widgets.Registry
	logger        *slog.Logger
}

// Open starts a preview of cfg in mode. Modes naming a submission require it
// to exist in store.
func Open(cfg layout.FormConfig, mode Mode, store Store, opts ...SessionOption) (*Session, error) {
	if mode == nil {
		return nil, ErrUnknownMode
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	s := &Session{
		cfg:   cfg.Clone(),
		mode:  mode,
		store: store,
		state: StateOpen,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	switch m := mode.(type) {
	case Create:
		s.values = layout.Values{}
	case Edit, View:
		submission, ok := store.Get(SubmissionID(m))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSubmissionNotFound, SubmissionID(m))
		}
		s.values = submission.Values.Clone()
	case LayoutEdit:
		submission, ok := store.Get(m.SubmissionID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSubmissionNotFound, m.SubmissionID)
		}
		if m.ExistingValues != nil {
			s.values = m.ExistingValues.Clone()
		} else {
			s.values = submission.Values.Clone()
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownMode, mode)
	}
	if s.values == nil {
		s.values = layout.Values{}
	}

	s.logger.Debug("preview opened",
		slog.String("mode", ModeName(mode)),
		slog.String("submission", SubmissionID(mode)),
	)
	return s, nil
}

// Mode returns the session mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Config returns a copy of the previewed config.
func (s *Session) Config() layout.FormConfig {
	return s.cfg.Clone()
}

// Values returns a copy of the pre-filled values.
func (s *Session) Values() layout.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Clone()
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Plan lays the previewed config out with the pre-filled values.
func (s *Session) Plan() Plan {
	s.mu.Lock()
	values := s.values.Clone()
	s.mu.Unlock()

	var opts []PlanOption
	if s.controls != nil {
		opts = append(opts, WithControls(s.controls))
	}
	return BuildPlan(s.cfg, s.mode, values, opts...)
}

// Submit commits values according to the session mode. Required-field and
// validator findings keep the session open and come back as a FieldErrorer.
func (s *Session) Submit(values layout.Values) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := Outcome{Mode: ModeName(s.mode), SubmissionID: SubmissionID(s.mode)}
	if s.state == StateClosed {
		return outcome, ErrSessionClosed
	}

	if EnforcesRequired(s.mode) {
		if missing := MissingRequired(s.cfg, values); len(missing) > 0 {
			s.values = values.Clone()
			s.logger.Debug("preview submit blocked", slog.Int("missing", len(missing)))
			return outcome, &RequiredError{Fields: missing}
		}
		if s.validator != nil {
			if findings := FieldErrors(s.validator(s.cfg, values)); len(findings) > 0 {
				s.values = values.Clone()
				return outcome, &ValuesError{Fields: findings}
			}
		}
	}

	switch m := s.mode.(type) {
	case Create:
		stored := values.Clone()
		if stored == nil {
			stored = layout.Values{}
		}
		outcome.SubmissionID = s.store.Add(s.cfg.Clone(), stored)
	case Edit:
		if !s.store.UpdateValues(m.SubmissionID, values.Clone()) {
			return outcome, fmt.Errorf("%w: %q", ErrSubmissionNotFound, m.SubmissionID)
		}
	case View:
	case LayoutEdit:
		if !s.store.UpdateLayout(m.SubmissionID, s.cfg.Clone()) {
			return outcome, fmt.Errorf("%w: %q", ErrSubmissionNotFound, m.SubmissionID)
		}
		if s.onLayoutSaved != nil {
			s.onLayoutSaved(m.SubmissionID)
		}
	}

	s.state = StateClosed
	s.values = nil
	outcome.Closed = true
	s.logger.Debug("preview submitted",
		slog.String("mode", outcome.Mode),
		slog.String("submission", outcome.SubmissionID),
	)
	return outcome, nil
}

// Close discards the session without touching the store.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
	s.values = nil
}

// MissingRequired returns a message per required field left empty in
// values. Only fields that are rendered count.
func MissingRequired(cfg layout.FormConfig, values layout.Values) map[string][]string {
	if !cfg.SectionsEnabled {
		return nil
	}
	missing := make(map[string][]string)
	for _, field := range cfg.Fields() {
		if !field.Required {
			continue
		}
		if isEmptyValue(field, values[field.Name]) {
			missing[field.Name] = append(missing[field.Name], RequiredMessage(field.Label))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return missing
}

func isEmptyValue(field layout.Field, value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		if field.Type == layout.FieldTypeCheckbox {
			return !Truthy(v)
		}
		return strings.TrimSpace(v) == ""
	case bool:
		return !v
	default:
		return false
	}
}
