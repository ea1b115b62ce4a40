package builder

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// DefaultUndoDepth bounds the number of snapshots kept for Undo.
const DefaultUndoDepth = 50

// SessionOption customises a builder Session.
type SessionOption func(*Session)

// WithInitialConfig starts the session from cfg instead of InitialConfig.
func WithInitialConfig(cfg layout.FormConfig) SessionOption {
	return func(s *Session) {
		initial := cfg.Clone()
		s.initial = &initial
	}
}

// WithIDGenerator injects the generator used for new ids and field names.
func WithIDGenerator(ids IDGenerator) SessionOption {
	return func(s *Session) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithUndoDepth overrides DefaultUndoDepth. Zero disables undo.
func WithUndoDepth(depth int) SessionOption {
	return func(s *Session) {
		if depth >= 0 {
			s.undoDepth = depth
		}
	}
}

// WithLogger injects the logger used for per-action debug records.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session owns the live form config of one builder. Every dispatch swaps in a
// new snapshot; readers always get a copy.
type Session struct {
	mu        sync.RWMutex
	reducer   *Reducer
	ids       IDGenerator
	state     layout.FormConfig
	initial   *layout.FormConfig
	undo      []layout.FormConfig
	undoDepth int
	listeners map[int]func(layout.FormConfig)
	nextID    int
	logger    *slog.Logger
}

// NewSession constructs a builder session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		undoDepth: DefaultUndoDepth,
		listeners: make(map[int]func(layout.FormConfig)),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.ids == nil {
		s.ids = UUIDGenerator()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.reducer = NewReducer(s.ids)
	if s.initial != nil {
		s.state = *s.initial
		s.initial = nil
	} else {
		s.state = InitialConfig(s.ids)
	}
	return s
}

// State returns a copy of the current config.
func (s *Session) State() layout.FormConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Dispatch applies action and returns the resulting config. A rejected patch
// or load leaves the state untouched and is reported as an error wrapping
// ErrInvalidPatch, ErrDuplicateID or ErrDuplicateName.
func (s *Session) Dispatch(action Action) (layout.FormConfig, error) {
	s.mu.Lock()
	next, changed, err := s.reducer.apply(s.state, action)
	if err != nil {
		current := s.state.Clone()
		s.mu.Unlock()
		s.logger.Debug("builder action rejected",
			slog.String("action", Kind(action)),
			slog.String("error", err.Error()),
		)
		return current, err
	}
	if !changed {
		current := s.state.Clone()
		s.mu.Unlock()
		s.logger.Debug("builder action ignored", slog.String("action", Kind(action)))
		return current, nil
	}
	s.pushUndo(s.state)
	s.state = next
	snapshot, listeners := s.publishLocked()
	s.mu.Unlock()

	s.logger.Debug("builder action applied",
		slog.String("action", Kind(action)),
		slog.Int("sections", len(next.Sections)),
	)
	notify(listeners, snapshot)
	return snapshot.Clone(), nil
}

// Load replaces the whole config, as LoadConfig does. A config reusing an
// id or field name is rejected with a *DuplicateError.
func (s *Session) Load(cfg layout.FormConfig) (layout.FormConfig, error) {
	return s.Dispatch(LoadConfig{Config: cfg})
}

// Undo restores the snapshot taken before the most recent change. It
// reports false when there is nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return false
	}
	last := len(s.undo) - 1
	s.state = s.undo[last]
	s.undo = s.undo[:last]
	snapshot, listeners := s.publishLocked()
	s.mu.Unlock()

	s.logger.Debug("builder undo", slog.Int("remaining", last))
	notify(listeners, snapshot)
	return true
}

// CanUndo reports whether Undo would change the state.
func (s *Session) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.undo) > 0
}

// Subscribe registers fn to receive every new snapshot. The returned func
// removes the listener.
func (s *Session) Subscribe(fn func(layout.FormConfig)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Session) pushUndo(cfg layout.FormConfig) {
	if s.undoDepth == 0 {
		return
	}
	s.undo = append(s.undo, cfg)
	if overflow := len(s.undo) - s.undoDepth; overflow > 0 {
		s.undo = append([]layout.FormConfig(nil), s.undo[overflow:]...)
	}
}

func (s *Session) publishLocked() (layout.FormConfig, []func(layout.FormConfig)) {
	if len(s.listeners) == 0 {
		return s.state, nil
	}
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]func(layout.FormConfig), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	return s.state, listeners
}

func notify(listeners []func(layout.FormConfig), snapshot layout.FormConfig) {
	for _, fn := range listeners {
		fn(snapshot.Clone())
	}
}
