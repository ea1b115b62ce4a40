package history

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// Option customises a Store.
type Option func(*Store)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the random UUID ids.
func WithIDGenerator(next func() string) Option {
	return func(s *Store) {
		if next != nil {
			s.nextID = next
		}
	}
}

// WithLogger injects the logger used for store changes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the session-scoped submission log. Everything going in and out is
// deep copied so later builder edits never reach stored snapshots.
type Store struct {
	mu     sync.RWMutex
	items  []Submission
	now    func() time.Time
	nextID func() string
	logger *slog.Logger
}

// New constructs an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		items:  []Submission{},
		now:    time.Now,
		nextID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Add records a new submission and returns its id.
func (s *Store) Add(cfg layout.FormConfig, values layout.Values) string {
	s.mu.Lock()
	id := s.uniqueIDLocked()
	submission := Submission{
		ID:        id,
		Config:    cfg,
		Values:    values,
		CreatedAt: s.now(),
	}
	if submission.Values == nil {
		submission.Values = layout.Values{}
	}
	s.items = Reduce(s.items, AddSubmission{Submission: submission})
	total := len(s.items)
	s.mu.Unlock()

	s.logger.Debug("submission added", slog.String("id", id), slog.Int("total", total))
	return id
}

// UpdateValues replaces the values of submission id, leaving its config
// untouched. It reports false when id is unknown.
func (s *Store) UpdateValues(id string, values layout.Values) bool {
	if values == nil {
		values = layout.Values{}
	}
	return s.update(id, UpdateValues{ID: id, Values: values}, "submission values updated")
}

// UpdateLayout replaces the config of submission id, leaving its values
// untouched. It reports false when id is unknown.
func (s *Store) UpdateLayout(id string, cfg layout.FormConfig) bool {
	return s.update(id, UpdateLayout{ID: id, Config: cfg}, "submission layout updated")
}

// Delete removes submission id. It reports false when id is unknown.
func (s *Store) Delete(id string) bool {
	return s.update(id, DeleteSubmission{ID: id}, "submission deleted")
}

// ClearAll removes every submission.
func (s *Store) ClearAll() {
	s.mu.Lock()
	removed := len(s.items)
	s.items = Reduce(s.items, ClearAll{})
	s.mu.Unlock()

	s.logger.Debug("submissions cleared", slog.Int("removed", removed))
}

// List returns copies of every submission, most recent first.
func (s *Store) List() []Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Submission, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.Clone())
	}
	return out
}

// Get returns a copy of submission id.
func (s *Store) Get(id string) (Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := indexOf(s.items, id)
	if idx < 0 {
		return Submission{}, false
	}
	return s.items[idx].Clone(), true
}

// Has reports whether id is stored.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.items, id) >= 0
}

// Len returns the number of stored submissions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) update(id string, action Action, msg string) bool {
	s.mu.Lock()
	if indexOf(s.items, id) < 0 {
		s.mu.Unlock()
		s.logger.Debug("submission not found", slog.String("id", id))
		return false
	}
	s.items = Reduce(s.items, action)
	s.mu.Unlock()

	s.logger.Debug(msg, slog.String("id", id))
	return true
}

func (s *Store) uniqueIDLocked() string {
	var id string
	for attempt := 0; attempt < 16; attempt++ {
		id = s.nextID()
		if id != "" && indexOf(s.items, id) < 0 {
			return id
		}
	}
	for n := 2; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if indexOf(s.items, candidate) < 0 {
			return candidate
		}
	}
}
