package builder

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new sections, rows and fields.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function into an IDGenerator.
type IDFunc func() string

// NewID implements IDGenerator.
func (f IDFunc) NewID() string {
	return f()
}

// UUIDGenerator returns the default generator backed by random UUIDs.
func UUIDGenerator() IDGenerator {
	return IDFunc(uuid.NewString)
}

// CounterGenerator returns a deterministic generator producing prefix1,
// prefix2, ... Useful for tests and fixtures.
func CounterGenerator(prefix string) IDGenerator {
	n := 0
	return IDFunc(func() string {
		n++
		return prefix + strconv.Itoa(n)
	})
}

const (
	fieldNamePrefix = "field_"
	fieldNameLength = 5
	maxDrawAttempts = 16
)

// allocator hands out ids and field names that do not collide with anything
// already present in the config being edited.
type allocator struct {
	ids   IDGenerator
	taken map[string]struct{}
	names map[string]struct{}
}

func newAllocator(ids IDGenerator, takenIDs map[string]struct{}, names []string) *allocator {
	a := &allocator{
		ids:   ids,
		taken: takenIDs,
		names: make(map[string]struct{}, len(names)),
	}
	if a.taken == nil {
		a.taken = make(map[string]struct{})
	}
	for _, name := range names {
		a.names[name] = struct{}{}
	}
	return a
}

func (a *allocator) id() string {
	var candidate string
	for attempt := 0; attempt < maxDrawAttempts; attempt++ {
		candidate = strings.TrimSpace(a.ids.NewID())
		if candidate == "" {
			continue
		}
		if _, exists := a.taken[candidate]; !exists {
			a.taken[candidate] = struct{}{}
			return candidate
		}
	}
	return a.suffixed(a.taken, "id_"+candidate)
}

func (a *allocator) fieldName() string {
	var candidate string
	for attempt := 0; attempt < maxDrawAttempts; attempt++ {
		token := nameToken(a.ids.NewID())
		if token == "" {
			continue
		}
		candidate = fieldNamePrefix + token
		if _, exists := a.names[candidate]; !exists {
			a.names[candidate] = struct{}{}
			return candidate
		}
	}
	if candidate == "" {
		candidate = fieldNamePrefix + "x"
	}
	return a.suffixed(a.names, candidate)
}

func (a *allocator) suffixed(set map[string]struct{}, base string) string {
	for i := 2; ; i++ {
		candidate := base + "_" + strconv.Itoa(i)
		if _, exists := set[candidate]; !exists {
			set[candidate] = struct{}{}
			return candidate
		}
	}
}

func nameToken(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			if b.Len() == fieldNameLength {
				break
			}
		}
	}
	return b.String()
}
