package attr

import (
	"sync"

	"github.com/philipp01105/mqttlog/core"
)

// Token identifies one binding in a Set.
type Token uint64

// Op is the kind of change reported to an Observer.
type Op uint8

const (
	// Attached reports a binding added with Add
	Attached Op = iota
	// Detached reports a binding removed with Remove
	Detached
)

// String returns the string representation of the op
func (o Op) String() string {
	switch o {
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

// Event describes one change to a Set.
type Event struct {
	Op    Op
	Token Token
	Field core.Field
}

// Observer is called synchronously, outside the Set's lock, after every
// Add and successful Remove.
type Observer func(Event)

// Option configures a Set.
type Option func(*Set)

// WithObserver registers fn to be told about every change to the Set.
func WithObserver(fn Observer) Option {
	return func(s *Set) {
		s.observer = fn
	}
}

type binding struct {
	token Token
	field core.Field
}

// Set is a thread-safe, layered store of attribute bindings.
type Set struct {
	parent   *Set
	observer Observer

	mu       sync.RWMutex
	bindings []binding
	next     Token
}

// NewSet creates an empty Set layered over parent. parent may be nil.
func NewSet(parent *Set, opts ...Option) *Set {
	s := &Set{parent: parent}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parent returns the set this one is layered over, or nil.
func (s *Set) Parent() *Set {
	return s.parent
}

// Add attaches f and returns the token that removes it.
func (s *Set) Add(f core.Field) Token {
	s.mu.Lock()
	s.next++
	tok := s.next
	s.bindings = append(s.bindings, binding{token: tok, field: f})
	s.mu.Unlock()

	if s.observer != nil {
		s.observer(Event{Op: Attached, Token: tok, Field: f})
	}
	return tok
}

// Remove detaches the binding identified by tok. It reports false when the
// binding is not (or no longer) in this Set.
func (s *Set) Remove(tok Token) bool {
	s.mu.Lock()
	idx := -1
	for i := len(s.bindings) - 1; i >= 0; i-- {
		if s.bindings[i].token == tok {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	f := s.bindings[idx].field
	copy(s.bindings[idx:], s.bindings[idx+1:])
	s.bindings[len(s.bindings)-1] = binding{}
	s.bindings = s.bindings[:len(s.bindings)-1]
	s.mu.Unlock()

	if s.observer != nil {
		s.observer(Event{Op: Detached, Token: tok, Field: f})
	}
	return true
}

// Lookup returns the newest binding for key in this Set, falling back to
// the parent chain.
func (s *Set) Lookup(key string) (core.Field, bool) {
	for set := s; set != nil; set = set.parent {
		set.mu.RLock()
		for i := len(set.bindings) - 1; i >= 0; i-- {
			if set.bindings[i].field.Key == key {
				f := set.bindings[i].field
				set.mu.RUnlock()
				return f, true
			}
		}
		set.mu.RUnlock()
	}
	return core.Field{}, false
}

// Len returns the number of bindings held directly by this Set.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bindings)
}

// Snapshot appends the resolved view of the Set to dst and returns it.
// Bindings are visited from the root Set down to s, in attach order; a
// binding whose key was already appended by this call replaces the earlier
// value in place, so inner bindings shadow outer ones.
func (s *Set) Snapshot(dst []core.Field) []core.Field {
	var stack [8]*Set
	chain := stack[:0]
	for set := s; set != nil; set = set.parent {
		chain = append(chain, set)
	}

	start := len(dst)
	for i := len(chain) - 1; i >= 0; i-- {
		set := chain[i]
		set.mu.RLock()
		for _, b := range set.bindings {
			dst = appendOrReplace(dst, start, b.field)
		}
		set.mu.RUnlock()
	}
	return dst
}

func appendOrReplace(dst []core.Field, start int, f core.Field) []core.Field {
	for i := start; i < len(dst); i++ {
		if dst[i].Key == f.Key {
			dst[i] = f
			return dst
		}
	}
	return append(dst, f)
}
