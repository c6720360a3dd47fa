// Package state holds the single mutable record behind the UI: navigation,
// the form being edited, the in-flight Analyze request and the last result.
package state

import (
	"sync"

	"lifecalc/internal/analysis"
	"lifecalc/internal/calc"
	"lifecalc/internal/nav"
)

// Store maintains the mutable UI state. Every change goes through Apply.
type Store struct {
	mu      sync.RWMutex
	nav     nav.State
	fields  map[string]string
	pending *analysis.Request
	result  *calc.Result
}

// NewStore creates a Store positioned on the splash page.
func NewStore() *Store {
	return &Store{
		nav:    nav.Initial(),
		fields: make(map[string]string),
	}
}

// Update represents a mutation applied to the Store.
type Update interface {
	apply(store *Store) bool
}

// Apply mutates the store using the provided update and reports whether the
// update took effect. Updates that do not fit the current page are ignored.
func (s *Store) Apply(update Update) bool {
	if update == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return update.apply(s)
}

// Snapshot is a copy of the store state safe to read without locking.
type Snapshot struct {
	Nav          nav.State
	Fields       map[string]string
	PendingToken string
	Result       *calc.Result
}

// Analyzing reports whether an Analyze request is waiting for its timer.
func (s Snapshot) Analyzing() bool {
	return s.PendingToken != ""
}

// Snapshot copies the current store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{
		Nav:    s.nav,
		Fields: make(map[string]string, len(s.fields)),
	}
	for k, v := range s.fields {
		snapshot.Fields[k] = v
	}
	if s.pending != nil {
		snapshot.PendingToken = s.pending.Token
	}
	if s.result != nil {
		snapshot.Result = cloneResult(s.result)
	}
	return snapshot
}

// Nav returns the navigation state.
func (s *Store) Nav() nav.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav
}

func cloneResult(res *calc.Result) *calc.Result {
	clone := *res
	clone.Details = append([]string(nil), res.Details...)
	if res.Breakdown != nil {
		clone.Breakdown = append([]calc.BreakdownStep(nil), res.Breakdown...)
	}
	return &clone
}
