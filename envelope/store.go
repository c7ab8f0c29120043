package envelope

import (
	"fmt"
	"sync"
)

// Store is an append-only, concurrency-safe collection of Envelopes keyed
// by id. It remembers insertion order and never evicts. The zero value is
// an empty Store ready for use.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]Envelope
	order []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{byID: make(map[string]Envelope)}
}

// Append stores env. Returns ErrDuplicateID if its id is already present.
func (s *Store) Append(env Envelope) error {
	if env.IsZero() {
		return fmt.Errorf("%w: envelope has no id", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[env.id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, env.id)
	}
	if s.byID == nil {
		s.byID = make(map[string]Envelope)
	}
	s.byID[env.id] = env
	s.order = append(s.order, env.id)
	return nil
}

// Get retrieves an envelope by id.
func (s *Store) Get(id string) (Envelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	env, ok := s.byID[id]
	if !ok {
		return Envelope{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return env, nil
}

// List returns all envelopes in insertion order. The slice is a copy.
func (s *Store) List() []Envelope {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Envelope, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of stored envelopes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
