// Package terms holds the in-memory dictionary: built-in entries plus the
// entries discovered through AI lookups.
package terms

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ajitpratap0/techlingo/internal/models"
)

var (
	// ErrNotFound is returned when no term has the requested ID.
	ErrNotFound = errors.New("term not found")

	// ErrImmutable is returned when removing a built-in term.
	ErrImmutable = errors.New("built-in terms cannot be removed")
)

// Store is the authoritative term list. IDs and normalized names are unique
// at all times; InsertIfAbsent is the only way in.
type Store struct {
	mu     sync.RWMutex
	terms  []models.Term
	byID   map[string]int
	byName map[string]string // models.NameKey(name) -> id
}

// New creates a store from the given terms in order. Entries that collide by
// ID or name with an earlier entry are dropped.
func New(initial []models.Term) *Store {
	s := &Store{
		byID:   make(map[string]int, len(initial)),
		byName: make(map[string]string, len(initial)),
	}
	for _, t := range initial {
		if s.collides(t) {
			continue
		}
		s.byID[t.ID] = len(s.terms)
		s.byName[models.NameKey(t.Name)] = t.ID
		s.terms = append(s.terms, t)
	}
	return s
}

// InsertIfAbsent prepends term unless an entry with the same ID or the same
// case-insensitive name exists. It returns the stored term and whether it was
// added; on collision the existing entry is returned.
func (s *Store) InsertIfAbsent(term models.Term) (models.Term, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byName[models.NameKey(term.Name)]; ok {
		return s.terms[s.byID[id]], false
	}
	if idx, ok := s.byID[term.ID]; ok {
		return s.terms[idx], false
	}

	s.terms = append([]models.Term{term}, s.terms...)
	s.reindex()
	return term, true
}

// Get retrieves a single term by ID.
func (s *Store) Get(id string) (models.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return models.Term{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.terms[idx], nil
}

// FindByName returns the term whose name matches case-insensitively.
func (s *Store) FindByName(name string) (models.Term, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[models.NameKey(name)]
	if !ok {
		return models.Term{}, false
	}
	return s.terms[s.byID[id]], true
}

// All returns a copy of every term in store order.
func (s *Store) All() []models.Term {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Term, len(s.terms))
	copy(out, s.terms)
	return out
}

// Generated returns only AI-generated terms in store order.
func (s *Store) Generated() []models.Term {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Term, 0)
	for _, t := range s.terms {
		if t.IsGenerated {
			out = append(out, t)
		}
	}
	return out
}

// Remove deletes an AI-generated term. Built-in terms are permanent.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !s.terms[idx].IsGenerated {
		return fmt.Errorf("%w: %s", ErrImmutable, id)
	}
	s.terms = append(s.terms[:idx], s.terms[idx+1:]...)
	s.reindex()
	return nil
}

// Len returns the number of terms.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.terms)
}

// --- helpers ---

func (s *Store) collides(t models.Term) bool {
	if _, ok := s.byID[t.ID]; ok {
		return true
	}
	_, ok := s.byName[models.NameKey(t.Name)]
	return ok
}

// reindex rebuilds both indexes. Callers hold the write lock.
func (s *Store) reindex() {
	clear(s.byID)
	clear(s.byName)
	for i, t := range s.terms {
		s.byID[t.ID] = i
		s.byName[models.NameKey(t.Name)] = t.ID
	}
}
