package favorites

import "sync"

// Set tracks the IDs of terms the user marked as favorite. Insertion order is
// kept so that serialized output is stable.
type Set struct {
	mu    sync.RWMutex
	ids   []string
	index map[string]struct{}
}

// New creates a set holding ids. Duplicates and empty IDs are dropped.
func New(ids []string) *Set {
	s := &Set{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := s.index[id]; ok {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s
}

// Toggle flips the favorite state of id and returns the new state.
func (s *Set) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; ok {
		s.removeLocked(id)
		return false
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Remove drops id from the set. It reports whether id was present.
func (s *Set) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		return false
	}
	s.removeLocked(id)
	return true
}

// Contains reports whether id is a favorite.
func (s *Set) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// IDs returns the favorite IDs in insertion order.
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of favorites.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

func (s *Set) removeLocked(id string) {
	delete(s.index, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}
