package lpn

import (
	"sort"
	"sync"
)

// Set is a collection of unique identifiers.
// Add is safe for concurrent use so extraction workers can share one Set.
type Set struct {
	mu    sync.RWMutex
	items map[string]struct{}
}

// NewSet creates a Set holding the given identifiers.
func NewSet(ids ...string) *Set {
	s := &Set{items: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.items[id] = struct{}{}
	}
	return s
}

// Add inserts identifiers into the set.
func (s *Set) Add(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		s.items = make(map[string]struct{})
	}
	for _, id := range ids {
		s.items[id] = struct{}{}
	}
}

// AddText scans text and inserts every LPN found.
// Returns the number of matches scanned, duplicates included.
func (s *Set) AddText(text string) int {
	found := Find(text)
	if len(found) > 0 {
		s.Add(found...)
	}
	return len(found)
}

// Contains reports whether id is in the set.
// A nil Set contains nothing.
func (s *Set) Contains(id string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok
}

// Len returns the number of unique identifiers.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sorted returns the identifiers in ascending order.
func (s *Set) Sorted() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	out := make([]string, 0, len(s.items))
	for id := range s.items {
		out = append(out, id)
	}
	s.mu.RUnlock()
	sort.Strings(out)
	return out
}
