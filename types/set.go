package types

import (
	"slices"
	"sync"
)

// Set is a concurrency safe set that remembers insertion order. Deleting a key and adding
// it again moves it to the end.
type Set[K comparable] struct {
	cache map[K]Void
	order []K
	// mu
	mu sync.RWMutex
}

func NewSet[K comparable](keys ...K) *Set[K] {
	s := &Set[K]{cache: map[K]Void{}}
	s.Add(keys...)
	return s
}

// Add inserts the missing keys and reports whether any of them was new.
func (s *Set[K]) Add(keys ...K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache == nil {
		s.cache = map[K]Void{}
	}

	added := false
	for _, key := range keys {
		if _, exists := s.cache[key]; exists {
			continue
		}
		s.cache[key] = NULL
		s.order = append(s.order, key)
		added = true
	}
	return added
}

// Delete removes the keys and reports whether any of them was present.
func (s *Set[K]) Delete(keys ...K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := false
	for _, key := range keys {
		if _, exists := s.cache[key]; !exists {
			continue
		}
		delete(s.cache, key)
		if i := slices.Index(s.order, key); i >= 0 {
			s.order = slices.Delete(s.order, i, i+1)
		}
		deleted = true
	}
	return deleted
}

func (s *Set[K]) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = map[K]Void{}
	s.order = nil
	return true
}

func (s *Set[K]) Has(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.cache[key]
	return exists
}

func (s *Set[K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// Keys returns the keys in insertion order. The result is never nil.
func (s *Set[K]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]K, len(s.order))
	copy(list, s.order)
	return list
}
