package common

import "sync"

// Set is a concurrent set. It is not ordered.
type Set[T comparable] struct {
	m  map[T]struct{}
	mu sync.RWMutex
}

// NewSet returns a new Set.
func NewSet[T comparable](initial ...T) *Set[T] {
	set := &Set[T]{
		m: make(map[T]struct{}, len(initial)),
	}

	for i := range initial {
		set.m[initial[i]] = struct{}{}
	}

	return set
}

// Add adds values to the set.
func (s *Set[T]) Add(values ...T) {
	s.mu.Lock()
	for _, v := range values {
		s.m[v] = struct{}{}
	}
	s.mu.Unlock()
}

// Take removes a value from the set. It returns true if the value existed in the set.
func (s *Set[T]) Take(v T) (exists bool) {
	s.mu.Lock()
	_, exists = s.m[v]
	delete(s.m, v)
	s.mu.Unlock()
	return exists
}

// Exists returns true if v exists in the set, false otherwise.
func (s *Set[T]) Exists(v T) (exists bool) {
	if s == nil {
		return false
	}

	s.mu.RLock()
	_, exists = s.m[v]
	s.mu.RUnlock()
	return exists
}

// Length returns the length of the set.
func (s *Set[T]) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
