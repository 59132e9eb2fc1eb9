package identity

import "github.com/syssam/variantgen"

// HashSet is a mutable set whose membership is decided by a Comparer.
// Values are kept in insertion order so callers iterating it produce
// deterministic output.
//
// A HashSet is not safe for concurrent use; use ReusableHashSet to share
// instances between goroutines.
type HashSet[T any] struct {
	comparer variantgen.Comparer[T]
	buckets  map[uint64][]T
	values   []T
}

// NewHashSet returns an empty set using c for equality.
func NewHashSet[T any](c variantgen.Comparer[T]) *HashSet[T] {
	return &HashSet[T]{
		comparer: c,
		buckets:  make(map[uint64][]T),
	}
}

// Comparer returns the equality strategy of the set.
func (s *HashSet[T]) Comparer() variantgen.Comparer[T] {
	return s.comparer
}

// Add adds v to the set. It reports false if an equal value was present.
func (s *HashSet[T]) Add(v T) bool {
	h := s.comparer.Hash(v)
	for _, w := range s.buckets[h] {
		if s.comparer.Equal(v, w) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], v)
	s.values = append(s.values, v)
	return true
}

// Contains reports whether an equal value is in the set.
func (s *HashSet[T]) Contains(v T) bool {
	for _, w := range s.buckets[s.comparer.Hash(v)] {
		if s.comparer.Equal(v, w) {
			return true
		}
	}
	return false
}

// Len returns the number of elements.
func (s *HashSet[T]) Len() int {
	return len(s.values)
}

// Values returns the elements in insertion order. The returned slice is owned
// by the caller.
func (s *HashSet[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}

// Clear removes all elements, keeping the allocated storage.
func (s *HashSet[T]) Clear() {
	clear(s.buckets)
	clear(s.values)
	s.values = s.values[:0]
}
