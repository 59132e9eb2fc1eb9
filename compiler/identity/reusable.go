package identity

import (
	"reflect"
	"sync/atomic"

	"github.com/syssam/variantgen"
)

// DefaultMaxCapacity is the admission threshold used by NewReusableHashSet
// when a non-positive capacity is given.
const DefaultMaxCapacity = 128

// ReusableHashSet is a single-slot pool holding at most one idle HashSet.
//
// Lease claims the idle set with a single compare-and-swap, so under
// contention exactly one caller receives it and every other caller gets a
// fresh set. Return stores a set only if the slot is empty and the set is not
// larger than the admission threshold; the first writer wins and nothing is
// evicted.
//
// A set in the slot is always empty.
type ReusableHashSet[T any] struct {
	slot        atomic.Pointer[HashSet[T]]
	maxCapacity int

	hits   atomic.Int64
	misses atomic.Int64
}

// NewReusableHashSet returns an empty pool. Sets holding more than
// maxCapacity elements are never admitted.
func NewReusableHashSet[T any](maxCapacity int) *ReusableHashSet[T] {
	if maxCapacity <= 0 {
		maxCapacity = DefaultMaxCapacity
	}
	return &ReusableHashSet[T]{maxCapacity: maxCapacity}
}

// MaxCapacity returns the admission threshold.
func (p *ReusableHashSet[T]) MaxCapacity() int {
	return p.maxCapacity
}

// Lease returns the pooled set if it uses an equivalent comparer and the
// claim succeeds; otherwise it returns a new set using c.
func (p *ReusableHashSet[T]) Lease(c variantgen.Comparer[T]) *HashSet[T] {
	if s := p.slot.Load(); s != nil && sameComparer(s.comparer, c) && p.slot.CompareAndSwap(s, nil) {
		p.hits.Add(1)
		return s
	}
	p.misses.Add(1)
	return NewHashSet(c)
}

// Return offers s back to the pool. s must not be used by the caller
// afterwards.
func (p *ReusableHashSet[T]) Return(s *HashSet[T]) {
	if s == nil || s.Len() > p.maxCapacity || p.slot.Load() != nil {
		return
	}
	s.Clear()
	p.slot.CompareAndSwap(nil, s)
}

// Stats returns the number of leases served from the slot and the number of
// leases that allocated.
func (p *ReusableHashSet[T]) Stats() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

// sameComparer reports whether a and b are the same equality strategy.
// Comparers of non-comparable dynamic types are never considered equivalent.
func sameComparer[T any](a, b variantgen.Comparer[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
