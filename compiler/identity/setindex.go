package identity

import (
	"slices"
	"sync"
)

// SetIndex maps sequences to values under set-equality: a lookup with
// {b, a} finds the value stored for {a, b}.
type SetIndex[T comparable, V any] struct {
	mu      sync.RWMutex
	cmp     SetComparer[T]
	buckets map[uint64][]setEntry[T, V]
	n       int
}

type setEntry[T comparable, V any] struct {
	key   []T
	value V
}

// NewSetIndex returns an empty index.
func NewSetIndex[T comparable, V any]() *SetIndex[T, V] {
	return &SetIndex[T, V]{buckets: make(map[uint64][]setEntry[T, V])}
}

// Get returns the value stored for a key set-equal to key.
func (i *SetIndex[T, V]) Get(key []T) (V, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.lookup(key)
}

// GetOrAdd returns the value stored for key, or stores and returns the value
// produced by create. The boolean reports whether the value was already
// present. create is called with the lock held and must not use the index.
func (i *SetIndex[T, V]) GetOrAdd(key []T, create func() V) (V, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if v, ok := i.lookup(key); ok {
		return v, true
	}
	v := create()
	h := i.cmp.Hash(key)
	i.buckets[h] = append(i.buckets[h], setEntry[T, V]{key: slices.Clone(key), value: v})
	i.n++
	return v, false
}

// Len returns the number of distinct keys.
func (i *SetIndex[T, V]) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.n
}

func (i *SetIndex[T, V]) lookup(key []T) (V, bool) {
	for _, e := range i.buckets[i.cmp.Hash(key)] {
		if i.cmp.Equal(e.key, key) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}
