// Package identity provides the equality and caching primitives shared by
// concurrent synthesis work-items.
//
//   - SetComparer compares sequences as multisets.
//   - HashSet is a set keyed by a substitutable equality strategy.
//   - ReusableHashSet is a single-slot pool of scratch HashSets.
//   - SetIndex maps sequences to values under set-equality.
//
// Everything in this package is safe for concurrent use unless stated otherwise.
package identity

// smallSet is the length up to which SetComparer matches elements pairwise
// instead of counting them in a map.
const smallSet = 8

// SetComparer compares two sequences as multisets: they are equal if they
// have the same length and every element of one can be matched to a distinct
// equal element of the other. A nil sequence equals an empty one.
//
// The hash is the length of the sequence. This satisfies the equal-hash
// invariant and costs O(1), but all same-length sequences collide. The
// comparer keys incremental caches where Equal is the authoritative check
// and Hash only buckets candidates.
//
// Sets are expected not to contain duplicates. Duplicates are nonetheless
// tolerated and counted with their multiplicity.
//
// SetComparer implements variantgen.Comparer[[]T].
type SetComparer[T comparable] struct{}

// Equal reports whether x and y hold the same multiset of elements.
func (SetComparer[T]) Equal(x, y []T) bool {
	if len(x) != len(y) {
		return false
	}
	switch n := len(x); {
	case n == 0:
		return true
	case n <= smallSet:
		var used [smallSet]bool
	next:
		for _, v := range x {
			for j, w := range y {
				if !used[j] && v == w {
					used[j] = true
					continue next
				}
			}
			return false
		}
		return true
	default:
		counts := make(map[T]int, n)
		for _, v := range x {
			counts[v]++
		}
		for _, v := range y {
			if counts[v] == 0 {
				return false
			}
			counts[v]--
		}
		return true
	}
}

// Hash returns the length of x.
func (SetComparer[T]) Hash(x []T) uint64 {
	return uint64(len(x))
}
