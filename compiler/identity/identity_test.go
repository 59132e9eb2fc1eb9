package identity

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/variantgen"
)

func TestSetComparer_Equal(t *testing.T) {
	tests := []struct {
		name  string
		x, y  []int
		equal bool
	}{
		{"same order", []int{1, 2, 3}, []int{1, 2, 3}, true},
		{"reversed", []int{1, 2, 3}, []int{3, 2, 1}, true},
		{"different length", []int{1, 2, 3}, []int{1, 2, 3, 4}, false},
		{"different content", []int{1, 2, 3}, []int{1, 2, 4}, false},
		{"nil and empty", nil, []int{}, true},
		{"nil and nil", nil, nil, true},
		{"nil and non-empty", nil, []int{1}, false},
		{"duplicates matched", []int{1, 1, 2}, []int{1, 2, 1}, true},
		{"duplicates counted", []int{1, 1, 2}, []int{1, 2, 2}, false},
		{"large reversed", seq(0, 20), rev(seq(0, 20)), true},
		{"large differs", seq(0, 20), seq(1, 21), false},
		{"large duplicates counted", append(seq(0, 10), 1, 1), append(seq(0, 10), 1, 2), false},
	}
	var c SetComparer[int]
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, c.Equal(tt.x, tt.y))
			assert.Equal(t, tt.equal, c.Equal(tt.y, tt.x))
			if tt.equal {
				assert.Equal(t, c.Hash(tt.x), c.Hash(tt.y))
			}
			if len(tt.x) != len(tt.y) {
				assert.NotEqual(t, c.Hash(tt.x), c.Hash(tt.y))
			}
		})
	}
}

func TestSetComparer_DefaultHashesToZero(t *testing.T) {
	var c SetComparer[string]
	assert.Equal(t, uint64(0), c.Hash(nil))
	assert.Equal(t, uint64(0), c.Hash([]string{}))
}

func TestSetComparer_IsComparer(t *testing.T) {
	var c variantgen.Comparer[[]string] = SetComparer[string]{}
	s := NewHashSet(c)
	assert.True(t, s.Add([]string{"a", "b"}))
	assert.False(t, s.Add([]string{"b", "a"}))
	assert.True(t, s.Add([]string{"a", "c"}))
	assert.Equal(t, 2, s.Len())
}

func TestHashSet(t *testing.T) {
	s := NewHashSet(variantgen.IgnoreCase)
	assert.True(t, s.Add("Circle"))
	assert.False(t, s.Add("circle"))
	assert.True(t, s.Add("Square"))
	assert.True(t, s.Contains("SQUARE"))
	assert.False(t, s.Contains("Triangle"))
	assert.Equal(t, []string{"Circle", "Square"}, s.Values())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains("circle"))
	assert.True(t, s.Add("circle"))
}

func TestReusableHashSet_LeaseReturn(t *testing.T) {
	p := NewReusableHashSet[string](4)
	cmp := variantgen.Default[string]()

	first := p.Lease(cmp)
	first.Add("a")
	p.Return(first)

	second := p.Lease(cmp)
	assert.Same(t, first, second)
	assert.Equal(t, 0, second.Len(), "leased set must be cleared")

	third := p.Lease(cmp)
	assert.NotSame(t, second, third, "slot is empty after a successful claim")

	hits, misses := p.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}

func TestReusableHashSet_ComparerMismatch(t *testing.T) {
	p := NewReusableHashSet[string](4)
	s := p.Lease(variantgen.Default[string]())
	p.Return(s)

	other := p.Lease(variantgen.IgnoreCase)
	assert.NotSame(t, s, other)
	assert.Equal(t, variantgen.IgnoreCase, other.Comparer())

	// The mismatched lease did not claim the pooled set.
	again := p.Lease(variantgen.Default[string]())
	assert.Same(t, s, again)
}

func TestReusableHashSet_CapacityAdmission(t *testing.T) {
	p := NewReusableHashSet[int](2)
	cmp := variantgen.Default[int]()

	big := p.Lease(cmp)
	big.Add(1)
	big.Add(2)
	big.Add(3)
	p.Return(big)

	for range 3 {
		assert.NotSame(t, big, p.Lease(cmp))
	}

	exact := NewHashSet(cmp)
	exact.Add(1)
	exact.Add(2)
	p.Return(exact)
	assert.Same(t, exact, p.Lease(cmp))
}

func TestReusableHashSet_FirstWriterWins(t *testing.T) {
	p := NewReusableHashSet[int](4)
	cmp := variantgen.Default[int]()
	a, b := NewHashSet(cmp), NewHashSet(cmp)

	p.Return(a)
	p.Return(b)
	assert.Same(t, a, p.Lease(cmp))
	assert.NotSame(t, b, p.Lease(cmp))
}

func TestReusableHashSet_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultMaxCapacity, NewReusableHashSet[int](0).MaxCapacity())
	assert.Equal(t, 7, NewReusableHashSet[int](7).MaxCapacity())
	NewReusableHashSet[int](1).Return(nil)
}

func TestReusableHashSet_AtMostOneWinner(t *testing.T) {
	const workers = 64
	for round := range 20 {
		t.Run(fmt.Sprintf("round-%d", round), func(t *testing.T) {
			p := NewReusableHashSet[int](8)
			cmp := variantgen.Default[int]()
			pooled := NewHashSet(cmp)
			p.Return(pooled)

			var (
				wg    sync.WaitGroup
				start = make(chan struct{})
				got   = make([]*HashSet[int], workers)
			)
			for i := range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					got[i] = p.Lease(cmp)
				}()
			}
			close(start)
			wg.Wait()

			winners := 0
			for _, s := range got {
				require.NotNil(t, s)
				if s == pooled {
					winners++
				}
			}
			assert.Equal(t, 1, winners)
			hits, misses := p.Stats()
			assert.Equal(t, int64(1), hits)
			assert.Equal(t, int64(workers-1), misses)
		})
	}
}

func TestSetIndex(t *testing.T) {
	idx := NewSetIndex[string, string]()
	calls := 0
	create := func(name string) func() string {
		return func() string {
			calls++
			return name
		}
	}

	v, found := idx.GetOrAdd([]string{"comparable", "fmt.Stringer"}, create("c1"))
	assert.False(t, found)
	assert.Equal(t, "c1", v)

	v, found = idx.GetOrAdd([]string{"fmt.Stringer", "comparable"}, create("c2"))
	assert.True(t, found)
	assert.Equal(t, "c1", v)

	v, found = idx.GetOrAdd([]string{"comparable"}, create("c3"))
	assert.False(t, found)
	assert.Equal(t, "c3", v)

	got, ok := idx.Get([]string{"fmt.Stringer", "comparable"})
	assert.True(t, ok)
	assert.Equal(t, "c1", got)

	_, ok = idx.Get(nil)
	assert.False(t, ok)
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, 2, calls)
}

func TestSetIndex_KeyIsCopied(t *testing.T) {
	idx := NewSetIndex[int, int]()
	key := []int{1, 2}
	idx.GetOrAdd(key, func() int { return 7 })
	key[0] = 9

	_, ok := idx.Get([]int{1, 2})
	assert.True(t, ok)
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func rev(s []int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
