package variantgen

import (
	"hash/maphash"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Comparer is an equality strategy. Generated Equal and Hash methods delegate
// to a Comparer so that the key semantics can be replaced without changing
// the generated code (e.g. case-insensitive string keys).
//
// Implementations must guarantee that Equal(a, b) implies Hash(a) == Hash(b).
type Comparer[T any] interface {
	Equal(a, b T) bool
	Hash(v T) uint64
}

// Comparer names understood by the generator.
const (
	ComparerDefault    = "default"
	ComparerIgnoreCase = "ignorecase"
)

// seed is shared by all hashes computed in this process. Hash values are not
// stable across processes.
var seed = maphash.MakeSeed()

// natural compares values with ==.
type natural[T comparable] struct{}

func (natural[T]) Equal(a, b T) bool { return a == b }
func (natural[T]) Hash(v T) uint64  { return maphash.Comparable(seed, v) }

// Default returns the natural equality strategy of T.
func Default[T comparable]() Comparer[T] {
	return natural[T]{}
}

type ignoreCase struct{}

func (ignoreCase) Equal(a, b string) bool { return CompareFold(a, b) == 0 }

func (ignoreCase) Hash(v string) uint64 {
	return maphash.String(seed, fold(v))
}

// fold maps every rune of s to a canonical case. Casers are stateful and
// must not be shared between goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}

// IgnoreCase compares strings using Unicode case folding.
var IgnoreCase Comparer[string] = ignoreCase{}

// Hash returns the natural hash of v.
func Hash[T comparable](v T) uint64 {
	return maphash.Comparable(seed, v)
}

// HashTime hashes a time.Time consistently with time.Time.Equal, which ignores
// the location and the monotonic clock reading.
func HashTime(t time.Time) uint64 {
	return maphash.Comparable(seed, t.UnixNano())
}

// HashString hashes s. It is used for key types whose canonical text form
// defines their equality (e.g. decimals).
func HashString(s string) uint64 {
	return maphash.String(seed, s)
}

// CombineHash mixes hashes in order. It is used for union types where the
// active case index is hashed together with the payload.
func CombineHash(hs ...uint64) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	var buf [8]byte
	for _, v := range hs {
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// CompareFold orders strings consistently with IgnoreCase: two strings that
// IgnoreCase reports equal compare as 0.
func CompareFold(a, b string) int {
	return strings.Compare(fold(a), fold(b))
}

// MustParseTime parses an RFC 3339 timestamp. It is used by generated item
// declarations whose literals were validated at generation time, and panics
// if s is malformed.
func MustParseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		panic(err)
	}
	return t
}
