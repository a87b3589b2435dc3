// Package key provides Key, an immutable ordered sequence of elements with
// a precomputed order-sensitive hash, and Map, a hash-bucketed table keyed
// by it. Keys identify n-grams in the hash-backed counter.
package key

import (
	"fmt"
	"hash/maphash"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// multiplier of the polynomial rolling hash.
const multiplier = 31

// Hasher hashes a single element.
type Hasher[E any] func(E) uint64

// Strings hashes strings with xxhash.
func Strings() Hasher[string] {
	return xxhash.Sum64String
}

var seed = maphash.MakeSeed()

// Comparable hashes any comparable value with hash/maphash. The seed is
// fixed for the life of the process, so hashes are not stable across runs.
func Comparable[E comparable]() Hasher[E] {
	return func(e E) uint64 {
		return maphash.Comparable(seed, e)
	}
}

// Key is an immutable ordered sequence of elements. Its hash combines the
// element hashes with h = 31*h + hash(e), so reordering elements changes it.
// The zero Key is the empty sequence with hash 0.
type Key[E comparable] struct {
	elems  []E
	hash   uint64
	hasher Hasher[E]
}

// New builds a key from elems. The elements are copied.
func New[E comparable](h Hasher[E], elems ...E) Key[E] {
	k := Key[E]{
		elems:  append([]E(nil), elems...),
		hasher: h,
	}
	k.hash = combine(h, k.elems)
	return k
}

// OfStrings builds a string key hashed with Strings.
func OfStrings(elems ...string) Key[string] {
	return New(Strings(), elems...)
}

func combine[E comparable](h Hasher[E], elems []E) uint64 {
	var acc uint64
	for _, e := range elems {
		acc = multiplier*acc + h(e)
	}
	return acc
}

// At returns the element at position i. It panics if i is out of range.
func (k Key[E]) At(i int) E {
	return k.elems[i]
}

// Len returns the number of elements.
func (k Key[E]) Len() int {
	return len(k.elems)
}

// Hash returns the combined hash.
func (k Key[E]) Hash() uint64 {
	return k.hash
}

// Elements returns a copy of the elements.
func (k Key[E]) Elements() []E {
	return append([]E(nil), k.elems...)
}

// Prefix returns the key without its last element. The prefix of the empty
// key is the empty key.
func (k Key[E]) Prefix() Key[E] {
	if len(k.elems) == 0 {
		return k
	}
	p := Key[E]{elems: k.elems[:len(k.elems)-1], hasher: k.hasher}
	if k.hasher != nil {
		p.hash = combine(k.hasher, p.elems)
	}
	return p
}

// SameHash reports whether both keys have the same combined hash. Distinct
// sequences may collide.
func (k Key[E]) SameHash(other Key[E]) bool {
	return k.hash == other.hash
}

// Equal compares hashes first and then the elements, so colliding
// sequences are never equal.
func (k Key[E]) Equal(other Key[E]) bool {
	if k.hash != other.hash || len(k.elems) != len(other.elems) {
		return false
	}
	for i := range k.elems {
		if k.elems[i] != other.elems[i] {
			return false
		}
	}
	return true
}

func (k Key[E]) String() string {
	parts := make([]string, len(k.elems))
	for i, e := range k.elems {
		parts[i] = fmt.Sprint(e)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
