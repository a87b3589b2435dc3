package trie

import (
	"github.com/benbjohnson/immutable"

	"github.com/teranos/langkit/key"
)

// elementHasher adapts key.Comparable to immutable.Hasher.
type elementHasher[K comparable] struct {
	hash key.Hasher[K]
}

func (h elementHasher[K]) Hash(k K) uint32 {
	v := h.hash(k)
	return uint32(v ^ v>>32)
}

func (elementHasher[K]) Equal(a, b K) bool { return a == b }

// newChildren returns an empty child map. The map is a persistent hash
// array mapped trie: Set copies only the O(log n) internal nodes on the
// path to the entry, so a node with a wide fan-out is as cheap to update
// as a narrow one.
func newChildren[K comparable]() *immutable.Map[K, *Trie[K]] {
	return immutable.NewMap[K, *Trie[K]](elementHasher[K]{hash: key.Comparable[K]()})
}

// each visits the entries of m until fn returns false. A nil map has none.
func each[K comparable](m *immutable.Map[K, *Trie[K]], fn func(K, *Trie[K]) bool) bool {
	if m == nil {
		return true
	}
	itr := m.Iterator()
	for !itr.Done() {
		k, c, _ := itr.Next()
		if !fn(k, c) {
			return false
		}
	}
	return true
}
