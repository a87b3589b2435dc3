// Package trie implements a persistent (immutable, structurally shared)
// prefix tree over sequences of comparable keys.
//
// Every node carries an optional key segment and a count. A node is either
// terminal (no child map) or a branch (a child map keyed by the next
// element). Operations that change the tree return a new root: only the
// nodes on the modified path are copied, every other subtree is shared with
// the previous version. A root therefore doubles as a snapshot that any
// number of goroutines may read while a writer keeps inserting.
package trie

import "github.com/benbjohnson/immutable"

// Trie is one node of a persistent prefix tree. Nodes are never mutated
// after they become reachable from a root.
type Trie[K comparable] struct {
	key      K
	hasKey   bool
	count    int
	children *immutable.Map[K, *Trie[K]] // nil for terminal nodes
}

// Resolver decides the merged count of a node present in both operands of
// a union.
type Resolver func(left, right int) int

// Add is the summing resolver.
func Add(left, right int) int { return left + right }

// Left keeps the receiver's count.
func Left(left, _ int) int { return left }

// Right keeps the argument's count.
func Right(_, right int) int { return right }

// New returns an empty root: no key, count 0, terminal.
func New[K comparable]() *Trie[K] {
	return &Trie[K]{}
}

// FromSequence returns an empty root with seq inserted once, without
// incrementing ancestors.
func FromSequence[K comparable](seq []K) *Trie[K] {
	return New[K]().Insert(seq, false)
}

// Insert returns a new root with seq added. The node at the end of the
// path gains one; with incrementAncestors every node strictly above it,
// the receiver included, gains one as well. Inserting the empty sequence
// increments the receiver. A terminal node that receives a non-empty
// sequence becomes a branch.
func (t *Trie[K]) Insert(seq []K, incrementAncestors bool) *Trie[K] {
	n := &Trie[K]{key: t.key, hasKey: t.hasKey, count: t.count, children: t.children}
	if len(seq) == 0 {
		n.count++
		return n
	}
	if incrementAncestors {
		n.count++
	}

	head := seq[0]
	kids := t.children
	if kids == nil {
		kids = newChildren[K]()
	}
	child, ok := kids.Get(head)
	if !ok {
		child = &Trie[K]{key: head, hasKey: true}
	}
	n.children = kids.Set(head, child.Insert(seq[1:], incrementAncestors))
	return n
}

// Count returns the count at the end of the exact path seq, or 0 when the
// path does not exist. The empty sequence returns the receiver's count.
func (t *Trie[K]) Count(seq []K) int {
	node, ok := t.Find(seq)
	if !ok {
		return 0
	}
	return node.count
}

// Child returns the child for k.
func (t *Trie[K]) Child(k K) (*Trie[K], bool) {
	if t.children == nil {
		return nil, false
	}
	return t.children.Get(k)
}

// Find returns the node at the end of seq.
func (t *Trie[K]) Find(seq []K) (*Trie[K], bool) {
	node := t
	for _, k := range seq {
		next, ok := node.Child(k)
		if !ok {
			return nil, false
		}
		node = next
	}
	return node, true
}

// Each calls fn for every direct child until fn returns false. Order is
// unspecified.
func (t *Trie[K]) Each(fn func(k K, child *Trie[K]) bool) {
	each(t.children, fn)
}

// HasChild reports whether a child exists for k. Always false on terminals.
func (t *Trie[K]) HasChild(k K) bool {
	_, ok := t.Child(k)
	return ok
}

// ChildCount returns the number of children; 0 on terminals.
func (t *Trie[K]) ChildCount() int {
	if t.children == nil {
		return 0
	}
	return t.children.Len()
}

// Key returns the node's key segment. The root has none.
func (t *Trie[K]) Key() (K, bool) {
	return t.key, t.hasKey
}

// IsTerminal reports whether the node has no child map.
func (t *Trie[K]) IsTerminal() bool {
	return t.children == nil
}

// Sum returns the node's own count plus the counts of all descendants.
func (t *Trie[K]) Sum() int {
	total := t.count
	each(t.children, func(_ K, c *Trie[K]) bool {
		total += c.Sum()
		return true
	})
	return total
}

// SumLeaves returns the total count held by terminal nodes. A branch's own
// count is not included.
func (t *Trie[K]) SumLeaves() int {
	if t.children == nil {
		return t.count
	}
	total := 0
	each(t.children, func(_ K, c *Trie[K]) bool {
		total += c.SumLeaves()
		return true
	})
	return total
}

// Walk visits every node below the receiver in pre-order with its full
// path from the receiver. Sibling order is unspecified. Returning false
// from fn stops the walk. The path slice is reused between calls.
func (t *Trie[K]) Walk(fn func(path []K, count int) bool) {
	t.walk(make([]K, 0, 8), fn)
}

func (t *Trie[K]) walk(path []K, fn func([]K, int) bool) bool {
	return each(t.children, func(k K, c *Trie[K]) bool {
		p := append(path, k)
		return fn(p, c.count) && c.walk(p, fn)
	})
}
