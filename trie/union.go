package trie

// Union merges t and other in lock step and returns a new root. Where both
// define a node its count is resolve(left, right); child key sets are
// merged. A subtree present on one side only is shared by reference. The
// result is a branch if either side is one, and keeps t's key segment.
// Neither operand changes. A nil operand acts as the empty tree, so the
// other side is returned as is.
func (t *Trie[K]) Union(other *Trie[K], resolve Resolver) *Trie[K] {
	if other == nil {
		return t
	}
	if t == nil {
		return other
	}
	n := &Trie[K]{key: t.key, hasKey: t.hasKey, count: resolve(t.count, other.count)}
	if t.children == nil && other.children == nil {
		return n
	}

	merged := t.children
	if merged == nil {
		merged = newChildren[K]()
	}
	each(other.children, func(k K, oc *Trie[K]) bool {
		if c, ok := merged.Get(k); ok {
			merged = merged.Set(k, c.Union(oc, resolve))
		} else {
			merged = merged.Set(k, oc)
		}
		return true
	})
	n.children = merged
	return n
}

// UnionLeft merges keeping t's count wherever both sides define a node.
func (t *Trie[K]) UnionLeft(other *Trie[K]) *Trie[K] {
	return t.Union(other, Left)
}

// UnionRight merges keeping other's count wherever both sides define a node.
func (t *Trie[K]) UnionRight(other *Trie[K]) *Trie[K] {
	return t.Union(other, Right)
}

// Merge sums counts wherever both sides define a node. Use it to combine
// counts gathered from separate shards of a corpus.
func (t *Trie[K]) Merge(other *Trie[K]) *Trie[K] {
	return t.Union(other, Add)
}

// Equal reports structural equality: same variant, key segment, count and,
// recursively, the same children.
func (t *Trie[K]) Equal(other *Trie[K]) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.hasKey != other.hasKey || (t.hasKey && t.key != other.key) {
		return false
	}
	if t.count != other.count || t.IsTerminal() != other.IsTerminal() {
		return false
	}
	if t.ChildCount() != other.ChildCount() {
		return false
	}
	return each(t.children, func(k K, c *Trie[K]) bool {
		oc, ok := other.Child(k)
		return ok && c.Equal(oc)
	})
}

// SameShape reports whether both nodes are the same variant: both terminal
// or both branches. Keys, counts and children are ignored. Two nil nodes
// share a shape; a nil node and a real one do not.
func (t *Trie[K]) SameShape(other *Trie[K]) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.IsTerminal() == other.IsTerminal()
}
