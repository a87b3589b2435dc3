package ngram

import (
	"github.com/teranos/langkit/trie"
)

// TrieCounter counts n-grams in a persistent trie, incrementing every
// prefix on the way. Lookup of a prefix therefore returns the number of
// insertions that passed through it.
//
// Writes replace the root; Snapshot hands out the current root, which stays
// valid and unchanged for readers on any goroutine. TrieCounter itself is
// single-writer.
type TrieCounter struct {
	root *trie.Trie[string]
}

// NewTrieCounter returns an empty counter.
func NewTrieCounter() *TrieCounter {
	return &TrieCounter{root: trie.New[string]()}
}

// Insert records one occurrence of ngram and of each of its prefixes.
func (c *TrieCounter) Insert(ngram []string) {
	c.root = c.root.Insert(ngram, true)
}

// Lookup returns the count at the end of the exact path, 0 if absent.
func (c *TrieCounter) Lookup(ngram []string) int {
	return c.root.Count(ngram)
}

// DistinctEntries returns the root count, which is the total number of
// insertions rather than the number of distinct n-grams.
func (c *TrieCounter) DistinctEntries() int {
	return c.root.Count(nil)
}

// ContextCount sums the children of the node at context: insertions that
// continued past it.
func (c *TrieCounter) ContextCount(context []string) int {
	node, ok := c.root.Find(context)
	if !ok {
		return 0
	}
	total := 0
	node.Each(func(_ string, child *trie.Trie[string]) bool {
		total += child.Count(nil)
		return true
	})
	return total
}

// Range visits every stored path, including prefixes, with its count.
func (c *TrieCounter) Range(fn func(ngram []string, count int) bool) {
	c.root.Walk(fn)
}

// Snapshot returns the current immutable root.
func (c *TrieCounter) Snapshot() *trie.Trie[string] {
	return c.root
}

// Merge adds the counts of other into c. A nil other changes nothing.
func (c *TrieCounter) Merge(other *TrieCounter) {
	if other == nil {
		return
	}
	c.root = c.root.Merge(other.root)
}
