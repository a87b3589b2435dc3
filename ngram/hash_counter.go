package ngram

import (
	"github.com/teranos/langkit/key"
)

// HashCounter keeps two tables: exact counts per n-gram, and backoff counts
// keyed by each inserted n-gram's (n-1)-prefix. Both are updated together
// on every insertion. It is not safe for concurrent use.
type HashCounter struct {
	exact   *key.Map[string, int]
	backoff *key.Map[string, int]
}

// NewHashCounter returns an empty counter sized for about capacity n-grams.
func NewHashCounter(capacity int) *HashCounter {
	return &HashCounter{
		exact:   key.NewMap[string, int](capacity),
		backoff: key.NewMap[string, int](capacity / 2),
	}
}

// Insert records one occurrence of ngram.
func (c *HashCounter) Insert(ngram []string) {
	c.bump(key.OfStrings(ngram...))
}

func (c *HashCounter) bump(k key.Key[string]) {
	incr := func(v int, _ bool) int { return v + 1 }
	c.exact.Update(k, incr)
	c.backoff.Update(k.Prefix(), incr)
}

// Lookup returns the exact count when ngram was inserted. Otherwise it
// returns the backoff count stored under ngram itself (how many inserted
// n-grams had ngram as their prefix). Failing both, it retries with the
// last token trimmed, down to a single token, and returns 0 when nothing
// matches.
func (c *HashCounter) Lookup(ngram []string) int {
	k := key.OfStrings(ngram...)
	for {
		if v, ok := c.exact.Get(k); ok {
			return v
		}
		if v, ok := c.backoff.Get(k); ok {
			return v
		}
		if k.Len() <= 1 {
			return 0
		}
		k = k.Prefix()
	}
}

// Exact returns the exact-table count without any fallback.
func (c *HashCounter) Exact(ngram []string) int {
	v, _ := c.exact.Get(key.OfStrings(ngram...))
	return v
}

// DistinctEntries returns the number of distinct n-grams inserted.
func (c *HashCounter) DistinctEntries() int {
	return c.exact.Len()
}

// ContextCount returns the backoff-table count for context: inserted
// n-grams whose (n-1)-prefix is context.
func (c *HashCounter) ContextCount(context []string) int {
	v, _ := c.backoff.Get(key.OfStrings(context...))
	return v
}

// Range visits the exact table.
func (c *HashCounter) Range(fn func(ngram []string, count int) bool) {
	c.exact.Range(func(k key.Key[string], v int) bool {
		return fn(k.Elements(), v)
	})
}
