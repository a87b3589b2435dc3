// Package ngram counts token sequences. Two interchangeable Counter
// implementations are provided: TrieCounter, backed by a persistent trie
// that also counts every prefix, and HashCounter, backed by an exact table
// plus a backoff table keyed by each n-gram's (n-1)-prefix.
package ngram

import (
	"strings"

	"github.com/teranos/langkit/errors"
)

// Reserved tokens.
const (
	BOS     = "<s>"
	EOS     = "</s>"
	Unknown = "<unk>"
)

// Counter accumulates counts for token sequences.
type Counter interface {
	// Insert records one occurrence of ngram.
	Insert(ngram []string)
	// Lookup returns the count for ngram; never negative.
	Lookup(ngram []string) int
	// DistinctEntries reports the size of the counter. See each
	// implementation for what it counts.
	DistinctEntries() int
}

// ContextCounter is implemented by counters that can report how many
// inserted n-grams continue past a given context.
type ContextCounter interface {
	ContextCount(context []string) int
}

// Enumerable is implemented by counters that can list their entries.
type Enumerable interface {
	// Range calls fn for each entry until fn returns false. The ngram slice
	// must not be retained.
	Range(fn func(ngram []string, count int) bool)
}

// Backend names a Counter implementation.
type Backend string

const (
	BackendTrie Backend = "trie"
	BackendHash Backend = "hash"
)

// Backends lists the valid backend names.
var Backends = []Backend{BackendTrie, BackendHash}

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendTrie, BackendHash:
		return b, nil
	}
	return "", errors.WithHint(
		errors.NewInvalidRequestError("unknown counter backend %q", s),
		"use one of: trie, hash",
	)
}

// New builds an empty counter for the named backend. capacity is a size
// hint for the hash backend and ignored by the trie.
func New(backend Backend, capacity int) (Counter, error) {
	switch backend {
	case BackendTrie:
		return NewTrieCounter(), nil
	case BackendHash:
		return NewHashCounter(capacity), nil
	}
	_, err := ParseBackend(string(backend))
	return nil, err
}

// Factory returns a constructor for fresh counters of the given backend.
func Factory(backend Backend, capacity int) (func() Counter, error) {
	if _, err := New(backend, capacity); err != nil {
		return nil, err
	}
	return func() Counter {
		c, _ := New(backend, capacity)
		return c
	}, nil
}

// ContextCount returns how many inserted n-grams continue past context,
// falling back to Lookup for counters without ContextCounter.
func ContextCount(c Counter, context []string) int {
	if cc, ok := c.(ContextCounter); ok {
		return cc.ContextCount(context)
	}
	return c.Lookup(context)
}

// ExactCounter is implemented by counters whose Lookup may answer from a
// fallback table. Exact never falls back.
type ExactCounter interface {
	Exact(ngram []string) int
}

// Exact returns the count of exactly ngram, bypassing any fallback.
func Exact(c Counter, ngram []string) int {
	if ec, ok := c.(ExactCounter); ok {
		return ec.Exact(ngram)
	}
	return c.Lookup(ngram)
}
