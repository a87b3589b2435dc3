package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	langkittest "github.com/teranos/langkit/internal/testing"
	"github.com/teranos/langkit/ngram"
	"github.com/teranos/langkit/store"
)

func TestReplayAcrossBackends(t *testing.T) {
	ctx := context.Background()
	s := store.NewSnapshots(langkittest.CreateTestDB(t), nil)

	sentences := [][]string{
		{"a", "rose", "is", "a", "rose"},
		{"is", "a", "rose"},
	}
	hash := ngram.NewHashCounter(0)
	for _, sent := range sentences {
		ngram.Feed(hash, sent, 2)
	}

	run, err := s.Save(ctx, store.Run{Corpus: "roses", Backend: "hash", Order: 2, Sentences: 2}, hash)
	require.NoError(t, err)
	assert.Equal(t, hash.DistinctEntries(), run.Entries)

	trie := ngram.NewTrieCounter()
	inserted, err := s.Replay(ctx, run.ID, run.Order, trie)
	require.NoError(t, err)
	assert.Equal(t, 10, inserted)

	hash.Range(func(g []string, n int) bool {
		assert.Equal(t, n, trie.Lookup(g), "%v", g)
		stored, err := s.Lookup(ctx, run.ID, g)
		assert.NoError(t, err)
		assert.Equal(t, n, stored, "%v", g)
		return true
	})
}
