package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teranos/langkit/ngram"
)

// diagonal aligns position i to position i.
type diagonal struct {
	trained int
}

func (d *diagonal) Train(_ []SentencePair, iterations int) { d.trained += iterations }

func (d *diagonal) Align(source, target []string) map[int]int {
	out := map[int]int{}
	for i := range source {
		if i < len(target) {
			out[i] = i
		}
	}
	return out
}

func TestIndices(t *testing.T) {
	bitext := []SentencePair{
		{Source: []string{"das", "haus", "ist", "klein"}, Target: []string{"the", "house", "is"}},
		{Source: []string{"ja"}, Target: nil},
	}

	a := &diagonal{}
	a.Train(bitext, 5)
	assert.Equal(t, 5, a.trained)

	got := Indices(a, bitext)
	assert.Equal(t, [][]Link{
		{{0, 0}, {1, 1}, {2, 2}},
		{},
	}, got)
}

func TestCooccurrence(t *testing.T) {
	for name, factory := range map[string]func() ngram.Counter{
		"trie": func() ngram.Counter { return ngram.NewTrieCounter() },
		"hash": func() ngram.Counter { return ngram.NewHashCounter(0) },
	} {
		t.Run(name, func(t *testing.T) {
			c := NewCooccurrence(factory)
			c.Observe(SentencePair{Source: []string{"das", "haus"}, Target: []string{"the", "house"}})
			c.Observe(SentencePair{Source: []string{"das", "buch"}, Target: []string{"the", "book"}})

			tr := c.Translation()
			assert.InDelta(t, 0.5, tr("das", "the"), 1e-12)
			assert.InDelta(t, 0.25, tr("das", "house"), 1e-12)
			assert.InDelta(t, 0.5, tr("haus", "house"), 1e-12)
			assert.Equal(t, 0.0, tr("haus", "book"))
			assert.Equal(t, 0.0, tr("auto", "car"))

			assert.Equal(t, []Entry{
				{Source: "buch", Target: "book", Probability: 0.5},
				{Source: "das", Target: "the", Probability: 0.5},
				{Source: "haus", Target: "house", Probability: 0.5},
			}, c.Best())
		})
	}
}
