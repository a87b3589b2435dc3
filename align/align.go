// Package align defines the word-alignment capability over sentence-aligned
// bitext, plus the co-occurrence translation table an EM aligner starts
// from.
package align

import (
	"sort"

	"github.com/teranos/langkit/ngram"
)

// SentencePair is one line of bitext.
type SentencePair struct {
	Source []string `json:"source"`
	Target []string `json:"target"`
}

// Link connects a source position to a target position.
type Link struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Aligner learns word alignments from bitext.
type Aligner interface {
	// Train runs the given number of training passes over bitext.
	Train(bitext []SentencePair, iterations int)
	// Align maps source positions to target positions. Unaligned source
	// positions are absent.
	Align(source, target []string) map[int]int
}

// Indices aligns every pair and returns the links of each, sorted by
// source then target position.
func Indices(a Aligner, bitext []SentencePair) [][]Link {
	out := make([][]Link, len(bitext))
	for i, p := range bitext {
		m := a.Align(p.Source, p.Target)
		links := make([]Link, 0, len(m))
		for s, t := range m {
			links = append(links, Link{Source: s, Target: t})
		}
		sort.Slice(links, func(i, j int) bool {
			if links[i].Source != links[j].Source {
				return links[i].Source < links[j].Source
			}
			return links[i].Target < links[j].Target
		})
		out[i] = links
	}
	return out
}

// TranslationFunc returns t(target | source).
type TranslationFunc func(source, target string) float64

// Cooccurrence counts how often each source word shares a sentence pair
// with each target word.
type Cooccurrence struct {
	pairs ngram.Counter
}

// NewCooccurrence returns an empty table backed by a counter from newCounter.
func NewCooccurrence(newCounter func() ngram.Counter) *Cooccurrence {
	return &Cooccurrence{pairs: newCounter()}
}

// Observe counts every source/target word pair of p once per occurrence.
func (c *Cooccurrence) Observe(p SentencePair) {
	for _, s := range p.Source {
		for _, t := range p.Target {
			c.pairs.Insert([]string{s, t})
		}
	}
}

// Translation returns t(target | source) = c(source, target) / c(source),
// where c(source) sums over all targets. Unseen sources give 0.
func (c *Cooccurrence) Translation() TranslationFunc {
	return func(source, target string) float64 {
		total := ngram.ContextCount(c.pairs, []string{source})
		if total == 0 {
			return 0
		}
		return float64(ngram.Exact(c.pairs, []string{source, target})) / float64(total)
	}
}

// Entry is one row of a translation table.
type Entry struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Probability float64 `json:"probability"`
}

// Best returns, for every observed source word, the target word with the
// highest translation probability, sorted by source. Ties go to the
// lexicographically smaller target. A counter that cannot enumerate its
// entries yields nil.
func (c *Cooccurrence) Best() []Entry {
	e, ok := c.pairs.(ngram.Enumerable)
	if !ok {
		return nil
	}
	t := c.Translation()
	best := make(map[string]Entry)
	e.Range(func(g []string, _ int) bool {
		if len(g) != 2 {
			return true
		}
		cand := Entry{Source: g[0], Target: g[1], Probability: t(g[0], g[1])}
		cur, seen := best[g[0]]
		if !seen || cand.Probability > cur.Probability ||
			(cand.Probability == cur.Probability && cand.Target < cur.Target) {
			best[g[0]] = cand
		}
		return true
	})

	out := make([]Entry, 0, len(best))
	for _, b := range best {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}
