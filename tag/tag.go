// Package tag defines the sequence-tagging capability and the scoring
// functions a tagger consumes: tag transitions and tag-to-token emissions,
// both estimated from ngram counters.
package tag

import (
	"math"
	"strings"

	"github.com/teranos/langkit/ngram"
)

// Tagged is a token with its tag.
type Tagged struct {
	Token string `json:"token"`
	Tag   string `json:"tag"`
}

// Tagger assigns one tag per token.
type Tagger interface {
	Tag(tokens []string) []Tagged
}

// TransitionFunc returns log P(next | prev) over tags. The sentence start
// and end are ngram.BOS and ngram.EOS.
type TransitionFunc func(prev, next string) float64

// EmissionFunc returns log P(token | tag).
type EmissionFunc func(tag, token string) float64

// Scorers estimates add-k smoothed transition and emission log
// probabilities from tagged sentences.
type Scorers struct {
	transitions ngram.Counter
	emissions   ngram.Counter
	tags        []string
	seenTags    map[string]struct{}
	vocab       map[string]struct{}
	k           float64
}

// NewScorers returns empty scorers backed by counters from newCounter.
// k <= 0 falls back to 1.
func NewScorers(newCounter func() ngram.Counter, k float64) *Scorers {
	if k <= 0 {
		k = 1
	}
	return &Scorers{
		transitions: newCounter(),
		emissions:   newCounter(),
		seenTags:    make(map[string]struct{}),
		vocab:       make(map[string]struct{}),
		k:           k,
	}
}

// Observe counts one tagged sentence.
func (s *Scorers) Observe(sentence []Tagged) {
	prev := ngram.BOS
	for _, tw := range sentence {
		if _, ok := s.seenTags[tw.Tag]; !ok {
			s.seenTags[tw.Tag] = struct{}{}
			s.tags = append(s.tags, tw.Tag)
		}
		s.vocab[tw.Token] = struct{}{}
		s.transitions.Insert([]string{prev, tw.Tag})
		s.emissions.Insert([]string{tw.Tag, tw.Token})
		prev = tw.Tag
	}
	s.transitions.Insert([]string{prev, ngram.EOS})
}

// Tags returns the tags seen so far in first-seen order.
func (s *Scorers) Tags() []string {
	return append([]string(nil), s.tags...)
}

// Transition returns the transition scoring function. Its outcome space
// is every seen tag plus EOS.
func (s *Scorers) Transition() TransitionFunc {
	return func(prev, next string) float64 {
		outcomes := float64(len(s.tags) + 1)
		c := float64(ngram.Exact(s.transitions, []string{prev, next}))
		ctx := float64(ngram.ContextCount(s.transitions, []string{prev}))
		return math.Log((c + s.k) / (ctx + s.k*outcomes))
	}
}

// Emission returns the emission scoring function. One extra outcome is
// reserved for unseen tokens.
func (s *Scorers) Emission() EmissionFunc {
	return func(tag, token string) float64 {
		outcomes := float64(len(s.vocab) + 1)
		c := float64(ngram.Exact(s.emissions, []string{tag, token}))
		ctx := float64(ngram.ContextCount(s.emissions, []string{tag}))
		return math.Log((c + s.k) / (ctx + s.k*outcomes))
	}
}

// ParseTagged splits a line of whitespace-separated word/TAG tokens. The
// last slash separates the tag, so "1/2/CD" is token "1/2" tagged CD. A
// token without a tag is tagged ngram.Unknown.
func ParseTagged(line string) []Tagged {
	fields := strings.Fields(line)
	out := make([]Tagged, 0, len(fields))
	for _, f := range fields {
		i := strings.LastIndexByte(f, '/')
		if i <= 0 || i == len(f)-1 {
			out = append(out, Tagged{Token: f, Tag: ngram.Unknown})
			continue
		}
		out = append(out, Tagged{Token: f[:i], Tag: f[i+1:]})
	}
	return out
}

// Tokens strips the tags.
func Tokens(sentence []Tagged) []string {
	out := make([]string, len(sentence))
	for i, tw := range sentence {
		out[i] = tw.Token
	}
	return out
}
