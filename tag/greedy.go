package tag

import (
	"math"

	"github.com/teranos/langkit/ngram"
)

// Greedy tags left to right, choosing at each position the tag that
// maximises transition(prev, tag) + emission(tag, token). Ties go to the
// tag listed first.
type Greedy struct {
	Tags       []string
	Transition TransitionFunc
	Emission   EmissionFunc
}

// NewGreedy returns a greedy tagger over the scorers' current state.
func NewGreedy(s *Scorers) *Greedy {
	return &Greedy{
		Tags:       s.Tags(),
		Transition: s.Transition(),
		Emission:   s.Emission(),
	}
}

// Tag implements Tagger. With no tags every token is tagged ngram.Unknown.
func (g *Greedy) Tag(tokens []string) []Tagged {
	out := make([]Tagged, len(tokens))
	prev := ngram.BOS
	for i, tok := range tokens {
		best, bestScore := ngram.Unknown, math.Inf(-1)
		for _, t := range g.Tags {
			if s := g.Transition(prev, t) + g.Emission(t, tok); s > bestScore {
				best, bestScore = t, s
			}
		}
		out[i] = Tagged{Token: tok, Tag: best}
		prev = best
	}
	return out
}
