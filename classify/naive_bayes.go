// Package classify provides a generic Naive-Bayes style decision rule over
// per-label scoring functions.
package classify

import (
	"math"

	"github.com/teranos/langkit/lm"
	"gonum.org/v1/gonum/floats"
)

// Scorer assigns a score to an input. For language models the score is a
// log probability.
type Scorer[In any] interface {
	Score(in In) float64
}

// ProbabilityFunc adapts a plain function to Scorer.
type ProbabilityFunc[In any] func(In) float64

// Score calls f.
func (f ProbabilityFunc[In]) Score(in In) float64 { return f(in) }

// Classifier picks a label for an input. ok is false when no label could
// be chosen.
type Classifier[In any, L comparable] interface {
	Classify(in In) (label L, ok bool)
}

// Score pairs a label with the score its model gave an input.
type Score[L comparable] struct {
	Label L       `json:"label"`
	Score float64 `json:"score"`
}

// NaiveBayes chooses the label whose scorer rates the input highest, or
// lowest when Flipped. Labels are kept in registration order, and a tie
// goes to the label registered first.
type NaiveBayes[In any, L comparable] struct {
	// Flipped selects the minimum score instead of the maximum, for
	// scorers that return costs.
	Flipped bool

	labels  []L
	scorers map[L]Scorer[In]
}

// New returns a classifier with no labels.
func New[In any, L comparable](flipped bool) *NaiveBayes[In, L] {
	return &NaiveBayes[In, L]{
		Flipped: flipped,
		scorers: make(map[L]Scorer[In]),
	}
}

// Add registers a scorer for label. A label that is already registered
// keeps its first scorer and Add returns false.
func (nb *NaiveBayes[In, L]) Add(label L, s Scorer[In]) bool {
	if _, ok := nb.scorers[label]; ok {
		return false
	}
	nb.labels = append(nb.labels, label)
	nb.scorers[label] = s
	return true
}

// AddFunc registers a plain scoring function for label.
func (nb *NaiveBayes[In, L]) AddFunc(label L, fn func(In) float64) bool {
	return nb.Add(label, ProbabilityFunc[In](fn))
}

// Classes returns the labels in registration order.
func (nb *NaiveBayes[In, L]) Classes() []L {
	return append([]L(nil), nb.labels...)
}

// Scores evaluates every scorer on in, in registration order.
func (nb *NaiveBayes[In, L]) Scores(in In) []Score[L] {
	out := make([]Score[L], len(nb.labels))
	for i, l := range nb.labels {
		out[i] = Score[L]{Label: l, Score: nb.scorers[l].Score(in)}
	}
	return out
}

// Classify returns the best label for in. With no labels registered it
// returns the zero label and false. NaN scores lose to any number.
func (nb *NaiveBayes[In, L]) Classify(in In) (L, bool) {
	scores := nb.Scores(in)
	i := nb.best(scores)
	if i < 0 {
		var zero L
		return zero, false
	}
	return scores[i].Label, true
}

func (nb *NaiveBayes[In, L]) best(scores []Score[L]) int {
	if len(scores) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		s, b := scores[i].Score, scores[best].Score
		switch {
		case math.IsNaN(s):
		case math.IsNaN(b):
			best = i
		case nb.Flipped && s < b:
			best = i
		case !nb.Flipped && s > b:
			best = i
		}
	}
	return best
}

// Posteriors normalises log scores into probabilities that sum to one,
// in registration order. With Flipped the scores are negated first. If
// every score is -Inf the result is uniform.
func (nb *NaiveBayes[In, L]) Posteriors(in In) []Score[L] {
	scores := nb.Scores(in)
	if len(scores) == 0 {
		return scores
	}

	logs := make([]float64, len(scores))
	for i, s := range scores {
		logs[i] = s.Score
		if nb.Flipped {
			logs[i] = -logs[i]
		}
	}

	norm := floats.LogSumExp(logs)
	for i := range scores {
		if math.IsInf(norm, -1) {
			scores[i].Score = 1 / float64(len(scores))
			continue
		}
		scores[i].Score = math.Exp(logs[i] - norm)
	}
	return scores
}

// Labeled pairs a label with a language model.
type Labeled[L comparable] struct {
	Label L
	Model lm.LanguageModel
}

// FromLanguageModels builds a classifier over tokenised sentences with one
// scorer per labelled model. The slice order fixes the tie-break.
func FromLanguageModels[L comparable](models ...Labeled[L]) *NaiveBayes[[]string, L] {
	nb := New[[]string, L](false)
	for _, m := range models {
		nb.AddFunc(m.Label, lm.Scorer(m.Model))
	}
	return nb
}
