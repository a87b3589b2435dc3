package lm

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/ngram"
	"go.uber.org/zap/zaptest"
)

var counterFactories = map[string]func() ngram.Counter{
	"trie": func() ngram.Counter { return ngram.NewTrieCounter() },
	"hash": func() ngram.Counter { return ngram.NewHashCounter(0) },
}

func trained(t *testing.T, newCounter func() ngram.Counter, s Smoother) *NgramModel {
	t.Helper()
	m, err := New(2, newCounter, WithSmoother(s), WithLogger(zaptest.NewLogger(t).Sugar()))
	require.NoError(t, err)
	n := m.TrainAll(slices.Values([][]string{{"a", "b"}, {"a", "c"}}))
	require.Equal(t, 2, n)
	return m
}

func TestNgramModelProbabilities(t *testing.T) {
	for name, factory := range counterFactories {
		t.Run(name, func(t *testing.T) {
			t.Run("mle", func(t *testing.T) {
				m := trained(t, factory, MLE{})
				assert.Equal(t, 4, m.VocabularySize())
				assert.InDelta(t, 0.5, m.Probability("b", []string{"a"}), 1e-12)
				assert.InDelta(t, 1.0, m.Probability("a", []string{ngram.BOS}), 1e-12)
				assert.InDelta(t, math.Log(0.5), m.SentenceLogProbability([]string{"a", "b"}), 1e-12)
				assert.Equal(t, 0.0, m.Probability("c", []string{"b"}))
				assert.True(t, math.IsInf(m.SentenceLogProbability([]string{"b", "c"}), -1))
			})

			t.Run("laplace", func(t *testing.T) {
				m := trained(t, factory, AddK{K: 1})
				assert.InDelta(t, 1.0/3, m.Probability("b", []string{"a"}), 1e-12)
				assert.InDelta(t, 0.25, m.Probability("z", []string{"q"}), 1e-12)
				assert.False(t, math.IsInf(m.SentenceLogProbability([]string{"b", "c"}), -1))
			})

			t.Run("interpolated", func(t *testing.T) {
				m := trained(t, factory, Interpolated{Lambda: 0.5})
				assert.InDelta(t, 17.0/48, m.Probability("b", []string{"a"}), 1e-12)
			})

			t.Run("backoff", func(t *testing.T) {
				m := trained(t, factory, StupidBackoff{Alpha: 0.4})
				assert.InDelta(t, 0.5, m.Probability("b", []string{"a"}), 1e-12)
				assert.InDelta(t, 0.4/6, m.Probability("c", []string{"b"}), 1e-12)
			})
		})
	}
}

func TestProbabilityTruncatesContext(t *testing.T) {
	m := trained(t, counterFactories["hash"], MLE{})
	assert.Equal(t, m.Probability("b", []string{"a"}), m.Probability("b", []string{"x", "y", "a"}))
}

func TestPerplexity(t *testing.T) {
	m := trained(t, counterFactories["trie"], MLE{})

	pp, err := m.Perplexity([][]string{{"a", "b"}})
	require.NoError(t, err)
	assert.InDelta(t, math.Cbrt(2), pp, 1e-9)

	_, err = m.Perplexity(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyModel))
}

func TestRangeAndDistinct(t *testing.T) {
	for name, factory := range counterFactories {
		t.Run(name, func(t *testing.T) {
			m := trained(t, factory, MLE{})
			assert.Equal(t, 4, m.Distinct(1))
			assert.Equal(t, 5, m.Distinct(2))
			assert.Equal(t, 0, m.Distinct(3))

			got := map[string]int{}
			m.Range(2, func(g []string, n int) bool {
				got[g[0]+" "+g[1]] = n
				return true
			})
			assert.Equal(t, 2, got[ngram.BOS+" a"])
			assert.Equal(t, 1, got["a b"])
		})
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(0, counterFactories["trie"])
	assert.True(t, errors.IsInvalidRequestError(err))

	_, err = New(2, nil)
	assert.True(t, errors.IsInvalidRequestError(err))

	m, err := New(3, counterFactories["trie"])
	require.NoError(t, err)
	assert.Equal(t, 3, m.Order())
	assert.Equal(t, SmoothingLaplace, m.Smoother().Name())
	assert.Nil(t, m.Counter(4))
	assert.NotNil(t, m.Counter(1))
}

func TestScorer(t *testing.T) {
	m := trained(t, counterFactories["trie"], MLE{})
	score := Scorer(m)
	assert.Equal(t, m.SentenceLogProbability([]string{"a", "c"}), score([]string{"a", "c"}))
}
