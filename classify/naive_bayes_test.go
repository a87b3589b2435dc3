package classify

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/langkit/lm"
	"github.com/teranos/langkit/ngram"
)

func constant(v float64) func(string) float64 {
	return func(string) float64 { return v }
}

func TestClassify(t *testing.T) {
	t.Run("argmax", func(t *testing.T) {
		nb := New[string, string](false)
		nb.AddFunc("a", constant(0.2))
		nb.AddFunc("b", constant(0.7))
		nb.AddFunc("c", constant(0.1))

		label, ok := nb.Classify("x")
		require.True(t, ok)
		assert.Equal(t, "b", label)
	})

	t.Run("flipped picks argmin", func(t *testing.T) {
		nb := New[string, string](true)
		nb.AddFunc("a", constant(0.2))
		nb.AddFunc("b", constant(0.7))
		nb.AddFunc("c", constant(0.1))

		label, ok := nb.Classify("x")
		require.True(t, ok)
		assert.Equal(t, "c", label)
	})

	t.Run("no labels", func(t *testing.T) {
		nb := New[string, int](false)
		label, ok := nb.Classify("x")
		assert.False(t, ok)
		assert.Equal(t, 0, label)
	})

	t.Run("NaN never wins", func(t *testing.T) {
		nb := New[string, string](false)
		nb.AddFunc("nan", constant(math.NaN()))
		nb.AddFunc("low", constant(-100))

		label, _ := nb.Classify("x")
		assert.Equal(t, "low", label)
	})

	t.Run("negative infinity loses", func(t *testing.T) {
		nb := New[string, string](false)
		nb.AddFunc("never", constant(math.Inf(-1)))
		nb.AddFunc("some", constant(-50))

		label, _ := nb.Classify("x")
		assert.Equal(t, "some", label)
	})
}

func TestTieBreakIsRegistrationOrder(t *testing.T) {
	for _, flipped := range []bool{false, true} {
		nb := New[string, string](flipped)
		nb.AddFunc("first", constant(0.5))
		nb.AddFunc("second", constant(0.5))

		for i := 0; i < 20; i++ {
			label, ok := nb.Classify("x")
			require.True(t, ok)
			assert.Equal(t, "first", label, "flipped=%v", flipped)
		}
	}
}

func TestAddKeepsFirstRegistration(t *testing.T) {
	nb := New[string, string](false)
	assert.True(t, nb.AddFunc("a", constant(1)))
	assert.False(t, nb.AddFunc("a", constant(100)))
	nb.AddFunc("b", constant(2))

	assert.Equal(t, []string{"a", "b"}, nb.Classes())
	assert.Equal(t, []Score[string]{{"a", 1}, {"b", 2}}, nb.Scores("x"))
}

func TestPosteriors(t *testing.T) {
	nb := New[string, string](false)
	nb.AddFunc("a", constant(math.Log(0.2)))
	nb.AddFunc("b", constant(math.Log(0.6)))

	post := nb.Posteriors("x")
	require.Len(t, post, 2)
	assert.InDelta(t, 0.25, post[0].Score, 1e-12)
	assert.InDelta(t, 0.75, post[1].Score, 1e-12)

	none := New[string, string](false)
	none.AddFunc("a", constant(math.Inf(-1)))
	none.AddFunc("b", constant(math.Inf(-1)))
	for _, p := range none.Posteriors("x") {
		assert.InDelta(t, 0.5, p.Score, 1e-12)
	}
}

func TestScorerInterface(t *testing.T) {
	var s Scorer[int] = ProbabilityFunc[int](func(i int) float64 { return float64(i) * 2 })
	assert.Equal(t, 6.0, s.Score(3))

	var _ Classifier[int, string] = New[int, string](false)
}

func TestFromLanguageModels(t *testing.T) {
	train := func(sentences ...[]string) *lm.NgramModel {
		m, err := lm.New(2, func() ngram.Counter { return ngram.NewTrieCounter() })
		require.NoError(t, err)
		m.TrainAll(slices.Values(sentences))
		return m
	}

	english := train([]string{"the", "cat", "sat"}, []string{"the", "dog", "ran"})
	german := train([]string{"der", "hund", "lief"}, []string{"die", "katze", "sass"})

	nb := FromLanguageModels(
		Labeled[string]{Label: "en", Model: english},
		Labeled[string]{Label: "de", Model: german},
	)
	assert.Equal(t, []string{"en", "de"}, nb.Classes())

	label, ok := nb.Classify([]string{"the", "cat", "ran"})
	require.True(t, ok)
	assert.Equal(t, "en", label)

	label, ok = nb.Classify([]string{"die", "katze", "lief"})
	require.True(t, ok)
	assert.Equal(t, "de", label)
}
