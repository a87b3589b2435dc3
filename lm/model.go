// Package lm builds n-gram language models on top of ngram counters and
// exposes them through the LanguageModel capability consumed by the
// classifier.
package lm

import (
	"iter"
	"math"

	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/logger"
	"github.com/teranos/langkit/ngram"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// LanguageModel assigns a natural-log probability to a whole sentence.
type LanguageModel interface {
	SentenceLogProbability(sentence []string) float64
}

// Scorer exposes a model as a plain scoring function.
func Scorer(m LanguageModel) func([]string) float64 {
	return m.SentenceLogProbability
}

// NgramModel is an order-N model with one counter per order. Counter k
// receives only k-grams, so each counter's context counts are exact for
// its order regardless of backend.
type NgramModel struct {
	order     int
	counters  []ngram.Counter
	vocab     map[string]struct{}
	smoother  Smoother
	sentences int
	logger    *zap.SugaredLogger
}

// Option configures an NgramModel.
type Option func(*NgramModel)

// WithSmoother sets the smoother. The default is add-one.
func WithSmoother(s Smoother) Option {
	return func(m *NgramModel) { m.smoother = s }
}

// WithLogger sets the logger used for training summaries.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(m *NgramModel) { m.logger = l }
}

// New returns an empty model of the given order. newCounter is called once
// per order.
func New(order int, newCounter func() ngram.Counter, opts ...Option) (*NgramModel, error) {
	if order < 1 {
		return nil, errors.NewInvalidRequestError("model order must be at least 1, got %d", order)
	}
	if newCounter == nil {
		return nil, errors.NewInvalidRequestError("model needs a counter constructor")
	}

	m := &NgramModel{
		order:    order,
		counters: make([]ngram.Counter, order),
		vocab:    make(map[string]struct{}),
		smoother: AddK{K: 1},
	}
	for i := range m.counters {
		m.counters[i] = newCounter()
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logger.OrNop(m.logger)
	return m, nil
}

// Train adds one tokenised sentence. Every word and the closing EOS is
// counted at each order 1..N with its preceding context.
func (m *NgramModel) Train(sentence []string) {
	padded := ngram.Pad(sentence, m.order)
	for i := m.order - 1; i < len(padded); i++ {
		m.vocab[padded[i]] = struct{}{}
		for k := 1; k <= m.order; k++ {
			m.counters[k-1].Insert(padded[i-k+1 : i+1])
		}
	}
	m.sentences++
}

// TrainAll trains on every sentence in seq and returns how many were read.
func (m *NgramModel) TrainAll(seq iter.Seq[[]string]) int {
	n := 0
	for s := range seq {
		m.Train(s)
		n++
	}
	m.logger.Infow("Model trained",
		logger.FieldOrder, m.order,
		logger.FieldSentences, n,
		logger.FieldVocab, len(m.vocab),
		logger.FieldSmoothing, m.smoother.Name(),
	)
	return n
}

// Order returns N.
func (m *NgramModel) Order() int { return m.order }

// Sentences returns the number of sentences trained on.
func (m *NgramModel) Sentences() int { return m.sentences }

// VocabularySize counts distinct predicted tokens, EOS included.
func (m *NgramModel) VocabularySize() int { return len(m.vocab) }

// Smoother returns the model's smoother.
func (m *NgramModel) Smoother() Smoother { return m.smoother }

// Counter returns the counter holding k-grams.
func (m *NgramModel) Counter(k int) ngram.Counter {
	if k < 1 || k > m.order {
		return nil
	}
	return m.counters[k-1]
}

// Probability returns P(word | context). Only the last N-1 context tokens
// are used; a shorter context starts at a lower order.
func (m *NgramModel) Probability(word string, context []string) float64 {
	if len(context) > m.order-1 {
		context = context[len(context)-(m.order-1):]
	}
	return m.prob(word, context)
}

// prob recurses from the full context down to the uniform distribution.
func (m *NgramModel) prob(word string, context []string) float64 {
	vocab := max(len(m.vocab), 1)
	var lower float64
	if len(context) == 0 {
		lower = 1 / float64(vocab)
	} else {
		lower = m.prob(word, context[1:])
	}

	c := m.counters[len(context)]
	g := make([]string, 0, len(context)+1)
	g = append(append(g, context...), word)
	return m.smoother.Smooth(ngram.Exact(c, g), ngram.ContextCount(c, context), lower, vocab)
}

// LogProbability is the natural log of Probability.
func (m *NgramModel) LogProbability(word string, context []string) float64 {
	return math.Log(m.Probability(word, context))
}

// SentenceLogProbability sums the log probability of every word and the
// closing EOS given its padded context. An unseen event under MLE makes
// the result -Inf.
func (m *NgramModel) SentenceLogProbability(sentence []string) float64 {
	padded := ngram.Pad(sentence, m.order)
	logs := make([]float64, 0, len(padded))
	for i := m.order - 1; i < len(padded); i++ {
		logs = append(logs, m.LogProbability(padded[i], padded[i-m.order+1:i]))
	}
	return floats.Sum(logs)
}

// Perplexity returns 2 to the per-token cross-entropy of the sentences,
// EOS tokens included.
func (m *NgramModel) Perplexity(sentences [][]string) (float64, error) {
	tokens := 0
	var logSum float64
	for _, s := range sentences {
		logSum += m.SentenceLogProbability(s)
		tokens += len(s) + 1
	}
	if tokens == 0 {
		return 0, errors.Wrap(errors.ErrEmptyModel, "perplexity needs at least one sentence")
	}
	entropy := -logSum / math.Ln2 / float64(tokens)
	return math.Exp2(entropy), nil
}

// Range visits the distinct k-grams held by the order-k counter with their
// counts. Counters that store prefixes report only full-length entries.
func (m *NgramModel) Range(k int, fn func(ngram []string, count int) bool) {
	c, ok := m.Counter(k).(ngram.Enumerable)
	if !ok {
		return
	}
	c.Range(func(g []string, n int) bool {
		if len(g) != k {
			return true
		}
		return fn(g, n)
	})
}

// Distinct returns the number of distinct k-grams.
func (m *NgramModel) Distinct(k int) int {
	n := 0
	m.Range(k, func([]string, int) bool {
		n++
		return true
	})
	return n
}
