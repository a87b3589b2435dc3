package lm

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/teranos/langkit/errors"
)

// Cached memoises sentence log-probabilities of another model in an LRU.
// The wrapped model must not be trained further while the cache is in use.
type Cached struct {
	model LanguageModel
	cache *lru.Cache[string, float64]
}

// NewCached wraps model with an LRU of size entries.
func NewCached(model LanguageModel, size int) (*Cached, error) {
	cache, err := lru.New[string, float64](size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create score cache of size %d", size)
	}
	return &Cached{model: model, cache: cache}, nil
}

// unit separator; never produced by the tokenizers
const sep = "\x1f"

// SentenceLogProbability returns the cached score, computing it on a miss.
func (c *Cached) SentenceLogProbability(sentence []string) float64 {
	k := strings.Join(sentence, sep)
	if v, ok := c.cache.Get(k); ok {
		return v
	}
	v := c.model.SentenceLogProbability(sentence)
	c.cache.Add(k, v)
	return v
}

// Len returns the number of cached sentences.
func (c *Cached) Len() int {
	return c.cache.Len()
}
