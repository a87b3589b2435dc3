package am

import (
	"github.com/teranos/langkit/corpus"
	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/lm"
	"github.com/teranos/langkit/logger"
	"github.com/teranos/langkit/ngram"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := ngram.ParseBackend(c.Counter.Backend); err != nil {
		return errors.Wrap(err, "counter.backend")
	}
	if c.Counter.Order < 1 {
		return errors.Newf("counter.order must be >= 1, got %d", c.Counter.Order)
	}
	// Capacity: 0 = grow on demand, negative = invalid
	if c.Counter.Capacity < 0 {
		return errors.Newf("counter.capacity must be >= 0, got %d", c.Counter.Capacity)
	}

	if corpus.Tokenizer(c.Corpus.Tokenizer, false) == nil {
		return errors.WithHintf(
			errors.Newf("corpus.tokenizer %q is not known", c.Corpus.Tokenizer),
			"use %s or %s", corpus.TokenizerFields, corpus.TokenizerWords,
		)
	}

	if _, err := c.Smoother(); err != nil {
		return errors.Wrap(err, "model")
	}
	// Cache size: 0 = no cache, negative = invalid
	if c.Model.CacheSize < 0 {
		return errors.Newf("model.cache_size must be >= 0, got %d", c.Model.CacheSize)
	}

	if theme := c.GetLogTheme(); theme != logger.ThemeGruvbox && theme != logger.ThemeEverforest {
		return errors.Newf("log.theme must be %s or %s, got %q", logger.ThemeGruvbox, logger.ThemeEverforest, theme)
	}

	return nil
}

// Smoother builds the configured smoother.
func (c *Config) Smoother() (lm.Smoother, error) {
	return lm.ParseSmoother(c.Model.Smoothing, lm.Params{
		K:      c.Model.K,
		Alpha:  c.Model.Alpha,
		Lambda: c.Model.Lambda,
	})
}

// Tokenizer builds the configured tokenizer.
func (c *Config) Tokenizer() func(string) []string {
	return corpus.Tokenizer(c.Corpus.Tokenizer, c.Corpus.Lowercase)
}

// CounterFactory builds constructors for the configured backend.
func (c *Config) CounterFactory() (func() ngram.Counter, error) {
	backend, err := ngram.ParseBackend(c.Counter.Backend)
	if err != nil {
		return nil, err
	}
	return ngram.Factory(backend, c.Counter.Capacity)
}
