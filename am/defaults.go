package am

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Counter defaults
	v.SetDefault("counter.backend", "trie")
	v.SetDefault("counter.order", 3)
	v.SetDefault("counter.capacity", 0)

	// Corpus defaults
	v.SetDefault("corpus.separator", "\n")
	v.SetDefault("corpus.tokenizer", "fields")
	v.SetDefault("corpus.lowercase", false)

	// Model defaults
	v.SetDefault("model.smoothing", "laplace")
	v.SetDefault("model.k", 1.0)
	v.SetDefault("model.alpha", 0.4)
	v.SetDefault("model.lambda", 0.5)
	v.SetDefault("model.cache_size", 1024)

	v.SetDefault("store.path", "langkit.db")
	v.SetDefault("log.theme", "everforest")
}

// GetStorePath returns the snapshot database path
func (c *Config) GetStorePath() string {
	if c.Store.Path == "" {
		return "langkit.db"
	}
	return c.Store.Path
}

// GetLogTheme returns the log theme (default: everforest)
func (c *Config) GetLogTheme() string {
	if c.Log.Theme == "" {
		return "everforest"
	}
	return c.Log.Theme
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Counter: {Backend: %s, Order: %d}, Model: {Smoothing: %s}, Store: %s}",
		c.Counter.Backend, c.Counter.Order, c.Model.Smoothing, c.Store.Path)
}
