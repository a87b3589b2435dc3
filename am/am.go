// Package am loads langkit's configuration from TOML files and LANGKIT_*
// environment variables.
package am

// Config represents the langkit configuration
type Config struct {
	Counter CounterConfig `mapstructure:"counter" json:"counter" yaml:"counter" toml:"counter"`
	Corpus  CorpusConfig  `mapstructure:"corpus" json:"corpus" yaml:"corpus" toml:"corpus"`
	Model   ModelConfig   `mapstructure:"model" json:"model" yaml:"model" toml:"model"`
	Store   StoreConfig   `mapstructure:"store" json:"store" yaml:"store" toml:"store"`
	Log     LogConfig     `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
}

// CounterConfig selects and sizes the n-gram counter
type CounterConfig struct {
	Backend  string `mapstructure:"backend" json:"backend" yaml:"backend" toml:"backend"`    // trie or hash
	Order    int    `mapstructure:"order" json:"order" yaml:"order" toml:"order"`          // n-gram order (>= 1)
	Capacity int    `mapstructure:"capacity" json:"capacity" yaml:"capacity" toml:"capacity"` // hash backend size hint (0 = grow on demand)
}

// CorpusConfig controls how corpora are split and tokenised
type CorpusConfig struct {
	Separator string `mapstructure:"separator" json:"separator" yaml:"separator" toml:"separator"` // sentence separator (default: newline)
	Tokenizer string `mapstructure:"tokenizer" json:"tokenizer" yaml:"tokenizer" toml:"tokenizer"` // fields or words
	Lowercase bool   `mapstructure:"lowercase" json:"lowercase" yaml:"lowercase" toml:"lowercase"`
}

// ModelConfig configures language models
type ModelConfig struct {
	Smoothing string  `mapstructure:"smoothing" json:"smoothing" yaml:"smoothing" toml:"smoothing"` // mle, laplace, backoff, interpolated
	K         float64 `mapstructure:"k" json:"k" yaml:"k" toml:"k"`                         // additive constant for laplace
	Alpha     float64 `mapstructure:"alpha" json:"alpha" yaml:"alpha" toml:"alpha"`             // backoff multiplier
	Lambda    float64 `mapstructure:"lambda" json:"lambda" yaml:"lambda" toml:"lambda"`          // lower-order weight for interpolation
	CacheSize int     `mapstructure:"cache_size" json:"cache_size" yaml:"cache_size" toml:"cache_size"`
}

// StoreConfig configures the snapshot database
type StoreConfig struct {
	Path string `mapstructure:"path" json:"path" yaml:"path" toml:"path"`
}

// LogConfig configures console logging
type LogConfig struct {
	Theme string `mapstructure:"theme" json:"theme" yaml:"theme" toml:"theme"` // gruvbox or everforest
}

const (
	// DefaultDirPermissions is used when creating ~/.langkit.
	DefaultDirPermissions = 0o750

	// EnvPrefix prefixes every environment override, e.g. LANGKIT_COUNTER_ORDER.
	EnvPrefix = "LANGKIT"
)
