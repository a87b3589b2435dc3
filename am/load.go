package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/langkit/errors"
)

var globalConfig *Config
var viperInstance *viper.Viper

// ConfigSources records which file last set each dotted key during the
// most recent load.
var ConfigSources = map[string]SourceInfo{}

// Load reads the langkit configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	config, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path, on top of
// the defaults and without environment overrides
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Precedence (lowest to highest): defaults < system < user < project < env vars
	mergeConfigFiles(v)

	viperInstance = v
	return v
}

// UserConfigDir returns ~/.langkit.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".langkit")
}

// UserConfigPath returns ~/.langkit/am.toml.
func UserConfigPath() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "am.toml")
}

// findProjectConfig walks up from the working directory and returns the
// first am.toml found, or "".
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, "am.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges each existing config file into v in precedence
// order and records where every key came from.
func mergeConfigFiles(v *viper.Viper) {
	ConfigSources = map[string]SourceInfo{}

	type layer struct {
		path   string
		source ConfigSource
	}
	layers := []layer{
		{"/etc/langkit/am.toml", SourceSystem},
	}
	if user := UserConfigPath(); user != "" {
		layers = append(layers, layer{user, SourceUser})
	}
	if project := findProjectConfig(); project != "" && project != UserConfigPath() {
		layers = append(layers, layer{project, SourceProject})
	}

	for _, l := range layers {
		if _, err := os.Stat(l.path); err != nil {
			continue
		}
		file := viper.New()
		file.SetConfigFile(l.path)
		file.SetConfigType("toml")
		if err := file.ReadInConfig(); err != nil {
			continue
		}
		settings := file.AllSettings()
		if err := v.MergeConfigMap(settings); err != nil {
			continue
		}
		markSettingsFromSource(settings, "", l.source, l.path, ConfigSources)
	}
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return initViper().Get(key)
}

// GetString returns a configuration value as string using dot notation
func GetString(key string) string {
	return initViper().GetString(key)
}

// GetInt returns a configuration value as int using dot notation
func GetInt(key string) int {
	return initViper().GetInt(key)
}
