package am

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/teranos/langkit/errors"
)

// createBackup keeps rotating backups (.back1, .back2, .back3) of
// configPath before it is rewritten.
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back1, back2, back3 := configPath+".back1", configPath+".back2", configPath+".back3"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete old backup %s", back3)
	}
	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, 0o644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

// loadConfigMap parses configPath, or returns an empty map when it does
// not exist yet.
func loadConfigMap(configPath string) (map[string]interface{}, error) {
	config := make(map[string]interface{})
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", configPath)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", configPath)
	}
	return config, nil
}

// SetValue writes one dotted key into the user config file
// (~/.langkit/am.toml) and returns the file path.
func SetValue(key, raw string) (string, error) {
	return SetValueIn(UserConfigPath(), key, raw)
}

// SetValueIn writes one dotted key into configPath, keeping a backup of
// the previous file. Only keys with a default are accepted; raw is parsed
// as bool, integer or float when the default has that type.
func SetValueIn(configPath, key, raw string) (string, error) {
	if configPath == "" {
		return "", errors.New("could not determine home directory")
	}

	defaults := viper.New()
	SetDefaults(defaults)
	if !defaults.IsSet(key) {
		return "", errors.WithHint(
			errors.NewInvalidRequestError("unknown config key %q", key),
			"list valid keys with: langkit am show",
		)
	}
	value, err := parseLike(defaults.Get(key), raw)
	if err != nil {
		return "", errors.Wrapf(err, "invalid value for %s", key)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return "", errors.Wrap(err, "failed to create config directory")
	}
	config, err := loadConfigMap(configPath)
	if err != nil {
		return "", err
	}

	parts := strings.Split(key, ".")
	section := config
	for _, p := range parts[:len(parts)-1] {
		next, ok := section[p].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			section[p] = next
		}
		section = next
	}
	section[parts[len(parts)-1]] = value

	if err := createBackup(configPath); err != nil {
		return "", errors.Wrap(err, "failed to create backup")
	}
	data, err := toml.Marshal(config)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", configPath)
	}

	Reset()
	return configPath, nil
}

func parseLike(def interface{}, raw string) (interface{}, error) {
	switch def.(type) {
	case bool:
		return strconv.ParseBool(raw)
	case int:
		n, err := strconv.ParseInt(raw, 10, 64)
		return n, err
	case float64:
		return strconv.ParseFloat(raw, 64)
	}
	return raw, nil
}
