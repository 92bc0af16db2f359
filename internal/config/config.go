// Package config loads runtime settings from the tally config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config keeps runtime settings for tally.
type Config struct {
	// StoragePath is the habit database location. A .json extension
	// selects the JSON backend, anything else SQLite.
	StoragePath string `mapstructure:"storage_path"`

	// Timezone is the IANA name used to resolve "today". Empty or
	// "Local" selects the system timezone.
	Timezone string `mapstructure:"timezone"`

	// Debug enables verbose logging to stderr.
	Debug bool `mapstructure:"debug"`
}

// DefaultConfigDir returns ~/.config/tally.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "tally")
}

// Load reads the config file at path, or the default location when path
// is empty. A missing file yields defaults rather than an error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("storage_path", filepath.Join(DefaultConfigDir(), "tally.db"))
	v.SetDefault("timezone", "Local")
	v.SetDefault("debug", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine; defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
