// Package config loads application settings from an optional YAML
// file and environment variables. Everything has a default; the app
// runs with no config file at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/mathforge/internal/quizgen"
)

// Config holds application configuration.
type Config struct {
	DBPath      string `mapstructure:"db_path"`      // SQLite file location, empty means the XDG default
	OptionCount int    `mapstructure:"option_count"` // answer choices per question
	Sound       bool   `mapstructure:"sound"`        // terminal bell on answer feedback
	Sync        Sync   `mapstructure:"sync"`         // remote sync section
}

// Sync configures the optional stats server.
type Sync struct {
	Endpoint string `mapstructure:"endpoint"` // base URL, empty disables sync
	User     string `mapstructure:"user"`     // payload owner on the server
}

// Enabled reports whether a sync endpoint is configured.
func (s Sync) Enabled() bool {
	return s.Endpoint != ""
}

// Load reads configuration from the config file, if any, and
// environment variables prefixed with MATHFORGE_.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetDefault("db_path", "")
	v.SetDefault("option_count", quizgen.DefaultOptionCount)
	v.SetDefault("sound", true)
	v.SetDefault("sync.endpoint", "")
	v.SetDefault("sync.user", "")

	v.SetEnvPrefix("mathforge")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.OptionCount < 2 {
		return nil, fmt.Errorf("option_count must be at least 2, got %d", cfg.OptionCount)
	}
	if cfg.Sync.Enabled() && cfg.Sync.User == "" {
		return nil, errors.New("sync.user is required when sync.endpoint is set")
	}

	return &cfg, nil
}

// configDir resolves where the config file lives, following XDG.
func configDir() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "mathforge"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mathforge"), nil
}
