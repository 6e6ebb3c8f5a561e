// Package config loads studydeck settings from, in increasing precedence:
// built-in defaults, an optional YAML config file, STUDYDECK_* environment
// variables, and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "STUDYDECK_"

// Config holds everything the CLI needs to construct a store and logger.
type Config struct {
	// DataDir is where the file store keeps its JSON records.
	DataDir string `koanf:"data_dir" validate:"required"`
	// Store selects the storage backend.
	Store string `koanf:"store" validate:"oneof=file sqlite"`
	// DBPath is the sqlite database file, used when Store is "sqlite".
	DBPath string `koanf:"db_path"`
	// CacheDir is where git card sources are cloned.
	CacheDir string `koanf:"cache_dir"`
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
}

// Load builds the config. configFile may be empty; flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	if flags != nil {
		// Flag names are dashed on the command line but underscored as keys.
		p := posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, interface{}) {
			return strings.ReplaceAll(key, "-", "_"), value
		})
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("failed to load flag config: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills in any field the providers left empty, rooting all
// paths under ~/.studydeck.
func (c *Config) applyDefaults() error {
	var root string
	if c.DataDir == "" || c.DBPath == "" || c.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to determine home directory: %w", err)
		}
		root = filepath.Join(home, ".studydeck")
	}

	if c.DataDir == "" {
		c.DataDir = filepath.Join(root, "data")
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(root, "study.db")
	}
	if c.CacheDir == "" {
		c.CacheDir = filepath.Join(root, "repos")
	}
	if c.Store == "" {
		c.Store = "file"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// SlogLevel maps the configured level name onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
