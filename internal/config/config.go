// Package config provides configuration management for nvl.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Upper bound for Workers.
const MaxWorkers = 64

var (
	validOutputFormats = []string{"table", "json", "plain"}
	validInputFormats  = []string{"auto", "plain", "markdown", "html"}
)

// Config holds the nvl configuration.
type Config struct {
	DBPath       string `yaml:"db_path,omitempty"`
	DefaultNovel string `yaml:"default_novel,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"`
	InputFormat  string `yaml:"input_format,omitempty"`
	Workers      int    `yaml:"workers,omitempty"`
}

// envOverrides mirrors Config for environment parsing. Zero values mean the
// variable was unset or empty.
type envOverrides struct {
	DBPath       string `env:"DB_PATH"`
	DefaultNovel string `env:"DEFAULT_NOVEL"`
	OutputFormat string `env:"OUTPUT"`
	InputFormat  string `env:"INPUT_FORMAT"`
	Workers      int    `env:"WORKERS"`
}

// EnvPrefix is prepended to every environment variable nvl reads.
const EnvPrefix = "NVL_"

// Validate checks that all set fields hold accepted values.
func (c *Config) Validate() error {
	if c.OutputFormat != "" && !slices.Contains(validOutputFormats, c.OutputFormat) {
		return fmt.Errorf("output_format must be one of %s", strings.Join(validOutputFormats, ", "))
	}
	if c.InputFormat != "" && !slices.Contains(validInputFormats, c.InputFormat) {
		return fmt.Errorf("input_format must be one of %s", strings.Join(validInputFormats, ", "))
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 0 and %d", MaxWorkers)
	}
	if c.DBPath != "" && strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db_path must not be blank")
	}
	return nil
}

// ResolvedDBPath returns DBPath, or DefaultDBPath when it is unset.
func (c *Config) ResolvedDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return DefaultDBPath()
}

// LoadFromEnv loads configuration from NVL_* environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() error {
	var ov envOverrides
	if err := env.ParseWithOptions(&ov, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if ov.DBPath != "" {
		c.DBPath = ov.DBPath
	}
	if ov.DefaultNovel != "" {
		c.DefaultNovel = ov.DefaultNovel
	}
	if ov.OutputFormat != "" {
		c.OutputFormat = ov.OutputFormat
	}
	if ov.InputFormat != "" {
		c.InputFormat = ov.InputFormat
	}
	if ov.Workers != 0 {
		c.Workers = ov.Workers
	}
	return nil
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "nvl", "config.yml")
	}

	// Fall back to ~/.config/nvl/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".nvl", "config.yml")
	}

	return filepath.Join(home, ".config", "nvl", "config.yml")
}

// DefaultDBPath returns the default chapter database path.
func DefaultDBPath() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "nvl", "nvl.db")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".nvl", "nvl.db")
	}

	return filepath.Join(home, ".local", "share", "nvl", "nvl.db")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file yields an empty config; a malformed one is an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
