// Package config provides configuration loading and validation for watchlog.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvDatabase = "WATCHLOG_DB"
)

// Config is the root configuration structure loaded from YAML.
// Every field is optional; command-line flags override it.
type Config struct {
	// Database is the path of the SQLite store. Empty means an in-memory
	// store that lives for one run.
	Database string `yaml:"database,omitempty"`

	// Strict aborts a parse on the first bad line instead of skipping it.
	Strict bool `yaml:"strict,omitempty"`

	// Output is the default report format (text or json).
	Output string `yaml:"output,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: "text",
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	switch cfg.Output {
	case "text", "json":
	case "":
		return errors.New("output: format must not be empty")
	default:
		return fmt.Errorf("output: invalid format %q (use text or json)", cfg.Output)
	}
	return nil
}

// applyEnvironmentOverrides applies environment variable overrides.
func (c *Config) applyEnvironmentOverrides() {
	if db := os.Getenv(EnvDatabase); db != "" {
		c.Database = db
	}
}
