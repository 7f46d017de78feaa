// Package config loads the optional ~/.planscope/config.yaml file. Every
// field has a sensible default; the env var PLANSCOPE_DB wins over the
// configured database path.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the directory under the user's home that holds the database
// and config file.
const AppDir = ".planscope"

// Config models config.yaml.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `yaml:"db_path,omitempty"`
	// EpicMode is the default epic-accounting policy:
	// "ignore-if-has-children" or "gap-fill".
	EpicMode string `yaml:"epic_mode,omitempty"`
	// Color forces colored output on or off; unset means auto-detect.
	Color *bool `yaml:"color,omitempty"`
	// LogUseCases enables structured use-case logging to stderr.
	LogUseCases bool `yaml:"log_use_cases,omitempty"`
}

// Load reads config.yaml from the app directory. A missing file yields the
// zero config without error.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	return LoadFrom(filepath.Join(home, AppDir, "config.yaml"))
}

// LoadFrom reads and parses the config file at the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// ResolveDBPath returns the database path in priority order: PLANSCOPE_DB
// env var, config db_path, then ~/.planscope/planscope.db.
func (c *Config) ResolveDBPath() (string, error) {
	if envPath := os.Getenv("PLANSCOPE_DB"); envPath != "" {
		return envPath, nil
	}
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, AppDir, "planscope.db"), nil
}
