// Package config loads layered YAML configuration for the agent CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// FilesystemAccess restricts what the filesystem tools may touch, expressed
// as doublestar glob patterns over tool-supplied relative paths.
type FilesystemAccess struct {
	// Hidden paths are invisible to all tools (read and write).
	Hidden []string `yaml:"hidden"`
	// ReadOnly paths may be read but not written.
	ReadOnly []string `yaml:"read_only"`
}

type Config struct {
	Model        string `yaml:"model"`
	MaxTokens    int    `yaml:"max_tokens"`
	WindowBudget int    `yaml:"window_budget"`
	Stream       *bool  `yaml:"stream"`

	// AllowedCommands are regex patterns; run_command refuses anything
	// that matches none of them. Empty means no commands are allowed.
	AllowedCommands []string `yaml:"allowed_commands"`

	FilesystemAccess FilesystemAccess `yaml:"filesystem_access"`
}

const (
	defaultMaxTokens    = 1024
	defaultWindowBudget = 50_000
)

// Load reads user-level config ($HOME/.agent/config.yaml) then project-level
// config (./.agent/config.yaml), with the project file overriding fields it
// sets. Missing files are fine; defaults apply afterwards.
func Load() (*Config, error) {
	cfg := &Config{}

	// The agent's own state directory is always hidden from tools.
	cfg.FilesystemAccess.Hidden = append(cfg.FilesystemAccess.Hidden, ".agent", ".agent/**")

	if home, err := os.UserHomeDir(); err == nil {
		if err := loadFromFile(filepath.Join(home, ".agent", "config.yaml"), cfg); err != nil {
			return nil, fmt.Errorf("user config: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getwd: %w", err)
	}
	if err := loadFromFile(filepath.Join(wd, ".agent", "config.yaml"), cfg); err != nil {
		return nil, fmt.Errorf("project config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile reads a single explicit config file (the --config flag path).
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.FilesystemAccess.Hidden = append(cfg.FilesystemAccess.Hidden, ".agent", ".agent/**")
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	// Unmarshal overwrites only fields present in the YAML, which gives a
	// simple project-over-user merge.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.WindowBudget <= 0 {
		c.WindowBudget = defaultWindowBudget
	}
}

// Streaming reports whether the streamed transport should be used.
// Defaults to true when the config does not say.
func (c *Config) Streaming() bool {
	if c.Stream == nil {
		return true
	}
	return *c.Stream
}

// Hidden reports whether relPath matches any hidden pattern.
func (f *FilesystemAccess) IsHidden(relPath string) (bool, error) {
	return matchAny(relPath, f.Hidden)
}

// IsReadOnly reports whether relPath matches any read-only pattern.
func (f *FilesystemAccess) IsReadOnly(relPath string) (bool, error) {
	return matchAny(relPath, f.ReadOnly)
}

func matchAny(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.PathMatch(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
