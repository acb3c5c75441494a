// Package config loads gecko's tool settings from a TOML or YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory
// when none is given.
const DefaultFile = "gecko.toml"

// Output formats for diagnostics.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds the tool configuration
type Config struct {
	LogLevel string `toml:"log_level" yaml:"log_level"`
	LogFile  string `toml:"log_file" yaml:"log_file"`
	Color    bool   `toml:"color" yaml:"color"`
	Jobs     int    `toml:"jobs" yaml:"jobs"`
	Format   string `toml:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Color:    true,
		Jobs:     runtime.GOMAXPROCS(0),
		Format:   FormatText,
	}
}

// Load reads path on top of the defaults. The format is chosen by extension.
// An empty path loads DefaultFile if it exists and the defaults otherwise.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}

	return cfg, nil
}

// ApplyEnv overrides settings from GECKO_* variables. NO_COLOR disables
// colour regardless of its value.
func (c *Config) ApplyEnv() {
	c.LogLevel = env.Str("GECKO_LOG_LEVEL", c.LogLevel)
	c.LogFile = env.Str("GECKO_LOG_FILE", c.LogFile)
	c.Format = env.Str("GECKO_FORMAT", c.Format)
	c.Jobs = env.Int("GECKO_JOBS", c.Jobs)
	if env.Has("NO_COLOR") {
		c.Color = false
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	switch c.Format {
	case FormatText, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}

	return errors.Join(errs...)
}
