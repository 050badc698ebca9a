// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bufrjson/lib/compress"
)

// EnvVar names the environment variable [Load] reads the config path
// from.
const EnvVar = "BUFRJSON_CONFIG"

// Config is the configuration of the bufrjson command.
type Config struct {
	// Output configures how flattened documents are written.
	Output OutputConfig `yaml:"output"`

	// Tables configures descriptor table lookup for messages that
	// refer to descriptors by bare code.
	Tables TablesConfig `yaml:"tables"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`
}

// OutputConfig configures document output.
type OutputConfig struct {
	// Format is the document serialization: "json" or "cbor".
	// Default: json
	Format string `yaml:"format"`

	// Compression wraps output in a compressed frame: "none", "lz4"
	// or "zstd".
	// Default: none
	Compression string `yaml:"compression"`

	// Indent pretty-prints JSON output.
	// Default: false
	Indent bool `yaml:"indent"`
}

// TablesConfig configures descriptor tables.
type TablesConfig struct {
	// Path is a YAML or JSONC descriptor table file. Empty means no
	// table; inputs must then carry full descriptor records.
	Path string `yaml:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration. These values apply to
// every field the config file leaves unset.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:      "json",
			Compression: "none",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by BUFRJSON_CONFIG.
// It fails if the variable is unset; callers that can run without a
// config file check the variable first and fall back to [Default].
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your bufrjson.yaml config file, or use --config flag", EnvVar)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, on top of
// [Default]. ${VAR} and ${VAR:-default} patterns in path fields are
// expanded from the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) expandVariables() {
	c.Tables.Path = expandVars(c.Tables.Path)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns from the
// environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	switch c.Output.Format {
	case "json", "cbor":
	default:
		errs = append(errs, fmt.Errorf("output.format must be json or cbor, got %q", c.Output.Format))
	}

	if _, err := compress.ParseTag(c.Output.Compression); err != nil {
		errs = append(errs, fmt.Errorf("output.compression: %w", err))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
