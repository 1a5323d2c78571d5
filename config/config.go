// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package config loads the settings of the bonsai command from a YAML file and
// BONSAI_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of all environment overrides, e.g. BONSAI_PARSER_STRICT.
const EnvPrefix = "BONSAI"

// Config holds the complete configuration.
type Config struct {
	Parser  ParserConfig  `mapstructure:"parser" yaml:"parser"`
	Source  SourceConfig  `mapstructure:"source" yaml:"source"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
}

// ParserConfig holds the parser options.
type ParserConfig struct {
	// Strict reports unclosed elements and unsupported versions.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// SourceConfig configures how documents are loaded.
type SourceConfig struct {
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
	UserAgent  string `mapstructure:"user_agent" yaml:"user_agent"`
	MaxBytes   int64  `mapstructure:"max_bytes" yaml:"max_bytes"`
	BaseDir    string `mapstructure:"base_dir" yaml:"base_dir"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // trace, debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // console, json
}

// OutputConfig configures how documents are printed.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // markup, xml, yaml, json
	Indent int    `mapstructure:"indent" yaml:"indent"`
	// Highlight colors the output for a terminal using Style.
	Highlight bool   `mapstructure:"highlight" yaml:"highlight"`
	Style     string `mapstructure:"style" yaml:"style"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			Strict: false,
		},
		Source: SourceConfig{
			TimeoutSec: 30,
			UserAgent:  "bonsai/1.0",
			MaxBytes:   16 << 20,
			BaseDir:    "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			Format:    "markup",
			Indent:    4,
			Highlight: false,
			Style:     "dracula",
		},
	}
}

// DefaultPath returns ~/.config/bonsai/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return filepath.Join(home, ".config", "bonsai", "config.yaml")
}

// Load reads the configuration from path and applies environment overrides. With
// an empty path the file at DefaultPath is used if it exists, otherwise only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(expandPath(path))

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if _, err := os.Stat(DefaultPath()); err == nil {
		v.SetConfigFile(DefaultPath())

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Source.BaseDir = expandPath(cfg.Source.BaseDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveToPath writes the configuration as YAML and creates missing directories.
func (c *Config) SaveToPath(path string) error {
	path = expandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	var errs []error

	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid logging format: %s (must be console or json)", c.Logging.Format))
	}

	switch c.Output.Format {
	case "markup", "xml", "yaml", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid output format: %s (must be markup, xml, yaml or json)", c.Output.Format))
	}

	if c.Output.Indent < 0 {
		errs = append(errs, fmt.Errorf("invalid output indent: %d", c.Output.Indent))
	}

	if c.Source.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("invalid source timeout: %d", c.Source.TimeoutSec))
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("parser.strict", defaults.Parser.Strict)
	v.SetDefault("source.timeout_sec", defaults.Source.TimeoutSec)
	v.SetDefault("source.user_agent", defaults.Source.UserAgent)
	v.SetDefault("source.max_bytes", defaults.Source.MaxBytes)
	v.SetDefault("source.base_dir", defaults.Source.BaseDir)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.indent", defaults.Output.Indent)
	v.SetDefault("output.highlight", defaults.Output.Highlight)
	v.SetDefault("output.style", defaults.Output.Style)
}

// expandPath expands ~ to the user's home directory in a path string.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}

		return filepath.Join(homeDir, path[1:])
	}

	return path
}
