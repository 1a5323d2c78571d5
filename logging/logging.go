// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package logging creates the zerolog logger of the bonsai command.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/golangee/bonsai/config"
	"github.com/rs/zerolog"
)

// New creates a logger writing to w. The level is taken from cfg, verbose forces
// debug output. Console format is human readable, json writes one object per line.
func New(cfg config.LoggingConfig, w io.Writer, verbose bool) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	if verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(out).Level(level).With().
		Timestamp().
		Str("app", "bonsai").
		Logger(), nil
}

// ParseLevel accepts the zerolog level names. An empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return level, nil
}
