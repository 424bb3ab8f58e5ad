// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"fmt"
	"io"
	"strings"
)

// Config is a configuration for the loggers.
type Config struct {
	// Output defaults to stderr, so that log lines do not mix with test output.
	Output io.Writer
	Level  Level
	Format Format
}

func DefaultConfig() *Config {
	return &Config{
		Level:  InfoLevel,
		Format: TextFormat,
	}
}

type Level int

// Levels start from 1 to avoid zero value in help printer.
const (
	ErrorLevel Level = 1 + iota
	WarnLevel
	InfoLevel
	DebugLevel
)

var levelNames = [4]string{"error", "warn", "info", "debug"} //nolint:gochecknoglobals // lookup table

func (l Level) String() string {
	if l < ErrorLevel || l > DebugLevel {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l-1]
}

// ParseLevel parses a level name, case insensitive.
func ParseLevel(val string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(n, val) {
			return Level(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", val)
}

type Format int

// Formats start from 1 to avoid zero value in help printer.
const (
	TextFormat Format = 1 + iota
	JSONFormat
)

func (f Format) String() string {
	switch f {
	case TextFormat:
		return "text"
	case JSONFormat:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}
