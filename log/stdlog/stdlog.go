// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stdlog

import (
	"io"
	"log"
	"os"

	rlog "github.com/saucelabs/randomized/log"
)

func Default() *Logger {
	return New(rlog.DefaultConfig())
}

// Option is a function that modifies the Logger.
type Option func(*Logger)

func New(cfg *rlog.Config, opts ...Option) *Logger {
	var w io.Writer = os.Stderr
	if cfg.Output != nil {
		w = cfg.Output
	}

	l := &Logger{
		log:   log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.LUTC),
		level: cfg.Level,
	}
	l.setPrefixes()

	for _, opt := range opts {
		opt(l)
	}

	return l
}

var _ rlog.Logger = &Logger{}

// Logger implements rlog.Logger using the standard log package.
type Logger struct {
	log   *log.Logger
	name  string
	level rlog.Level

	errorPfx string
	infoPfx  string
	debugPfx string

	decorate func(string) string
}

// Named returns a copy of the logger prefixing messages with [name].
func (sl Logger) Named(name string, opts ...Option) *Logger { //nolint:gocritic // we pass by value to get a copy
	sl.name = name
	sl.setPrefixes()

	for _, opt := range opts {
		opt(&sl)
	}

	return &sl
}

func (sl *Logger) setPrefixes() {
	name := sl.name
	if name != "" {
		name = "[" + name + "] "
	}
	sl.errorPfx = name + "[ERROR] "
	sl.infoPfx = name + "[INFO] "
	sl.debugPfx = name + "[DEBUG] "
}

func (sl *Logger) Errorf(format string, args ...any) {
	sl.printf(rlog.ErrorLevel, sl.errorPfx, format, args)
}

func (sl *Logger) Infof(format string, args ...any) {
	sl.printf(rlog.InfoLevel, sl.infoPfx, format, args)
}

func (sl *Logger) Debugf(format string, args ...any) {
	sl.printf(rlog.DebugLevel, sl.debugPfx, format, args)
}

func (sl *Logger) printf(level rlog.Level, pfx, format string, args []any) {
	if sl.level < level {
		return
	}
	if sl.decorate != nil {
		format = sl.decorate(format)
	}
	sl.log.Printf(pfx+format, args...)
}

// Unwrap returns the underlying log.Logger pointer.
func (sl *Logger) Unwrap() *log.Logger {
	return sl.log
}
