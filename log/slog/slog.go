// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slog

import (
	"context"
	"io"
	"log/slog"
	"os"

	rlog "github.com/saucelabs/randomized/log"
)

func Default() *Logger {
	return New(rlog.DefaultConfig())
}

func Debug() *Logger {
	return New(&rlog.Config{Level: rlog.DebugLevel})
}

var _ rlog.StructuredLogger = &Logger{}

type Option func(*Logger)

// Logger implements rlog.StructuredLogger on top of log/slog.
type Logger struct {
	log *slog.Logger
}

func New(cfg *rlog.Config, opts ...Option) *Logger {
	var w io.Writer = os.Stderr
	if cfg.Output != nil {
		w = cfg.Output
	}

	hops := &slog.HandlerOptions{Level: toSlogLevel(cfg.Level), ReplaceAttr: replaceAttr}
	var handler slog.Handler
	if cfg.Format == rlog.JSONFormat {
		handler = slog.NewJSONHandler(w, hops)
	} else {
		handler = slog.NewTextHandler(w, hops)
	}

	l := &Logger{
		log: slog.New(handler),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Logger) Handler() slog.Handler {
	return l.log.Handler()
}

func (l *Logger) Error(msg string, args ...any) {
	l.log.Error(msg, args...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.log.ErrorContext(ctx, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log.Warn(msg, args...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log.WarnContext(ctx, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log.Info(msg, args...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.log.InfoContext(ctx, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log.DebugContext(ctx, msg, args...)
}

func (l *Logger) With(args ...any) rlog.StructuredLogger {
	c := *l
	c.log = c.log.With(args...)
	return &c
}

// Named returns a copy of the logger that adds name to every record.
func (l *Logger) Named(name string) *Logger {
	c := *l
	c.log = c.log.With("name", name)
	return &c
}

func toSlogLevel(level rlog.Level) slog.Level {
	switch level {
	case rlog.ErrorLevel:
		return slog.LevelError
	case rlog.WarnLevel:
		return slog.LevelWarn
	case rlog.InfoLevel:
		return slog.LevelInfo
	case rlog.DebugLevel:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		a.Key = "timestamp"
	case slog.LevelKey:
		a.Key = "severity"
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}
