// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"context"
	"fmt"
	"strings"
)

// NewStructuredLoggerAdapter exposes a printf style Logger as a StructuredLogger.
// Key value pairs are appended to the message as key=value.
func NewStructuredLoggerAdapter(log Logger) *StructuredLoggerAdapter {
	return &StructuredLoggerAdapter{log: log}
}

type StructuredLoggerAdapter struct {
	log  Logger
	args []any
}

func (l *StructuredLoggerAdapter) Error(msg string, args ...any) {
	l.log.Errorf("%s", l.format(msg, args))
}

func (l *StructuredLoggerAdapter) Warn(msg string, args ...any) {
	l.log.Infof("[WARN] %s", l.format(msg, args))
}

func (l *StructuredLoggerAdapter) Info(msg string, args ...any) {
	l.log.Infof("%s", l.format(msg, args))
}

func (l *StructuredLoggerAdapter) Debug(msg string, args ...any) {
	l.log.Debugf("%s", l.format(msg, args))
}

func (l *StructuredLoggerAdapter) ErrorContext(_ context.Context, msg string, args ...any) {
	l.Error(msg, args...)
}

func (l *StructuredLoggerAdapter) WarnContext(_ context.Context, msg string, args ...any) {
	l.Warn(msg, args...)
}

func (l *StructuredLoggerAdapter) InfoContext(_ context.Context, msg string, args ...any) {
	l.Info(msg, args...)
}

func (l *StructuredLoggerAdapter) DebugContext(_ context.Context, msg string, args ...any) {
	l.Debug(msg, args...)
}

func (l *StructuredLoggerAdapter) With(args ...any) StructuredLogger {
	return &StructuredLoggerAdapter{
		log:  l.log,
		args: append(l.args[:len(l.args):len(l.args)], args...),
	}
}

func (l *StructuredLoggerAdapter) format(msg string, args []any) string {
	if len(l.args) == 0 {
		return formatMessage(msg, args)
	}
	return formatMessage(msg, append(l.args[:len(l.args):len(l.args)], args...))
}

// formatMessage renders "msg k0=v0 k1=v1 ...", a trailing key without value is printed alone.
func formatMessage(msg string, args []any) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		b.WriteByte(' ')
		if i+1 < len(args) {
			fmt.Fprintf(&b, "%v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, "%v", args[i])
		}
	}
	return b.String()
}
