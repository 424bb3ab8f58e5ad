// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

// NopLogger discards everything, it is the default for registries and runners.
var NopLogger StructuredLogger = NewStructuredLoggerAdapter(leveledLogger{}) //nolint:gochecknoglobals // shared default

// TB is the subset of testing.TB used by NewTestLogger.
type TB interface {
	Helper()
	Logf(format string, args ...any)
}

// NewTestLogger returns a logger writing records at level or more severe to t.
// Output is attached to the test that produced it and is printed only when
// the test fails or runs verbosely.
func NewTestLogger(t TB, level Level) *StructuredLoggerAdapter {
	return NewStructuredLoggerAdapter(leveledLogger{t: t, level: level})
}

// leveledLogger with a nil t drops every record.
type leveledLogger struct {
	t     TB
	level Level
}

func (l leveledLogger) Errorf(format string, args ...any) {
	l.logf(ErrorLevel, format, args)
}

func (l leveledLogger) Infof(format string, args ...any) {
	l.logf(InfoLevel, format, args)
}

func (l leveledLogger) Debugf(format string, args ...any) {
	l.logf(DebugLevel, format, args)
}

func (l leveledLogger) logf(level Level, format string, args []any) {
	if l.t == nil || level > l.level {
		return
	}
	l.t.Helper()
	l.t.Logf("["+level.String()+"] "+format, args...)
}
