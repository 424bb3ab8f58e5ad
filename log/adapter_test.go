// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.lines = append(l.lines, "E "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.lines = append(l.lines, "I "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.lines = append(l.lines, "D "+fmt.Sprintf(format, args...))
}

func TestStructuredLoggerAdapter(t *testing.T) {
	rec := &recordingLogger{}
	l := NewStructuredLoggerAdapter(rec)

	base := l.With("scope", "suite")
	base.Debug("derived", "thread", "main/1", "source", "runner")
	base.Warn("leak", "threads", 2)
	l.Error("odd", "dangling")

	want := []string{
		"D derived scope=suite thread=main/1 source=runner",
		"I [WARN] leak scope=suite threads=2",
		"E odd dangling",
	}
	if diff := cmp.Diff(want, rec.lines); diff != "" {
		t.Errorf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{ErrorLevel, WarnLevel, InfoLevel, DebugLevel} {
		got, err := ParseLevel(l.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != l {
			t.Errorf("ParseLevel(%q) = %v, want %v", l.String(), got, l)
		}
	}
	if _, err := ParseLevel("trace"); err == nil {
		t.Error("expected error for unknown level")
	}
}
