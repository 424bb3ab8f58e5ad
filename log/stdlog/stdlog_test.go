// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stdlog

import (
	"bytes"
	"strings"
	"testing"

	rlog "github.com/saucelabs/randomized/log"
	"github.com/stretchr/testify/assert"
)

func TestLoggerNamedAllowsToPassCustomLevel(t *testing.T) {
	l := New(rlog.DefaultConfig())
	f := l.Named("foo", WithLevel(0))
	assert.Equal(t, rlog.Level(0), f.level)
	assert.Equal(t, rlog.InfoLevel, l.level)
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&rlog.Config{Output: &buf, Level: rlog.InfoLevel}).Named("runner")

	l.Debugf("hidden %d", 1)
	l.Infof("seed %s", "2A")
	l.Errorf("failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[runner] [INFO] seed 2A")
	assert.Contains(t, out, "[runner] [ERROR] failed")
}

func TestLoggerDecorate(t *testing.T) {
	var buf bytes.Buffer
	l := New(&rlog.Config{Output: &buf, Level: rlog.DebugLevel}, WithDecorate(strings.ToUpper))

	l.Debugf("thread main")
	assert.Contains(t, buf.String(), "[DEBUG] THREAD MAIN")
}
