// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slog

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/saucelabs/randomized"
	rlog "github.com/saucelabs/randomized/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerJSONKeys(t *testing.T) {
	var buf bytes.Buffer
	l := New(&rlog.Config{Output: &buf, Level: rlog.DebugLevel, Format: rlog.JSONFormat}).Named("registry")

	l.With("scope", "suite").Debug("fallback context created", "thread", "main")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "fallback context created", rec["message"])
	assert.Equal(t, "DEBUG", rec["severity"])
	assert.Equal(t, "registry", rec["name"])
	assert.Equal(t, "suite", rec["scope"])
	assert.Equal(t, "main", rec["thread"])
	assert.Contains(t, rec, "timestamp")
}

func TestLoggerWithThread(t *testing.T) {
	var buf bytes.Buffer
	l := New(&rlog.Config{Output: &buf, Level: rlog.InfoLevel, Format: rlog.JSONFormat},
		WithAttributes("suite", "log"), WithThread()).Named("sample")

	scope := randomized.NewScope(nil, "log")
	ctx := randomized.WithThread(context.Background(), randomized.NewThread(scope, "main"))
	ctx, done := randomized.Spawn(ctx, "worker")
	defer done()

	l.With("count", 3).InfoContext(ctx, "drawing values")
	l.Info("no context")

	dec := json.NewDecoder(&buf)
	var withThread, withoutThread map[string]any
	require.NoError(t, dec.Decode(&withThread))
	require.NoError(t, dec.Decode(&withoutThread))

	assert.Equal(t, "main/worker", withThread["thread"])
	assert.Equal(t, "log", withThread["suite"])
	assert.Equal(t, "sample", withThread["name"])
	assert.InDelta(t, 3, withThread["count"], 0)
	assert.NotContains(t, withoutThread, "thread")
}
