// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slog

import (
	"context"
	"log/slog"

	"github.com/saucelabs/randomized"
)

// WithAttributes sets attributes added to every record.
func WithAttributes(args ...any) Option {
	return func(l *Logger) {
		l.log = l.log.With(args...)
	}
}

// WithThread adds the path of the randomized thread found in the context of
// a record as the "thread" attribute.
// Records logged without a thread in their context are left unchanged.
func WithThread() Option {
	return func(l *Logger) {
		l.log = slog.New(threadHandler{l.log.Handler()})
	}
}

type threadHandler struct {
	slog.Handler
}

func (h threadHandler) Handle(ctx context.Context, r slog.Record) error {
	if t, ok := randomized.ThreadFrom(ctx); ok {
		r.AddAttrs(slog.String("thread", t.Name()))
	}
	return h.Handler.Handle(ctx, r)
}

func (h threadHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return threadHandler{h.Handler.WithAttrs(attrs)}
}

func (h threadHandler) WithGroup(name string) slog.Handler {
	return threadHandler{h.Handler.WithGroup(name)}
}
