// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stdlog

import rlog "github.com/saucelabs/randomized/log"

// WithLevel allows to set the logging level.
func WithLevel(level rlog.Level) Option {
	return func(l *Logger) {
		l.level = level
	}
}

// WithDecorate allows to set a function that modifies the log message before it is written.
func WithDecorate(f func(string) string) Option {
	return func(l *Logger) {
		l.decorate = f
	}
}
