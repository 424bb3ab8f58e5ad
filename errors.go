// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"errors"
	"fmt"
)

var (
	// ErrDisposed is returned by any operation on a disposed context.
	ErrDisposed = errors.New("randomness context is disposed")

	// ErrEmptyStack is returned when popping a thread with no frames left.
	ErrEmptyStack = errors.New("no randomness frame to pop")

	// ErrNoContext is returned when no context can govern a thread.
	ErrNoContext = errors.New("no randomness context for thread")

	// ErrContextExists is returned when a run is registered twice for one scope.
	ErrContextExists = errors.New("randomness context already exists for scope")

	// ErrThreadLeak is returned by runners when spawned threads outlive the run.
	ErrThreadLeak = errors.New("threads leaked from run")

	// ErrNotOwner is returned when pushing a frame owned by another thread.
	ErrNotOwner = errors.New("randomness is owned by another thread")

	ErrInvalidSeed = errors.New("invalid seed")

	ErrInvalidRange = errors.New("invalid range")

	// ErrRangeSaturated is returned by Distinct when every value of its range was drawn.
	ErrRangeSaturated = errors.New("range saturated")

	// ErrMaxRetry is returned by Distinct when too many consecutive draws collided.
	ErrMaxRetry = errors.New("reached max retry")
)

// ThreadError reports a failure together with the thread that hit it.
type ThreadError struct {
	Thread string
	Err    error
}

func (e *ThreadError) Error() string {
	return fmt.Sprintf("thread %s: %s", e.Thread, e.Err)
}

func (e *ThreadError) Unwrap() error {
	return e.Err
}

func threadError(t *Thread, err error) error {
	name := "<nil>"
	if t != nil {
		name = t.Name()
	}
	return &ThreadError{Thread: name, Err: err}
}
