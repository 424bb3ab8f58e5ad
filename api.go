// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"context"
	"fmt"
)

type ctxKey int

const (
	threadKey ctxKey = iota
	registryKey
)

// WithThread returns a copy of ctx carrying t as the calling thread.
func WithThread(ctx context.Context, t *Thread) context.Context {
	return context.WithValue(ctx, threadKey, t)
}

// ThreadFrom returns the thread carried by ctx.
func ThreadFrom(ctx context.Context) (*Thread, bool) {
	t, ok := ctx.Value(threadKey).(*Thread)
	return t, ok && t != nil
}

// WithRegistry returns a copy of ctx that resolves contexts in r instead of Default().
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey, r)
}

// RegistryFrom returns the registry carried by ctx or Default().
func RegistryFrom(ctx context.Context) *Registry {
	if r, ok := ctx.Value(registryKey).(*Registry); ok && r != nil {
		return r
	}
	return Default()
}

// Attach returns a copy of ctx carrying a new root thread in scope.
// It is the entry point for ad-hoc goroutines that are not spawned from a run.
func Attach(ctx context.Context, scope *Scope, name string) context.Context {
	return WithThread(ctx, NewThread(scope, name))
}

// Spawn creates a child of the calling thread and returns a context carrying it,
// and a function that marks the child as exited.
// Call Spawn before starting the goroutine, so that creation order is the
// order of Spawn calls in the parent and does not depend on scheduling.
func Spawn(ctx context.Context, name string) (context.Context, func()) {
	var child *Thread
	if parent, ok := ThreadFrom(ctx); ok {
		child = parent.Spawn(name)
	} else {
		child = NewThread(ProcessScope(), name)
	}
	return WithThread(ctx, child), child.Exit
}

// Go runs fn in a new goroutine on a spawned child thread.
func Go(ctx context.Context, name string, fn func(ctx context.Context)) {
	cctx, done := Spawn(ctx, name)
	go func() {
		defer done()
		fn(cctx)
	}()
}

// Current returns the context governing the calling thread.
func Current(ctx context.Context) (*Context, error) {
	return RegistryFrom(ctx).Resolve(callingThread(ctx))
}

// From returns the randomness of the calling thread.
func From(ctx context.Context) (*Randomness, error) {
	t := callingThread(ctx)
	c, err := RegistryFrom(ctx).Resolve(t)
	if err != nil {
		return nil, err
	}
	return c.RandomnessFor(t)
}

// MustFrom is like From but panics on error.
func MustFrom(ctx context.Context) *Randomness {
	r, err := From(ctx)
	if err != nil {
		panic(fmt.Sprintf("randomized: %v", err))
	}
	return r
}

// Nested runs fn with a frame seeded with seed on top of the calling thread's stack.
// The frame is popped when fn returns.
func Nested(ctx context.Context, seed int64, fn func(r *Randomness) error) (err error) {
	t := callingThread(ctx)
	c, err := RegistryFrom(ctx).Resolve(t)
	if err != nil {
		return err
	}

	r := NewRandomness(t, seed)
	if err := c.Push(t, r); err != nil {
		return err
	}
	defer func() {
		if _, perr := c.Pop(t); perr != nil && err == nil {
			err = perr
		}
	}()

	return fn(r)
}

// callingThread returns the thread carried by ctx.
// Without one, a detached thread is created in ProcessScope: it gets usable
// randomness, but it is a new thread on every call, named detached#n, and is
// not reproducible.
func callingThread(ctx context.Context) *Thread {
	if t, ok := ThreadFrom(ctx); ok {
		return t
	}
	return NewThread(ProcessScope(), "detached")
}
