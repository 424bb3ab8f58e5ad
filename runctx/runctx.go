// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package runctx runs groups of functions concurrently, each on its own
// randomized thread spawned from the calling context.
package runctx

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/saucelabs/randomized"
	"golang.org/x/sync/errgroup"
)

// DefaultNotifySignals specifies signals that would cause the context to be canceled.
var DefaultNotifySignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}

type member struct {
	name string
	fn   func(ctx context.Context) error
}

// Group is a collection of functions that would be run concurrently.
// Threads for the functions are spawned in the order they were added, before
// any of them starts, so their randomness does not depend on scheduling.
// The context passed to each function is canceled when any function returns
// an error or any of the signals in NotifySignals is received.
type Group struct {
	NotifySignals []os.Signal
	members       []member
}

func NewGroup(fn ...func(ctx context.Context) error) *Group {
	g := &Group{}
	for _, f := range fn {
		g.Add(f)
	}
	return g
}

// Add adds fn to run on a thread named after its position in the group.
func (g *Group) Add(fn func(ctx context.Context) error) {
	g.AddNamed("", fn)
}

// AddNamed adds fn to run on a thread with the given name.
func (g *Group) AddNamed(name string, fn func(ctx context.Context) error) {
	g.members = append(g.members, member{name: name, fn: fn})
}

func (g *Group) Run() error {
	return g.RunContext(context.Background())
}

func (g *Group) RunContext(ctx context.Context) error {
	sigs := g.NotifySignals
	if len(sigs) == 0 {
		sigs = DefaultNotifySignals
	}
	ctx, unregisterSignals := signal.NotifyContext(ctx, sigs...)
	defer unregisterSignals()

	var eg *errgroup.Group
	eg, ctx = errgroup.WithContext(ctx)

	ctxs := make([]context.Context, len(g.members))
	dones := make([]func(), len(g.members))
	for i, m := range g.members {
		ctxs[i], dones[i] = randomized.Spawn(ctx, m.name)
	}

	for i, m := range g.members {
		eg.Go(func() error {
			defer dones[i]()
			return m.fn(ctxs[i])
		})
	}

	return eg.Wait()
}
