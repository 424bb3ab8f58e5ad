// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/saucelabs/randomized/log"
)

// Runner is the test runner owning the master randomness of a run.
// The thread that owns the runner's randomness receives the master seed
// itself, every other thread in the run gets a clone derived from it.
type Runner interface {
	Randomness() *Randomness
}

// Frame sources reported in metrics.
const (
	sourceRunner  = "runner"
	sourceParent  = "parent"
	sourceContext = "context"
	sourceFresh   = "fresh"
)

// Context governs the randomness lineage of one run.
// It is bound to a scope, and owns a table of per-thread frame stacks.
// A Context is safe for concurrent use.
type Context struct {
	scope    *Scope
	suite    string
	runner   Runner
	registry *Registry
	log      log.StructuredLogger
	metrics  *registryMetrics

	disposed atomic.Bool

	mu        sync.Mutex
	table     *threadTable
	seedFrame *Randomness
}

func newContext(r *Registry, scope *Scope, suite string, runner Runner) *Context {
	return &Context{
		scope:    scope,
		suite:    suite,
		runner:   runner,
		registry: r,
		log:      r.log.With("scope", scope.String()),
		metrics:  r.metrics,
		table:    newThreadTable(),
	}
}

func (c *Context) Scope() *Scope {
	return c.scope
}

// Suite returns the suite name, it is empty for fallback contexts.
func (c *Context) Suite() string {
	return c.suite
}

// Runner returns the runner that created the context, nil for fallback contexts.
func (c *Context) Runner() Runner {
	return c.runner
}

// RunnerSeed returns the master seed of the run if the context has a runner.
func (c *Context) RunnerSeed() (int64, bool) {
	if c.runner == nil {
		return 0, false
	}
	r := c.runner.Randomness()
	if r == nil {
		return 0, false
	}
	return r.Seed(), true
}

func (c *Context) Disposed() bool {
	return c.disposed.Load()
}

// RandomnessFor returns the top frame of t, deriving the first frame on first use.
func (c *Context) RandomnessFor(t *Thread) (*Randomness, error) {
	if t == nil {
		return nil, threadError(nil, ErrNoContext)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guardDisposed(t); err != nil {
		return nil, err
	}

	e := c.entry(t)
	if r := e.top(); r != nil {
		return r, nil
	}

	r, source := c.derive(t)
	e.frames = append(e.frames, r)
	c.metrics.derive(source)

	return r, nil
}

// derive creates the first frame for t, it must be called with c.mu held.
func (c *Context) derive(t *Thread) (*Randomness, string) {
	if c.runner != nil {
		if rr := c.runner.Randomness(); rr != nil {
			if rr.Owner() == t.ID() {
				return NewRandomness(t, rr.Seed()), sourceRunner
			}
			return rr.Clone(t), sourceRunner
		}
	}

	if pe := c.table.get(t.parentID); pe != nil {
		if pr := pe.top(); pr != nil {
			return pr.Clone(t), sourceParent
		}
	}

	if c.seedFrame != nil {
		return c.seedFrame.Clone(t), sourceContext
	}

	r := NewRandomness(t, NewSeed())
	c.seedFrame = r
	c.log.Debug("minted fresh seed", "thread", t.Name(), "seed", FormatSeed(r.Seed()))
	return r, sourceFresh
}

// Push makes r the top frame of t until the matching Pop.
func (c *Context) Push(t *Thread, r *Randomness) error {
	if t == nil {
		return threadError(nil, ErrNoContext)
	}
	if r == nil || r.Owner() != t.ID() {
		return threadError(t, ErrNotOwner)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guardDisposed(t); err != nil {
		return err
	}

	e := c.entry(t)
	e.frames = append(e.frames, r)
	return nil
}

// Pop removes and returns the top frame of t.
func (c *Context) Pop(t *Thread) (*Randomness, error) {
	if t == nil {
		return nil, threadError(nil, ErrNoContext)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guardDisposed(t); err != nil {
		return nil, err
	}

	e := c.table.get(t.ID())
	if e == nil || len(e.frames) == 0 {
		return nil, threadError(t, ErrEmptyStack)
	}
	r := e.frames[len(e.frames)-1]
	e.frames[len(e.frames)-1] = nil
	e.frames = e.frames[:len(e.frames)-1]
	return r, nil
}

// entry returns the table entry of t, creating it if needed.
// It must be called with c.mu held.
func (c *Context) entry(t *Thread) *tableEntry {
	if e := c.table.get(t.ID()); e != nil {
		return e
	}
	e, reaped := c.table.add(t)
	c.metrics.reap(reaped)
	return e
}

// Reap removes entries of terminated threads and returns how many were removed.
func (c *Context) Reap() int {
	c.mu.Lock()
	n := c.table.reap()
	c.mu.Unlock()

	c.metrics.reap(n)
	return n
}

// Threads returns the number of thread entries, including not yet reaped ones.
func (c *Context) Threads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.len()
}

// LiveThreads returns sorted names of threads with entries that have not exited.
func (c *Context) LiveThreads() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.live()
}

// Dispose releases all frames and unregisters the context.
// It is idempotent, after it returns every call taking a thread fails with ErrDisposed.
func (c *Context) Dispose() {
	if !c.disposed.CompareAndSwap(false, true) {
		return
	}

	c.mu.Lock()
	c.table.clear()
	c.seedFrame = nil
	c.mu.Unlock()

	c.registry.remove(c)
	c.log.Debug("context disposed", "suite", c.suite)
}

func (c *Context) guardDisposed(t *Thread) error {
	if c.disposed.Load() {
		return threadError(t, fmt.Errorf("%w: scope %s", ErrDisposed, c.scope))
	}
	return nil
}

func (c *Context) String() string {
	if c.suite == "" {
		return fmt.Sprintf("Context[scope=%s, fallback]", c.scope)
	}
	return fmt.Sprintf("Context[scope=%s, suite=%s]", c.scope, c.suite)
}
