// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/saucelabs/randomized/log"
)

// Registry maps scopes to the contexts governing them.
//
// The registry lock only covers map lookups and inserts, per-context work
// happens under the context's own lock after the registry lock is released.
type Registry struct {
	mu       sync.RWMutex
	contexts map[*Scope]*Context

	fallback bool
	log      log.StructuredLogger
	metrics  *registryMetrics

	promRegistry  prometheus.Registerer
	promNamespace string
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used by the registry and its contexts.
func WithLogger(l log.StructuredLogger) RegistryOption {
	return func(r *Registry) {
		r.log = l
	}
}

// WithMetrics registers the registry metrics with pr under namespace.
func WithMetrics(pr prometheus.Registerer, namespace string) RegistryOption {
	return func(r *Registry) {
		r.promRegistry = pr
		r.promNamespace = namespace
	}
}

// WithoutFallback makes Resolve fail with ErrNoContext instead of creating fallback contexts.
func WithoutFallback() RegistryOption {
	return func(r *Registry) {
		r.fallback = false
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		contexts: make(map[*Scope]*Context),
		fallback: true,
		log:      log.NopLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.metrics = newRegistryMetrics(r.promRegistry, r.promNamespace)

	return r
}

var (
	defaultRegistry     *Registry //nolint:gochecknoglobals // process-wide registry
	defaultRegistryOnce sync.Once //nolint:gochecknoglobals // process-wide registry
)

// Default returns the process-wide registry, it is created on first use.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Resolve returns the context governing t.
// It walks from the thread's scope towards the root and returns the first
// registered context. If there is none, a fallback context is registered at
// the root-most scope of the chain, so that every thread under that root
// converges on the same instance.
func (r *Registry) Resolve(t *Thread) (*Context, error) {
	if t == nil {
		return nil, threadError(nil, ErrNoContext)
	}

	r.mu.RLock()
	c, _ := r.lookupLocked(t.Scope())
	r.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	r.mu.Lock()
	c, top := r.lookupLocked(t.Scope())
	created := false
	if c == nil && r.fallback {
		c = newContext(r, top, "", nil)
		r.contexts[top] = c
		created = true
	}
	r.mu.Unlock()

	if c == nil {
		return nil, threadError(t, fmt.Errorf("%w: no context registered for scope %s", ErrNoContext, t.Scope()))
	}
	if created {
		r.metrics.create("fallback")
		r.log.Debug("fallback context created", "scope", top.String(), "thread", t.Name())
	}

	return c, nil
}

// lookupLocked returns the context registered for scope or its closest ancestor,
// and the root-most scope visited. It must be called with r.mu held.
func (r *Registry) lookupLocked(scope *Scope) (*Context, *Scope) {
	s := scope
	for {
		if c, ok := r.contexts[s]; ok {
			return c, s
		}
		if s.parent == nil {
			return nil, s
		}
		s = s.parent
	}
}

// CreateForRun registers a context for a run hosted in scope.
// It fails with ErrContextExists if scope already has a context.
func (r *Registry) CreateForRun(scope *Scope, suite string, runner Runner) (*Context, error) {
	if scope == nil {
		return nil, fmt.Errorf("%w: nil scope", ErrNoContext)
	}

	r.mu.Lock()
	if _, ok := r.contexts[scope]; ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrContextExists, scope)
	}
	c := newContext(r, scope, suite, runner)
	r.contexts[scope] = c
	r.mu.Unlock()

	r.metrics.create("run")
	if seed, ok := c.RunnerSeed(); ok {
		r.log.Debug("run context created", "scope", scope.String(), "suite", suite, "seed", FormatSeed(seed))
	} else {
		r.log.Debug("run context created", "scope", scope.String(), "suite", suite)
	}

	return c, nil
}

// Lookup returns the context registered for exactly scope, without walking ancestors.
func (r *Registry) Lookup(scope *Scope) (*Context, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contexts[scope]
	return c, ok
}

// Len returns the number of registered contexts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contexts)
}

func (r *Registry) remove(c *Context) {
	r.mu.Lock()
	removed := r.contexts[c.scope] == c
	if removed {
		delete(r.contexts, c.scope)
	}
	r.mu.Unlock()

	if removed {
		r.metrics.dispose()
	}
}
