// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// ThreadID is a process-unique thread key, it is never used for seed derivation.
type ThreadID uint64

var threadIDs atomic.Uint64

// Thread is an explicit participant identity.
// Goroutines have no identity of their own, so every goroutine that wants
// scoped randomness carries a *Thread, usually in a context.Context.
//
// A thread's path is its parent's path joined with its name. The path is a
// function of names and creation order only, its hash is the identity mixed
// into derived seeds.
type Thread struct {
	id       ThreadID
	parentID ThreadID
	path     string
	identity uint64
	scope    *Scope
	exited   atomic.Bool

	children siblings
}

// siblings names the children of one parent: an empty name becomes the
// creation ordinal and a repeated name gets a #n suffix.
type siblings struct {
	mu    sync.Mutex
	count int
	names map[string]int
}

func (s *siblings) name(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.count
	s.count++

	if name == "" {
		return strconv.Itoa(n)
	}
	if s.names == nil {
		s.names = make(map[string]int)
	}
	c := s.names[name]
	s.names[name] = c + 1
	if c > 0 {
		return name + "#" + strconv.Itoa(c)
	}
	return name
}

// NewThread returns a root thread in the given scope, nil scope means ProcessScope.
// Root threads are named like siblings of the root of the scope tree, so two
// threads attached under one root never share a path, and so never share a seed.
func NewThread(scope *Scope, name string) *Thread {
	if scope == nil {
		scope = processScope
	}
	if name == "" {
		name = "main"
	}
	return newThread(scope, 0, scope.Root().threads.name(name))
}

func newThread(scope *Scope, parentID ThreadID, path string) *Thread {
	return &Thread{
		id:       ThreadID(threadIDs.Add(1)),
		parentID: parentID,
		path:     path,
		identity: PathIdentity(path),
		scope:    scope,
	}
}

// Spawn returns a child thread in the same scope.
// It must be called by the parent before the child starts running so that
// creation order, and so identity, is stable between runs.
func (t *Thread) Spawn(name string) *Thread {
	return t.SpawnIn(t.scope, name)
}

// SpawnIn is like Spawn but places the child in the given scope.
func (t *Thread) SpawnIn(scope *Scope, name string) *Thread {
	if scope == nil {
		scope = processScope
	}
	return newThread(scope, t.id, t.path+"/"+t.children.name(name))
}

// PathIdentity returns the identity of a thread with the given path.
func PathIdentity(path string) uint64 {
	return xxhash.Sum64String(path)
}

func (t *Thread) ID() ThreadID {
	return t.id
}

// Name returns the thread path.
func (t *Thread) Name() string {
	return t.path
}

// Identity returns the stable hash mixed into seeds derived for this thread.
func (t *Thread) Identity() uint64 {
	return t.identity
}

func (t *Thread) Scope() *Scope {
	return t.scope
}

// Exit marks the thread as terminated, its table entries become reapable.
func (t *Thread) Exit() {
	t.exited.Store(true)
}

func (t *Thread) Exited() bool {
	return t.exited.Load()
}

func (t *Thread) String() string {
	return t.path
}
