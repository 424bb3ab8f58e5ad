// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFallbackConvergence(t *testing.T) {
	reg := NewRegistry()
	group := NewScope(nil, "adhoc")

	const n = 64
	var (
		wg       sync.WaitGroup
		contexts [n]*Context
		errs     [n]error
	)
	for i := 0; i < n; i++ {
		th := NewThread(group, "t")
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			contexts[i], errs[i] = reg.Resolve(th)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, contexts[0], contexts[i])
	}
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, "", contexts[0].Suite())
	assert.Nil(t, contexts[0].Runner())
}

func TestResolveFallbackBindsRootMostScope(t *testing.T) {
	reg := NewRegistry()
	root := NewScope(nil, "root")
	leaf := NewScope(NewScope(root, "mid"), "leaf")

	c, err := reg.Resolve(NewThread(leaf, "a"))
	require.NoError(t, err)
	assert.Same(t, root, c.Scope())

	_, ok := reg.Lookup(leaf)
	assert.False(t, ok)

	// A thread discovered later in a sibling branch converges on the same context.
	c2, err := reg.Resolve(NewThread(NewScope(root, "other"), "b"))
	require.NoError(t, err)
	assert.Same(t, c, c2)
}

func TestResolveFindsRegisteredAncestor(t *testing.T) {
	reg := NewRegistry()
	suite := NewScope(nil, "suite")
	main := NewThread(suite, "main")

	rc, err := reg.CreateForRun(suite, "SuiteTest", newTestRunner(main, 42))
	require.NoError(t, err)

	c, err := reg.Resolve(main.SpawnIn(NewScope(suite, "pool"), "worker"))
	require.NoError(t, err)
	assert.Same(t, rc, c)
}

func TestResolveUnrelatedRootsDoNotShare(t *testing.T) {
	reg := NewRegistry()

	a, err := reg.Resolve(NewThread(NewScope(nil, "a"), "t"))
	require.NoError(t, err)
	b, err := reg.Resolve(NewThread(NewScope(nil, "b"), "t"))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
}

func TestResolveWithoutFallback(t *testing.T) {
	reg := NewRegistry(WithoutFallback())
	th := NewThread(NewScope(nil, "adhoc"), "lonely")

	_, err := reg.Resolve(th)
	require.ErrorIs(t, err, ErrNoContext)

	var te *ThreadError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "lonely", te.Thread)
	assert.Equal(t, 0, reg.Len())

	_, err = reg.Resolve(nil)
	require.ErrorIs(t, err, ErrNoContext)
}

func TestCreateForRunTwice(t *testing.T) {
	reg := NewRegistry()
	suite := NewScope(nil, "suite")

	_, err := reg.CreateForRun(suite, "A", nil)
	require.NoError(t, err)

	_, err = reg.CreateForRun(suite, "B", nil)
	require.ErrorIs(t, err, ErrContextExists)

	_, err = reg.CreateForRun(nil, "C", nil)
	require.Error(t, err)
}

func TestDisposeUnregisters(t *testing.T) {
	reg := NewRegistry()
	suite := NewScope(nil, "suite")

	c, err := reg.CreateForRun(suite, "A", nil)
	require.NoError(t, err)
	c.Dispose()

	assert.Equal(t, 0, reg.Len())

	// The scope can host a new run after disposal.
	c2, err := reg.CreateForRun(suite, "A", nil)
	require.NoError(t, err)
	assert.NotSame(t, c, c2)

	// Disposing the old context again must not unregister the new one.
	c.Dispose()
	_, ok := reg.Lookup(suite)
	assert.True(t, ok)
}

func TestRegistryMetrics(t *testing.T) {
	pr := prometheus.NewRegistry()
	reg := NewRegistry(WithMetrics(pr, "test"))

	suite := NewScope(nil, "suite")
	main := NewThread(suite, "main")
	rc, err := reg.CreateForRun(suite, "A", newTestRunner(main, 42))
	require.NoError(t, err)

	_, err = rc.RandomnessFor(main)
	require.NoError(t, err)
	_, err = rc.RandomnessFor(main.Spawn("w"))
	require.NoError(t, err)

	fc, err := reg.Resolve(NewThread(NewScope(nil, "adhoc"), "x"))
	require.NoError(t, err)
	_, err = fc.RandomnessFor(NewThread(fc.Scope(), "y"))
	require.NoError(t, err)

	m := reg.metrics
	assert.InDelta(t, 1, testutil.ToFloat64(m.created.WithLabelValues("run")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.created.WithLabelValues("fallback")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.active), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.derived.WithLabelValues(sourceRunner)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.derived.WithLabelValues(sourceFresh)), 0)

	rc.Dispose()
	rc.Dispose()
	assert.InDelta(t, 1, testutil.ToFloat64(m.active), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.disposed), 0)
}

func TestDefaultRegistry(t *testing.T) {
	assert.Same(t, Default(), Default())
}
