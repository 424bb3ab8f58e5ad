// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistinctDrawsEveryValueOnce(t *testing.T) {
	d, err := NewDistinct(NewRandomness(nil, 7), 10, 19, 0)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for range 10 {
		v, err := d.Next()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 10)
		assert.LessOrEqual(t, v, 19)
		assert.False(t, seen[v], "repeated %d", v)
		seen[v] = true
	}
	assert.Equal(t, 10, d.Len())

	_, err = d.Next()
	require.ErrorIs(t, err, ErrRangeSaturated)
}

func TestDistinctSingleValue(t *testing.T) {
	d, err := NewDistinct(NewRandomness(nil, 1), 1, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, d.MustNext())
	assert.Panics(t, func() { d.MustNext() })
}

func TestDistinctMaxRetry(t *testing.T) {
	// One value left out of two, so some seed collides twice in a row.
	var failed bool
	for seed := range int64(256) {
		d, err := NewDistinct(NewRandomness(nil, seed), 0, 1, 1)
		require.NoError(t, err)
		d.MustNext()
		if _, err := d.Next(); err != nil {
			require.ErrorIs(t, err, ErrMaxRetry)
			failed = true
			break
		}
	}
	assert.True(t, failed)
}

func TestDistinctReproducible(t *testing.T) {
	draw := func() []int {
		d, err := NewDistinct(NewRandomness(nil, 42), 0, 1000, 0)
		require.NoError(t, err)
		res := make([]int, 20)
		for i := range res {
			res[i] = d.MustNext()
		}
		return res
	}
	assert.Equal(t, draw(), draw())
}

func TestDistinctFullIntRange(t *testing.T) {
	d, err := NewDistinct(NewRandomness(nil, 1), 0, math.MaxInt, 0)
	require.NoError(t, err)

	for range 10 {
		v, err := d.Next()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0)
	}
	assert.Equal(t, 10, d.Len())
}

func TestNewDistinctInvalidRange(t *testing.T) {
	_, err := NewDistinct(NewRandomness(nil, 1), 5, 4, 0)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewDistinct(NewRandomness(nil, 1), -1, 4, 0)
	require.ErrorIs(t, err, ErrInvalidRange)
}
