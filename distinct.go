// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"fmt"
)

// Distinct draws integers from [lo, hi] without repeating a value, for
// example free ports or unique IDs in a test. It draws from a single
// Randomness, so only its owning thread may use it.
type Distinct struct {
	r        *Randomness
	lo, hi   int
	maxRetry int
	seen     map[int]struct{}
}

// NewDistinct returns a Distinct drawing from r.
// If maxRetry is positive, Next gives up after that many consecutive collisions.
func NewDistinct(r *Randomness, lo, hi, maxRetry int) (*Distinct, error) {
	if lo < 0 || hi < lo {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, lo, hi)
	}
	return &Distinct{
		r:        r,
		lo:       lo,
		hi:       hi,
		maxRetry: maxRetry,
		seen:     make(map[int]struct{}),
	}, nil
}

// Next returns a value that was not returned before.
func (d *Distinct) Next() (int, error) {
	if len(d.seen) > d.hi-d.lo {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrRangeSaturated, d.lo, d.hi)
	}

	for retry := 0; ; retry++ {
		v := d.r.Between(d.lo, d.hi)
		if _, ok := d.seen[v]; !ok {
			d.seen[v] = struct{}{}
			return v, nil
		}
		if d.maxRetry > 0 && retry >= d.maxRetry {
			return 0, fmt.Errorf("%w: %d collisions", ErrMaxRetry, retry+1)
		}
	}
}

// MustNext is like Next but panics on error.
func (d *Distinct) MustNext() int {
	v, err := d.Next()
	if err != nil {
		panic(err)
	}
	return v
}

// Len returns the number of values drawn so far.
func (d *Distinct) Len() int {
	return len(d.seen)
}
