// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"fmt"
	"math/rand/v2"
)

// Randomness is a seeded pseudo-random stream owned by exactly one thread.
// It is not safe for concurrent use, only the owner may call its methods.
// Other threads get their own stream with Clone.
type Randomness struct {
	seed      int64
	owner     ThreadID
	ownerName string
	rnd       *rand.Rand
}

// NewRandomness returns a stream seeded with seed and owned by owner.
func NewRandomness(owner *Thread, seed int64) *Randomness {
	r := &Randomness{
		seed: seed,
		rnd:  rand.New(rand.NewPCG(uint64(seed), uint64(DeriveSeed(seed, 0)))), //nolint:gosec // test randomness
	}
	if owner != nil {
		r.owner = owner.ID()
		r.ownerName = owner.Name()
	}
	return r
}

// Clone returns a new stream for owner seeded with DeriveSeed(r.Seed(), owner.Identity()).
// It does not consume values from r, so it may be called from any thread.
func (r *Randomness) Clone(owner *Thread) *Randomness {
	return NewRandomness(owner, DeriveSeed(r.seed, owner.Identity()))
}

func (r *Randomness) Seed() int64 {
	return r.seed
}

func (r *Randomness) Owner() ThreadID {
	return r.owner
}

func (r *Randomness) OwnerName() string {
	return r.ownerName
}

// Rand exposes the underlying generator.
func (r *Randomness) Rand() *rand.Rand {
	return r.rnd
}

func (r *Randomness) Int() int {
	return r.rnd.Int()
}

// IntN returns a value in [0, n), it panics if n <= 0.
func (r *Randomness) IntN(n int) int {
	return r.rnd.IntN(n)
}

func (r *Randomness) Int63() int64 {
	return r.rnd.Int64()
}

// Int64N returns a value in [0, n), it panics if n <= 0.
func (r *Randomness) Int64N(n int64) int64 {
	return r.rnd.Int64N(n)
}

func (r *Randomness) Uint64() uint64 {
	return r.rnd.Uint64()
}

func (r *Randomness) Float64() float64 {
	return r.rnd.Float64()
}

func (r *Randomness) NormFloat64() float64 {
	return r.rnd.NormFloat64()
}

func (r *Randomness) Bool() bool {
	return r.rnd.IntN(2) == 1
}

// Between returns a value in [lo, hi], it panics if hi < lo.
func (r *Randomness) Between(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("randomized: invalid range [%d, %d]", lo, hi))
	}
	span := uint64(hi) - uint64(lo) + 1 //nolint:gosec // two's complement span
	if span == 0 {
		// [math.MinInt, math.MaxInt], every value is valid.
		return int(r.rnd.Uint64()) //nolint:gosec // bit reinterpretation
	}
	return int(uint64(lo) + r.rnd.Uint64N(span)) //nolint:gosec // wraps back into [lo, hi]
}

func (r *Randomness) Perm(n int) []int {
	return r.rnd.Perm(n)
}

func (r *Randomness) Shuffle(n int, swap func(i, j int)) {
	r.rnd.Shuffle(n, swap)
}

// Pick returns a random element of s, it panics if s is empty.
func Pick[T any](r *Randomness, s []T) T {
	return s[r.IntN(len(s))]
}

func (r *Randomness) String() string {
	return fmt.Sprintf("Randomness[seed=%s, owner=%s]", FormatSeed(r.seed), r.ownerName)
}
