// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// DeriveSeed mixes a parent seed with a thread identity.
// It is a SplitMix64 finalizer, small input changes flip about half of the output bits.
func DeriveSeed(parent int64, identity uint64) int64 {
	x := uint64(parent) ^ (identity + 0x9e3779b97f4a7c15) //nolint:gosec // bit reinterpretation
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x) //nolint:gosec // bit reinterpretation
}

var freshSeeds atomic.Uint64

// NewSeed returns a non-reproducible seed derived from the wall clock.
// Consecutive calls return distinct seeds even within one clock tick.
func NewSeed() int64 {
	return DeriveSeed(time.Now().UnixNano(), freshSeeds.Add(1))
}

// FormatSeed renders a seed as upper-case hex, the format accepted by ParseSeed.
func FormatSeed(seed int64) string {
	return strings.ToUpper(strconv.FormatUint(uint64(seed), 16)) //nolint:gosec // bit reinterpretation
}

// ParseSeed parses a hex seed with an optional 0x prefix.
func ParseSeed(val string) (int64, error) {
	s := strings.TrimSpace(val)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidSeed)
	}
	u, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidSeed, val, err)
	}
	return int64(u), nil //nolint:gosec // bit reinterpretation
}
