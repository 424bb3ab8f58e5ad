// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package randomized provides reproducible randomness for concurrent tests.
//
// A run owns one randomness lineage, identified by a master seed. Every
// goroutine taking part in the run carries a *Thread in its context.Context,
// and the first time it asks for randomness it receives a stream derived from
// the master seed and its own identity. Replaying the run with the same seed
// and the same thread creation order reproduces every stream bit for bit.
//
// Threads outside any run still get working randomness, the registry
// lazily creates a fallback context for them.
//
//	ctx = randomized.Attach(ctx, randomized.NewScope(nil, "suite"), "main")
//	r := randomized.MustFrom(ctx)
//	randomized.Go(ctx, "worker", func(ctx context.Context) {
//		n := randomized.MustFrom(ctx).IntN(10)
//		...
//	})
package randomized
