// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized_test

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/saucelabs/randomized"
	"github.com/saucelabs/randomized/runner"
)

// Two runs with the same master seed give every thread the same stream.
func Example() {
	run := func() map[string][]int {
		cfg := runner.DefaultConfig()
		cfg.Seed = "2A"
		r, err := runner.New(cfg, randomized.NewRegistry(), nil)
		if err != nil {
			panic(err)
		}

		var (
			mu  sync.Mutex
			wg  sync.WaitGroup
			res = make(map[string][]int)
		)
		err = r.Run(context.Background(), func(ctx context.Context) error {
			for range 3 {
				wg.Add(1)
				randomized.Go(ctx, "", func(ctx context.Context) {
					defer wg.Done()
					rnd := randomized.MustFrom(ctx)
					th, _ := randomized.ThreadFrom(ctx)

					mu.Lock()
					res[th.Name()] = rnd.Perm(5)
					mu.Unlock()
				})
			}
			wg.Wait()
			return nil
		})
		if err != nil {
			panic(err)
		}
		return res
	}

	first, second := run(), run()
	names := make([]string, 0, len(first))
	for name := range first {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		fmt.Println(name, slices.Equal(first[name], second[name]))
	}
	// Output:
	// main/0 true
	// main/1 true
	// main/2 true
}

func ExampleNested() {
	ctx := randomized.Attach(context.Background(), randomized.NewScope(nil, "example"), "main")
	ctx = randomized.WithRegistry(ctx, randomized.NewRegistry())
	outer := randomized.MustFrom(ctx)

	err := randomized.Nested(ctx, 42, func(r *randomized.Randomness) error {
		fmt.Println("nested seed:", randomized.FormatSeed(r.Seed()))
		fmt.Println("current is nested:", randomized.MustFrom(ctx) == r)
		return nil
	})
	if err != nil {
		panic(err)
	}

	fmt.Println("restored:", randomized.MustFrom(ctx) == outer)
	// Output:
	// nested seed: 2A
	// current is nested: true
	// restored: true
}

func ExampleDistinct() {
	d, err := randomized.NewDistinct(randomized.NewRandomness(nil, 1), 8000, 8002, 0)
	if err != nil {
		panic(err)
	}

	ports := []int{d.MustNext(), d.MustNext(), d.MustNext()}
	slices.Sort(ports)
	fmt.Println(ports)

	_, err = d.Next()
	fmt.Println(err)
	// Output:
	// [8000 8001 8002]
	// range saturated: [8000, 8002]
}
