// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package runner provides a test runner that owns the master seed of a run.
//
// A run gets its own root scope and main thread. Every goroutine spawned from
// the run context derives its randomness from the master seed, so a failing
// run can be replayed by setting RANDOMIZED_SEED to the logged seed.
package runner

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/saucelabs/randomized"
	"github.com/saucelabs/randomized/log"
	"go.uber.org/multierr"
)

// MainThread is the name of the thread that runs the function passed to Run.
const MainThread = "main"

// ThreadSeed returns the seed of the first frame of the thread with the given
// path in a run with the given master seed.
func ThreadSeed(master int64, path string) int64 {
	if path == MainThread {
		return master
	}
	return randomized.DeriveSeed(master, randomized.PathIdentity(path))
}

// Runner owns the master randomness of one run at a time, it must not run concurrently with itself.
type Runner struct {
	config Config
	reg    *randomized.Registry
	log    log.StructuredLogger
	seed   int64
	master *randomized.Randomness
}

var _ randomized.Runner = (*Runner)(nil)

// New creates a runner, reg nil means randomized.Default().
func New(cfg *Config, reg *randomized.Registry, l log.StructuredLogger) (*Runner, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if reg == nil {
		reg = randomized.Default()
	}
	if l == nil {
		l = log.NopLogger
	}

	seed := randomized.NewSeed()
	if cfg.Seed != "" {
		s, err := randomized.ParseSeed(cfg.Seed)
		if err != nil {
			return nil, err
		}
		seed = s
	}

	return &Runner{
		config: *cfg,
		reg:    reg,
		log:    l.With("suite", cfg.Suite),
		seed:   seed,
	}, nil
}

// Seed returns the master seed.
func (r *Runner) Seed() int64 {
	return r.seed
}

// Randomness returns the master randomness of the current run, nil outside Run.
func (r *Runner) Randomness() *randomized.Randomness {
	return r.master
}

// Run executes fn on the main thread of a new run.
// The context passed to fn resolves to the run's randomness context. When the
// run fails, the master seed is logged so that it can be replayed.
func (r *Runner) Run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	scope := randomized.NewScope(nil, r.config.Suite)
	main := randomized.NewThread(scope, MainThread)
	r.master = randomized.NewRandomness(main, r.seed)

	rc, err := r.reg.CreateForRun(scope, r.config.Suite, r)
	if err != nil {
		r.master = nil
		return err
	}
	defer func() {
		rc.Dispose()
		r.master = nil
	}()

	r.log.Info("run started", "seed", randomized.FormatSeed(r.seed))

	ctx = randomized.WithThread(randomized.WithRegistry(ctx, r.reg), main)
	err = fn(ctx)

	if r.config.LeakCheck {
		err = multierr.Append(err, r.leakCheck(rc, main))
	}

	if err != nil {
		r.log.Error("run failed", "seed", randomized.FormatSeed(r.seed), "error", err)
		r.log.Info(r.reproduceHint())
	}

	return err
}

// leakCheck reports threads of the run, other than main, that have not exited.
// Threads started with randomized.Go exit right after their function returns,
// so the check retries for a short while before reporting.
func (r *Runner) leakCheck(rc *randomized.Context, main *randomized.Thread) error {
	var (
		leaked []string
		delay  = time.Millisecond
	)
	deadline := time.Now().Add(r.config.LeakTimeout)
	for {
		leaked = leaked[:0]
		for _, name := range rc.LiveThreads() {
			if name != main.Name() {
				leaked = append(leaked, name)
			}
		}
		if len(leaked) == 0 {
			return nil
		}
		if time.Now().After(deadline) {
			break
		}
		time.Sleep(delay)
		delay = min(2*delay, 100*time.Millisecond)
	}

	return fmt.Errorf("%w: %s", randomized.ErrThreadLeak, strings.Join(leaked, ", "))
}

func (r *Runner) reproduceHint() string {
	return fmt.Sprintf("reproduce with: %s_SEED=%s", EnvPrefix, randomized.FormatSeed(r.seed))
}

// RunTest runs fn as a randomized run configured from the environment.
// Failures of the run are reported on t together with the master seed.
func RunTest(t testing.TB, fn func(ctx context.Context) error) {
	t.Helper()

	cfg := ConfigFromEnv()
	cfg.Suite = t.Name()

	r, err := New(cfg, nil, log.NewTestLogger(t, log.InfoLevel))
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Run(context.Background(), fn); err != nil {
		t.Fatalf("%v (%s)", err, r.reproduceHint())
	}
	if t.Failed() {
		t.Log(r.reproduceHint())
	}
}
