// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package sample

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/saucelabs/randomized"
	"github.com/saucelabs/randomized/bind"
	"github.com/saucelabs/randomized/log"
	"github.com/saucelabs/randomized/log/slog"
	"github.com/saucelabs/randomized/log/stdlog"
	"github.com/saucelabs/randomized/runner"
	"github.com/saucelabs/randomized/utils/cobrautil"
	"github.com/saucelabs/randomized/utils/promutil"
	"github.com/spf13/cobra"
)

type command struct {
	runnerConfig *runner.Config
	logConfig    *log.Config
	thread       string
	count        int
	metrics      bool
	describe     bool
}

func (c *command) runE(cmd *cobra.Command, _ []string) error {
	if c.count < 0 {
		return errors.New("count must be non-negative")
	}

	segments := strings.Split(strings.Trim(c.thread, "/"), "/")
	if segments[0] != runner.MainThread {
		return fmt.Errorf("thread path must start with %q: %s", runner.MainThread, c.thread)
	}

	// A minted seed is resolved here so that the description shows it.
	seed := randomized.NewSeed()
	if c.runnerConfig.Seed != "" {
		s, err := randomized.ParseSeed(c.runnerConfig.Seed)
		if err != nil {
			return err
		}
		seed = s
	}
	c.runnerConfig.Seed = randomized.FormatSeed(seed)

	l := newLogger(c.logConfig, cmd.ErrOrStderr())
	desc := cobrautil.RunDescriber{
		Resolved: map[string]any{
			"seed":   c.runnerConfig.Seed,
			"suite":  c.runnerConfig.Suite,
			"thread": strings.Join(segments, "/"),
		},
	}
	lines := desc.Lines(cmd.Flags(), "# ")
	l.Debug("effective configuration\n" + strings.Join(lines, "\n"))

	pr := prometheus.NewRegistry()
	reg := randomized.NewRegistry(
		randomized.WithLogger(l),
		randomized.WithMetrics(pr, randomized.DefaultMetricsNamespace),
	)
	r, err := runner.New(c.runnerConfig, reg, l)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if c.describe {
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
	}

	err = r.Run(cmd.Context(), func(ctx context.Context) error {
		for _, name := range segments[1:] {
			var done func()
			ctx, done = randomized.Spawn(ctx, name)
			defer done()
		}

		rnd, err := randomized.From(ctx)
		if err != nil {
			return err
		}
		th, _ := randomized.ThreadFrom(ctx)
		l.DebugContext(ctx, "drawing values", "count", c.count)
		fmt.Fprintf(w, "# thread %s seed %s\n", th.Name(), randomized.FormatSeed(rnd.Seed()))
		for range c.count {
			fmt.Fprintln(w, rnd.Int63())
		}

		return nil
	})
	if err != nil {
		return err
	}

	if c.metrics {
		return dumpMetrics(w, pr)
	}

	return nil
}

func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	s, err := promutil.Dump(g, promutil.WithPrefix(randomized.DefaultMetricsNamespace+"_"))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func newLogger(cfg *log.Config, w io.Writer) log.StructuredLogger {
	c := *cfg
	if c.Output == nil {
		c.Output = w
	}
	if c.Format == log.JSONFormat {
		return slog.New(&c, slog.WithThread()).Named("sample")
	}
	return log.NewStructuredLoggerAdapter(stdlog.New(&c).Named("sample"))
}

func Command(lcfg *log.Config) *cobra.Command {
	c := command{
		runnerConfig: runner.DefaultConfig(),
		logConfig:    lcfg,
		thread:       runner.MainThread,
		count:        5,
	}
	c.runnerConfig.Suite = "sample"

	cmd := &cobra.Command{
		Use:     "sample [--seed <hex>] [--thread <path>] [flags]",
		Short:   "Print values drawn by a thread of a run",
		Long:    long,
		Example: example,
		RunE:    c.runE,
	}

	fs := cmd.Flags()
	bind.RunnerConfig(fs, c.runnerConfig)
	fs.StringVarP(&c.thread, "thread", "t", c.thread, "<path>"+
		"Thread path to spawn from the main thread of the run, separated by slashes. ")
	fs.IntVarP(&c.count, "count", "n", c.count, "Number of values to print.")
	fs.BoolVar(&c.metrics, "metrics", c.metrics, "Print registry metrics after the run.")
	fs.BoolVar(&c.describe, "describe", c.describe, "Print the resolved configuration, including a minted seed, as comment lines before the values.")

	return cmd
}

const long = `The run spawns the threads on the given path from its main thread and prints
the first values of the last thread's randomness. Values are the same for the
same master seed and path, so a failing goroutine can be inspected offline.`

const example = `  # First three values of the main thread's first unnamed child
  randomized sample --seed C0FFEE --thread main/0 -n 3`
