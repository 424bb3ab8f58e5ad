// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package runner

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by ConfigFromEnv.
const EnvPrefix = "RANDOMIZED"

// Config is the runner configuration.
type Config struct {
	// Seed is the master seed in hex, empty means a fresh seed for every run.
	Seed string
	// Suite names the run in logs and in the randomness context.
	Suite string
	// LeakCheck fails a run whose spawned threads are still running when it ends.
	LeakCheck bool
	// LeakTimeout is how long the leak check waits for threads to exit.
	LeakTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Suite:       "suite",
		LeakCheck:   true,
		LeakTimeout: time.Second,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by the RANDOMIZED_SEED,
// RANDOMIZED_SUITE, RANDOMIZED_LEAK_CHECK and RANDOMIZED_LEAK_TIMEOUT variables.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if v.IsSet("seed") {
		cfg.Seed = v.GetString("seed")
	}
	if v.IsSet("suite") {
		cfg.Suite = v.GetString("suite")
	}
	if v.IsSet("leak-check") {
		cfg.LeakCheck = v.GetBool("leak-check")
	}
	if v.IsSet("leak-timeout") {
		cfg.LeakTimeout = v.GetDuration("leak-timeout")
	}

	return cfg
}
