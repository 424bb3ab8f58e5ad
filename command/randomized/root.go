// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package randomized wires the randomized subcommands into the root command.
package randomized

import (
	"github.com/saucelabs/randomized/bind"
	"github.com/saucelabs/randomized/command/derive"
	"github.com/saucelabs/randomized/command/metrics"
	"github.com/saucelabs/randomized/command/sample"
	"github.com/saucelabs/randomized/log"
	"github.com/saucelabs/randomized/runner"
	"github.com/saucelabs/randomized/utils/cobrautil"
	"github.com/spf13/cobra"
)

const (
	EnvPrefix          = runner.EnvPrefix
	ConfigFileFlagName = "config-file"
)

func Command() *cobra.Command {
	lcfg := log.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "randomized",
		Short:         "Inspect and replay seeds of randomized runs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cobrautil.BindAll(cmd, EnvPrefix, ConfigFileFlagName)
		},
	}
	fs := cmd.PersistentFlags()
	bind.ConfigFile(fs, new(string))
	if err := cmd.MarkPersistentFlagFilename(ConfigFileFlagName, "yaml", "yml", "json", "toml"); err != nil {
		panic(err)
	}
	bind.LogConfig(fs, lcfg)

	cmd.AddCommand(
		derive.Command(),
		sample.Command(lcfg),
		metrics.Command(),
	)

	cobrautil.Decorate(cmd, EnvPrefix)

	return cmd
}
