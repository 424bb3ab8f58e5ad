// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cobrautil binds cobra commands to viper configuration sources.
package cobrautil

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Decorate prepares a command tree before execution.
// Every command gets a long description starting with its short one, every
// flag lists the environment variable it is bound to, and the help
// subcommand is hidden in favour of --help.
func Decorate(root *cobra.Command, envPrefix string) {
	root.SetHelpCommand(&cobra.Command{Hidden: true})

	seen := make(map[*pflag.Flag]bool)
	walk(root, func(cmd *cobra.Command) {
		if cmd.Short != "" {
			if cmd.Long == "" {
				cmd.Long = cmd.Short + "."
			} else {
				cmd.Long = cmd.Short + ".\n\n" + cmd.Long
			}
		}
		appendEnvToUsage(cmd.PersistentFlags(), envPrefix, seen)
		appendEnvToUsage(cmd.LocalNonPersistentFlags(), envPrefix, seen)
	})
}

// walk calls fn for cmd and its descendants, parents first.
func walk(cmd *cobra.Command, fn func(*cobra.Command)) {
	fn(cmd)
	for _, c := range cmd.Commands() {
		walk(c, fn)
	}
}
