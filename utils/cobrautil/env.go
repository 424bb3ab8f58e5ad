// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cobrautil

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

func appendEnvToUsage(fs *pflag.FlagSet, envPrefix string, seen map[*pflag.Flag]bool) {
	fs.VisitAll(func(f *pflag.Flag) {
		if seen[f] {
			return
		}
		seen[f] = true
		f.Usage += fmt.Sprintf(" env: %s", EnvName(envPrefix, f.Name))
	})
}

// EnvName returns the environment variable bound to flagName.
func EnvName(envPrefix, flagName string) string {
	name := flagName
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ToUpper(name)
	return fmt.Sprintf("%s_%s", envPrefix, name)
}
