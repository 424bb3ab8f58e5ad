// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package derive

import (
	"fmt"
	"slices"
	"strings"

	"github.com/saucelabs/randomized"
	"github.com/saucelabs/randomized/bind"
	"github.com/saucelabs/randomized/runner"
	"github.com/spf13/cobra"
)

type command struct {
	seed    string
	threads []string
}

func (c *command) runE(cmd *cobra.Command, args []string) error {
	master, err := randomized.ParseSeed(c.seed)
	if err != nil {
		return err
	}

	paths := slices.Concat(c.threads, args)
	if len(paths) == 0 {
		paths = []string{runner.MainThread}
	}

	w := cmd.OutOrStdout()
	for _, p := range paths {
		p = strings.Trim(p, "/")
		fmt.Fprintf(w, "%s %s\n", p, randomized.FormatSeed(runner.ThreadSeed(master, p)))
	}

	return nil
}

func Command() *cobra.Command {
	c := command{}

	cmd := &cobra.Command{
		Use:     "derive --seed <hex> [thread path...] [flags]",
		Short:   "Print the seeds derived for threads of a run",
		Long:    long,
		Example: example,
		RunE:    c.runE,
	}

	fs := cmd.Flags()
	bind.Seed(fs, &c.seed)
	fs.StringSliceVarP(&c.threads, "thread", "t", nil, "<path>"+
		"Thread path, the main thread of a run is \"main\", its children are \"main/<name>\" "+
		"or \"main/<n>\" for the n-th unnamed child. "+
		"The flag can be specified multiple times. ")
	bind.MarkFlagRequired(cmd, "seed")

	return cmd
}

const long = `Every thread of a run starts from a seed derived from the master seed and the thread path.
Use it to replay the randomness of a single goroutine from a failed run.`

const example = `  # Seeds of the main thread and its first unnamed child
  randomized derive --seed C0FFEE main main/0`
