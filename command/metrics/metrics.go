// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/saucelabs/randomized"
	"github.com/saucelabs/randomized/utils/promutil"
	"github.com/spf13/cobra"
)

type command struct {
	namespace string
}

func (c *command) runE(cmd *cobra.Command, _ []string) error {
	pr := prometheus.NewRegistry()
	randomized.NewRegistry(randomized.WithMetrics(pr, c.namespace))

	w := cmd.OutOrStdout()
	for _, d := range promutil.Describe(pr) {
		name := d.FqName
		if len(d.VariableLabels) > 0 {
			name += "{" + strings.Join(d.VariableLabels, ",") + "}"
		}
		fmt.Fprintf(w, "%s\n\t%s\n", name, d.Help)
	}

	return nil
}

func Command() *cobra.Command {
	c := command{
		namespace: randomized.DefaultMetricsNamespace,
	}

	cmd := &cobra.Command{
		Use:   "metrics [--namespace <name>]",
		Short: "List the Prometheus metrics exposed by a randomness registry",
		Args:  cobra.NoArgs,
		RunE:  c.runE,
	}

	fs := cmd.Flags()
	fs.StringVar(&c.namespace, "namespace", c.namespace, "<name>"+
		"Metrics namespace. ")

	return cmd
}
