// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package promutil_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/saucelabs/randomized"
	"github.com/saucelabs/randomized/utils/promutil"
)

func TestDescribeRegistryMetrics(t *testing.T) {
	pr := prometheus.NewRegistry()
	randomized.NewRegistry(randomized.WithMetrics(pr, "test"))

	golden := []promutil.Desc{
		{
			FqName: "test_contexts_active",
			Help:   "Number of registered randomness contexts",
		},
		{
			FqName:         "test_contexts_created_total",
			Help:           "Number of created randomness contexts by kind (run or fallback)",
			VariableLabels: []string{"kind"},
		},
		{
			FqName: "test_contexts_disposed_total",
			Help:   "Number of disposed randomness contexts",
		},
		{
			FqName:         "test_frames_derived_total",
			Help:           "Number of first frames derived for threads by source",
			VariableLabels: []string{"source"},
		},
		{
			FqName: "test_threads_reaped_total",
			Help:   "Number of terminated thread entries removed from context tables",
		},
	}

	if diff := cmp.Diff(golden, promutil.Describe(pr)); diff != "" {
		t.Errorf("unexpected metrics (-want +got):\n%s", diff)
	}
}

func TestDumpAndParse(t *testing.T) {
	pr := prometheus.NewRegistry()
	reg := randomized.NewRegistry(randomized.WithMetrics(pr, "test"))

	th := randomized.NewThread(randomized.NewScope(nil, "dump"), "main")
	c, err := reg.Resolve(th)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.RandomnessFor(th); err != nil {
		t.Fatal(err)
	}
	c.Dispose()

	out, err := promutil.Dump(pr, promutil.WithPrefix("test_contexts"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "test_frames_derived_total") {
		t.Fatalf("filter not applied:\n%s", out)
	}

	g, err := promutil.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		labels map[string]string
		want   float64
	}{
		{"test_contexts_created_total", map[string]string{"kind": "fallback"}, 1},
		{"test_contexts_disposed_total", nil, 1},
		{"test_contexts_active", nil, 0},
	}
	for _, tc := range tests {
		v, ok := g.Value(tc.name, tc.labels)
		if !ok {
			t.Errorf("%s: missing", tc.name)
			continue
		}
		if v != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, v, tc.want)
		}
	}
}
