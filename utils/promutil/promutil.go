// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package promutil describes and dumps Prometheus metrics.
package promutil

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

type Desc struct {
	FqName         string
	Help           string
	ConstLabels    map[string]string
	VariableLabels []string
}

// Describe returns the descriptions of metrics exposed by c sorted by name.
func Describe(c prometheus.Collector) []Desc {
	ch := make(chan *prometheus.Desc, 1)
	go func() {
		c.Describe(ch)
		close(ch)
	}()

	var res []Desc //nolint:prealloc // We don't know the size of the result
	for d := range ch {
		res = append(res, parseDesc(d.String()))
	}
	slices.SortFunc(res, func(a, b Desc) int {
		return strings.Compare(a.FqName, b.FqName)
	})
	return res
}

func parseDesc(s string) Desc {
	var res Desc
	fmt.Fscanf(strings.NewReader(s), "Desc{fqName: %q, help: %q}", &res.FqName, &res.Help) //nolint:errcheck // reading from a string can't fail

	if v := section(s, "constLabels: {"); v != "" {
		res.ConstLabels = make(map[string]string)
		for _, kv := range strings.Split(v, ",") {
			k, v, _ := strings.Cut(kv, "=")
			if k != "" {
				res.ConstLabels[k] = strings.Trim(v, "\"")
			}
		}
	}
	if v := section(s, "variableLabels: {"); v != "" {
		res.VariableLabels = strings.Split(v, ",")
	}

	return res
}

func section(s, pfx string) string {
	start := strings.Index(s, pfx)
	if start < 0 {
		return ""
	}
	s = s[start+len(pfx):]
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return ""
	}
	return s[:end]
}

// WithPrefix keeps metric families whose name starts with prefix.
func WithPrefix(prefix string) func(*dto.MetricFamily) bool {
	return func(mf *dto.MetricFamily) bool {
		return strings.HasPrefix(mf.GetName(), prefix)
	}
}

// Dump gathers metrics from g and encodes the families accepted by all filters
// in the text exposition format.
func Dump(g prometheus.Gatherer, filters ...func(*dto.MetricFamily) bool) (string, error) {
	got, err := g.Gather()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range got {
		ok := true
		for _, f := range filters {
			if !f(mf) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		if err := enc.Encode(mf); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

// Parse reads metric families in the text exposition format.
func Parse(r io.Reader) (*Gatherer, error) {
	var parser expfmt.TextParser
	mf, err := parser.TextToMetricFamilies(r)
	if err != nil {
		return nil, err
	}

	return &Gatherer{mf: mf}, nil
}

// Gatherer serves parsed metric families.
type Gatherer struct {
	mf map[string]*dto.MetricFamily
}

func (g *Gatherer) Gather() ([]*dto.MetricFamily, error) {
	res := make([]*dto.MetricFamily, 0, len(g.mf))
	for _, mf := range g.mf {
		res = append(res, mf)
	}
	slices.SortFunc(res, func(a, b *dto.MetricFamily) int {
		return strings.Compare(a.GetName(), b.GetName())
	})
	return res, nil
}

// Value returns the value of the counter or gauge name with the given labels.
func (g *Gatherer) Value(name string, labels map[string]string) (float64, bool) {
	mf, ok := g.mf[name]
	if !ok {
		return 0, false
	}
	for _, m := range mf.GetMetric() {
		if !matchLabels(m.GetLabel(), labels) {
			continue
		}
		switch {
		case m.GetCounter() != nil:
			return m.GetCounter().GetValue(), true
		case m.GetGauge() != nil:
			return m.GetGauge().GetValue(), true
		}
	}
	return 0, false
}

func matchLabels(lp []*dto.LabelPair, labels map[string]string) bool {
	if len(lp) != len(labels) {
		return false
	}
	for _, p := range lp {
		if labels[p.GetName()] != p.GetValue() {
			return false
		}
	}
	return true
}
