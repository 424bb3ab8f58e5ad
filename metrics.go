// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultMetricsNamespace is the namespace used when none is configured.
const DefaultMetricsNamespace = "randomized"

type registryMetrics struct {
	created  *prometheus.CounterVec
	active   prometheus.Gauge
	disposed prometheus.Counter
	derived  *prometheus.CounterVec
	reaped   prometheus.Counter
}

func newRegistryMetrics(r prometheus.Registerer, namespace string) *registryMetrics {
	if r == nil {
		r = prometheus.NewRegistry() // This registry will be discarded.
	}
	if namespace == "" {
		namespace = DefaultMetricsNamespace
	}
	f := promauto.With(r)

	return &registryMetrics{
		created: f.NewCounterVec(prometheus.CounterOpts{
			Name:      "contexts_created_total",
			Namespace: namespace,
			Help:      "Number of created randomness contexts by kind (run or fallback)",
		}, []string{"kind"}),
		active: f.NewGauge(prometheus.GaugeOpts{
			Name:      "contexts_active",
			Namespace: namespace,
			Help:      "Number of registered randomness contexts",
		}),
		disposed: f.NewCounter(prometheus.CounterOpts{
			Name:      "contexts_disposed_total",
			Namespace: namespace,
			Help:      "Number of disposed randomness contexts",
		}),
		derived: f.NewCounterVec(prometheus.CounterOpts{
			Name:      "frames_derived_total",
			Namespace: namespace,
			Help:      "Number of first frames derived for threads by source",
		}, []string{"source"}),
		reaped: f.NewCounter(prometheus.CounterOpts{
			Name:      "threads_reaped_total",
			Namespace: namespace,
			Help:      "Number of terminated thread entries removed from context tables",
		}),
	}
}

func (m *registryMetrics) create(kind string) {
	m.created.WithLabelValues(kind).Inc()
	m.active.Inc()
}

func (m *registryMetrics) dispose() {
	m.disposed.Inc()
	m.active.Dec()
}

func (m *registryMetrics) derive(source string) {
	m.derived.WithLabelValues(source).Inc()
}

func (m *registryMetrics) reap(n int) {
	if n > 0 {
		m.reaped.Add(float64(n))
	}
}
