/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package cursor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace     = "cursors"
	kindLabel     = "kind"
	kindCursor    = "cursor"
	kindClear     = "clear"
	subsystemDeco = "decorations"
)

// Metrics counts the work of the cursor plugin.
type Metrics struct {
	registry *prometheus.Registry

	recomputesTotal prometheus.Counter
	remapsTotal     prometheus.Counter
	publishesTotal  *prometheus.CounterVec
}

// NewMetrics creates a new instance of Metrics with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	return &Metrics{
		registry: reg,
		recomputesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemDeco,
			Name:      "recomputes_total",
			Help:      "The total count of decoration sets computed from the awareness.",
		}),
		remapsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemDeco,
			Name:      "remaps_total",
			Help:      "The total count of decoration sets mapped through local edits.",
		}),
		publishesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "awareness",
			Name:      "publishes_total",
			Help:      "The total count of local cursor fields published to the awareness.",
		}, []string{kindLabel}),
	}
}

// Registry returns the registry of the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// AddRecompute adds a recompute of the decorations.
func (m *Metrics) AddRecompute() {
	if m == nil {
		return
	}
	m.recomputesTotal.Inc()
}

// AddRemap adds a remap of the decorations.
func (m *Metrics) AddRemap() {
	if m == nil {
		return
	}
	m.remapsTotal.Inc()
}

// AddPublish adds a publish of the local cursor. A cleared cursor is
// counted apart.
func (m *Metrics) AddPublish(cleared bool) {
	if m == nil {
		return
	}
	kind := kindCursor
	if cleared {
		kind = kindClear
	}
	m.publishesTotal.WithLabelValues(kind).Inc()
}
