// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

var (
	transcoderCurrent atomic.Int32

	promTranscoderCurrent prometheus.Gauge
	promTranscoderStarts  *prometheus.CounterVec
	promEgressDegraded    *prometheus.CounterVec
)

func initEgressStats(nodeID string) {
	promTranscoderCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "egress",
		Name:        "transcoder_total",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	})
	promTranscoderStarts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "egress",
		Name:        "transcoder_starts",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	}, []string{"status"})
	promEgressDegraded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "egress",
		Name:        "degraded",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	}, []string{"reason"})

	prometheus.MustRegister(promTranscoderCurrent)
	prometheus.MustRegister(promTranscoderStarts)
	prometheus.MustRegister(promEgressDegraded)
}

func TranscoderStarted() {
	promTranscoderStarts.WithLabelValues("success").Inc()
	promTranscoderCurrent.Add(1)
	transcoderCurrent.Inc()
}

func TranscoderStartFailed() {
	promTranscoderStarts.WithLabelValues("failure").Inc()
}

func TranscoderEnded() {
	promTranscoderCurrent.Sub(1)
	transcoderCurrent.Dec()
}

// EgressDegraded counts rooms losing their egress; reason is one of
// "setup", "consume", "start", "exit".
func EgressDegraded(reason string) {
	promEgressDegraded.WithLabelValues(reason).Inc()
}

func CurrentTranscoders() int32 {
	return transcoderCurrent.Load()
}
