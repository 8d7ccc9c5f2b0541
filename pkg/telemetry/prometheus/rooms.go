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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

var (
	roomCurrent        atomic.Int32
	participantCurrent atomic.Int32
	producerCurrent    atomic.Int32
	consumerCurrent    atomic.Int32

	promRoomCurrent        prometheus.Gauge
	promRoomDuration       prometheus.Histogram
	promParticipantCurrent prometheus.Gauge
	promProducerCurrent    *prometheus.GaugeVec
	promConsumerCurrent    prometheus.Gauge
	promTransportCounter   *prometheus.CounterVec
)

func initRoomStats(nodeID string) {
	promRoomCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "room",
		Name:        "total",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	})
	promRoomDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "room",
		Name:        "duration_seconds",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
		Buckets: []float64{
			5, 10, 60, 5 * 60, 10 * 60, 30 * 60, 60 * 60, 2 * 60 * 60, 5 * 60 * 60, 10 * 60 * 60,
		},
	})
	promParticipantCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "participant",
		Name:        "total",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	})
	promProducerCurrent = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "producer",
		Name:        "total",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	}, []string{"kind"})
	promConsumerCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "consumer",
		Name:        "total",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	})
	promTransportCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "transport",
		Name:        "negotiations",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	}, []string{"direction", "state"})

	prometheus.MustRegister(promRoomCurrent)
	prometheus.MustRegister(promRoomDuration)
	prometheus.MustRegister(promParticipantCurrent)
	prometheus.MustRegister(promProducerCurrent)
	prometheus.MustRegister(promConsumerCurrent)
	prometheus.MustRegister(promTransportCounter)
}

func RoomStarted() {
	promRoomCurrent.Add(1)
	roomCurrent.Inc()
}

func RoomEnded(startedAt time.Time) {
	if !startedAt.IsZero() {
		promRoomDuration.Observe(float64(time.Since(startedAt)) / float64(time.Second))
	}
	promRoomCurrent.Sub(1)
	roomCurrent.Dec()
}

func AddParticipant() {
	promParticipantCurrent.Add(1)
	participantCurrent.Inc()
}

func SubParticipant() {
	promParticipantCurrent.Sub(1)
	participantCurrent.Dec()
}

func AddProducer(kind string) {
	promProducerCurrent.WithLabelValues(kind).Add(1)
	producerCurrent.Inc()
}

func SubProducer(kind string) {
	promProducerCurrent.WithLabelValues(kind).Sub(1)
	producerCurrent.Dec()
}

func AddConsumer() {
	promConsumerCurrent.Add(1)
	consumerCurrent.Inc()
}

func SubConsumer() {
	promConsumerCurrent.Sub(1)
	consumerCurrent.Dec()
}

func RecordTransportState(direction, state string) {
	promTransportCounter.WithLabelValues(direction, state).Inc()
}

func CurrentRooms() int32 {
	return roomCurrent.Load()
}

func CurrentParticipants() int32 {
	return participantCurrent.Load()
}

func CurrentProducers() int32 {
	return producerCurrent.Load()
}

func CurrentConsumers() int32 {
	return consumerCurrent.Load()
}
