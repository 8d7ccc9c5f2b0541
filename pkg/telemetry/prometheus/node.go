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
	"context"
	"time"

	"github.com/mackerelio/go-osstat/memory"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

const (
	livestreamNamespace string = "livestream"

	nodeStatsInterval = 10 * time.Second
)

var (
	initialized atomic.Bool

	MessageCounter *prometheus.CounterVec

	promNodeCPULoad    prometheus.Gauge
	promNodeMemoryLoad prometheus.Gauge
	promNodeLoadAvg    prometheus.Gauge
)

func Init(nodeID string) {
	if initialized.Swap(true) {
		return
	}

	MessageCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   livestreamNamespace,
			Subsystem:   "signal",
			Name:        "messages",
			ConstLabels: prometheus.Labels{"node_id": nodeID},
		},
		[]string{"type", "status"},
	)

	promNodeCPULoad = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "node",
		Name:        "cpu_load",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	})
	promNodeMemoryLoad = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "node",
		Name:        "memory_load",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	})
	promNodeLoadAvg = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   livestreamNamespace,
		Subsystem:   "node",
		Name:        "load_avg_1m",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	})

	prometheus.MustRegister(MessageCounter)
	prometheus.MustRegister(promNodeCPULoad)
	prometheus.MustRegister(promNodeMemoryLoad)
	prometheus.MustRegister(promNodeLoadAvg)

	initRoomStats(nodeID)
	initEgressStats(nodeID)
}

func RecordMessage(event string, status string) {
	if MessageCounter == nil {
		return
	}
	MessageCounter.WithLabelValues(event, status).Inc()
}

type NodeStats struct {
	CPULoad    float32
	MemoryLoad float32
	LoadAvg1   float64
}

func GetNodeStats() (NodeStats, error) {
	var stats NodeStats
	cpuLoad, err := getCPULoad()
	if err != nil {
		return stats, err
	}
	stats.CPULoad = cpuLoad

	if load, err := getLoadAvg(); err == nil {
		stats.LoadAvg1 = load.Loadavg1
	}

	// memory stats are unavailable on some platforms, keep the rest of the sample
	if memInfo, err := memory.Get(); err == nil && memInfo.Total != 0 {
		stats.MemoryLoad = float32(memInfo.Used) / float32(memInfo.Total)
	}
	return stats, nil
}

// RunNodeStats samples host load until ctx is done.
func RunNodeStats(ctx context.Context) {
	ticker := time.NewTicker(nodeStatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := GetNodeStats()
			if err != nil {
				continue
			}
			promNodeCPULoad.Set(float64(stats.CPULoad))
			promNodeMemoryLoad.Set(float64(stats.MemoryLoad))
			promNodeLoadAvg.Set(stats.LoadAvg1)
		}
	}
}
