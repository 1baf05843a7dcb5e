/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric is the global monitoring instance.
var Metric *Metrics

func init() {
	Metric = &Metrics{
		BurnTipHeight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sortition_burn_tip_height",
				Help: "Height of the highest processed burn block.",
			},
		),
		TotalBurn: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sortition_total_burn",
				Help: "Cumulative burn on the current chain tip.",
			},
		),
		SortitionCnt: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sortition_sortition_cnt",
				Help: "How many burn blocks produced a winner since start.",
			},
		),
		NoSortitionCnt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sortition_no_sortition_cnt",
				Help: "How many burn blocks produced no winner since start.",
			},
			[]string{"reason"},
		),
		ProcessBlockDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sortition_process_block_duration_seconds",
				Help:    "Time spent processing one burn block.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	registerMetrics(Metric)
}

// Metrics used for prometheus
type Metrics struct {
	// prometheus.Gauge and prometheus.Counter are interface types; keep the
	// values, not pointers, or the methods cannot be called.
	BurnTipHeight        prometheus.Gauge
	TotalBurn            prometheus.Gauge
	SortitionCnt         prometheus.Counter
	NoSortitionCnt       *prometheus.CounterVec
	ProcessBlockDuration prometheus.Histogram
}

func registerMetrics(m *Metrics) {
	prometheus.MustRegister(m.BurnTipHeight, m.TotalBurn, m.SortitionCnt,
		m.NoSortitionCnt, m.ProcessBlockDuration)
}

// ProvideMonitorMetrics returns the global variable Metric.
func ProvideMonitorMetrics() *Metrics {
	return Metric
}
