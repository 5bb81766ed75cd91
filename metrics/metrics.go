// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides consensus metrics
type Metrics struct {
	Registry prometheus.Registerer
}

// NewMetrics creates new metrics instance
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Registry: reg,
	}
}

// Register registers a prometheus collector
func (m *Metrics) Register(collector prometheus.Collector) error {
	return m.Registry.Register(collector)
}

// Engine holds the named Prometheus collectors the round-finalization flow
// updates every round.
type Engine struct {
	IssuedMicroTotal    prometheus.Counter
	DividendPoolMicro   prometheus.Gauge
	BurnedMicroTotal    prometheus.Counter
	FinalizedRound      prometheus.Gauge
	PendingBlocks       prometheus.Gauge
	ShadowDisputesTotal prometheus.Counter
}

// NewEngine builds and registers the full Engine collector set against reg.
// Registration failures are returned rather than panicking, so callers can
// decide whether a duplicate registration (e.g. in a test harness reusing a
// default registry) is fatal.
func NewEngine(reg prometheus.Registerer) (*Engine, error) {
	e := &Engine{
		IssuedMicroTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dlc_emission_issued_micro_total",
			Help: "Cumulative micro-IPN issued across all finalized rounds.",
		}),
		DividendPoolMicro: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dlc_emission_dividend_pool_micro",
			Help: "Current network-dividend pool balance in micro-IPN.",
		}),
		BurnedMicroTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dlc_emission_burned_micro_total",
			Help: "Cumulative micro-IPN burned from excess fees.",
		}),
		FinalizedRound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dlc_consensus_finalized_round",
			Help: "Highest round finalized so far.",
		}),
		PendingBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dlc_consensus_pending_blocks",
			Help: "Number of ingested blocks not yet finalized.",
		}),
		ShadowDisputesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dlc_consensus_shadow_disputes_total",
			Help: "Cumulative count of blocks flagged disputed by shadow verifiers.",
		}),
	}
	for _, c := range []prometheus.Collector{
		e.IssuedMicroTotal, e.DividendPoolMicro, e.BurnedMicroTotal,
		e.FinalizedRound, e.PendingBlocks, e.ShadowDisputesTotal,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}
