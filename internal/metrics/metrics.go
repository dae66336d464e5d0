// Package metrics defines the prometheus instruments for the settlement
// engine. Instruments are registered on the default registry and exposed via
// promhttp in the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OverviewComputations counts balance-overview recomputations.
	OverviewComputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamledger_balance_overview_computations_total",
		Help: "Number of team balance overview recomputations.",
	})

	// OverviewDuration observes how long one overview recomputation takes.
	OverviewDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "teamledger_balance_overview_duration_seconds",
		Help:    "Duration of team balance overview recomputations.",
		Buckets: prometheus.DefBuckets,
	})

	// AutoSettlements counts auto-settlement writer outcomes by result:
	// created, skipped or failed.
	AutoSettlements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teamledger_auto_settlements_total",
		Help: "Auto-settlement writer outcomes.",
	}, []string{"result"})
)
