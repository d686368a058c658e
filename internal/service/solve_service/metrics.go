package solve_service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lcbot_reactions_total",
		Help: "Reaction events by kind and reconciliation outcome",
	}, []string{"kind", "outcome"})

	reconcileErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lcbot_reconcile_errors_total",
		Help: "Reaction events that failed to reconcile",
	}, []string{"kind"})

	reconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lcbot_reconcile_duration_seconds",
		Help:    "Time spent reconciling a reaction event",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})
)
