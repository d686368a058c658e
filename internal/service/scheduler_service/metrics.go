package scheduler_service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	taskRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lcbot_scheduled_runs_total",
		Help: "Scheduled task runs by task and resulting state",
	}, []string{"task", "state"})

	taskDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lcbot_scheduled_run_duration_seconds",
		Help:    "Duration of scheduled task runs",
		Buckets: prometheus.DefBuckets,
	})
)
