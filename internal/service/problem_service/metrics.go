package problem_service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	selectorAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lcbot_selector_attempts",
		Help:    "Catalog draws needed to find an unposted problem",
		Buckets: []float64{1, 2, 3, 4, 5, 8, 13},
	})

	selectorResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lcbot_selector_results_total",
		Help: "Unsolved problem selections by result",
	}, []string{"result"})
)
