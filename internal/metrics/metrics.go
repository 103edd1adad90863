// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchesTotal counts worker invocations by task and outcome.
	DispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatches_total",
			Help: "Total number of worker dispatches performed by the runner.",
		},
		[]string{"task", "status"},
	)

	// DispatchDuration observes how long a single worker invocation ran.
	DispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dispatch_duration_seconds",
			Help:    "Wall-clock duration of worker dispatches.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 14),
		},
		[]string{"task"},
	)

	// BatchInFlight is 1 while a batch is being dispatched, 0 otherwise.
	BatchInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "batch_in_flight",
			Help: "Whether a workload batch is currently running.",
		},
	)
)
