package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	runsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Number of pipeline runs by outcome.",
	}, []string{"pipeline", "outcome"})

	runDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "training_data",
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of pipeline runs.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"pipeline"})

	skippedUsersCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "pipeline",
		Name:      "users_skipped_total",
		Help:      "Number of users skipped because their output could not be prepared.",
	}, []string{"pipeline"})
)

func init() {
	prometheus.MustRegister(runsCounter, runDuration, skippedUsersCounter)
}

func recordRun(pipeline, outcome string, elapsed time.Duration) {
	runsCounter.WithLabelValues(pipeline, outcome).Inc()
	runDuration.WithLabelValues(pipeline).Observe(elapsed.Seconds())
}

func recordUserSkipped(pipeline string) {
	skippedUsersCounter.WithLabelValues(pipeline).Inc()
}
