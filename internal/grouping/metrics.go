package grouping

import "github.com/prometheus/client_golang/prometheus"

var (
	groupsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "grouping",
		Name:      "groups_emitted_total",
		Help:      "Number of per-user labeled groups emitted.",
	})

	labelsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "grouping",
		Name:      "labels_emitted_total",
		Help:      "Number of (user, label) series across all emitted groups.",
	})

	filteredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "grouping",
		Name:      "users_filtered_total",
		Help:      "Number of user partitions discarded by the user filter.",
	})

	excludedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "grouping",
		Name:      "examples_excluded_total",
		Help:      "Number of examples dropped because the label mapper excluded them.",
	})
)

func init() {
	prometheus.MustRegister(groupsCounter, labelsCounter, filteredCounter, excludedCounter)
}

func recordGroupEmitted(labels int) {
	groupsCounter.Inc()
	labelsCounter.Add(float64(labels))
}

func recordUserFiltered() {
	filteredCounter.Inc()
}

func recordExampleExcluded() {
	excludedCounter.Inc()
}
