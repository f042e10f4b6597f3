package extract

import "github.com/prometheus/client_golang/prometheus"

var (
	extractedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "extract",
		Name:      "sessions_extracted_total",
		Help:      "Number of journal records decoded as completed sessions.",
	})

	skippedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "extract",
		Name:      "records_skipped_total",
		Help:      "Number of journal records whose payload was not a completed session.",
	})

	unclassifiedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "extract",
		Name:      "examples_unclassified_total",
		Help:      "Number of examples dropped for lacking a classification outcome.",
	})

	flattenedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "extract",
		Name:      "examples_flattened_total",
		Help:      "Number of classified examples flattened into tuples.",
	})

	readingsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "extract",
		Name:      "readings_flattened_total",
		Help:      "Number of sensor readings carried by flattened examples.",
	})
)

func init() {
	prometheus.MustRegister(extractedCounter, skippedCounter, unclassifiedCounter, flattenedCounter, readingsCounter)
}

func recordExtracted() {
	extractedCounter.Inc()
}

func recordSkipped() {
	skippedCounter.Inc()
}

func recordUnclassified() {
	unclassifiedCounter.Inc()
}

func recordFlattened(examples, readings int) {
	flattenedCounter.Add(float64(examples))
	readingsCounter.Add(float64(readings))
}
