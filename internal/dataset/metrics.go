package dataset

import "github.com/prometheus/client_golang/prometheus"

var (
	filesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "dataset",
		Name:      "files_written_total",
		Help:      "Number of dataset files successfully written.",
	})

	rowsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "dataset",
		Name:      "rows_written_total",
		Help:      "Number of reading rows written across all dataset files.",
	})

	prepareFailureCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "dataset",
		Name:      "directory_prepare_failures_total",
		Help:      "Number of user directories that could not be deleted or recreated.",
	})

	nonTriaxialCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "training_data",
		Subsystem: "dataset",
		Name:      "non_triaxial_readings_total",
		Help:      "Number of readings rejected by the row encoder for missing axes.",
	})
)

func init() {
	prometheus.MustRegister(filesCounter, rowsCounter, prepareFailureCounter, nonTriaxialCounter)
}

func recordFileWritten(rows int) {
	filesCounter.Inc()
	rowsCounter.Add(float64(rows))
}

func recordPrepareFailure() {
	prepareFailureCounter.Inc()
}

func recordNonTriaxial() {
	nonTriaxialCounter.Inc()
}
