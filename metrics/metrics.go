package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// AttemptsTotal counts identification attempts by outcome. The result
	// label is "ok" or the failure kind (encode, transport, parse,
	// validation, unknown).
	AttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treeid",
		Subsystem: "identifier",
		Name:      "attempts_total",
		Help:      "Total number of identification attempts, labeled by result.",
	}, []string{"result"})

	// AttemptDurationSeconds is end-to-end time per attempt, measured around
	// the model call plus parsing.
	AttemptDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "treeid",
		Subsystem: "identifier",
		Name:      "attempt_duration_seconds",
		Help:      "End-to-end time of an identification attempt (model call + parsing).",
		// Keep buckets fairly coarse to avoid high-cardinality time series.
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60},
	}, []string{"result"})

	// UploadBytes tracks the size of uploaded images.
	UploadBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "treeid",
		Subsystem: "identifier",
		Name:      "upload_bytes",
		Help:      "Size of uploaded images in bytes.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
	})
)

// Register registers identifier metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			AttemptsTotal,
			AttemptDurationSeconds,
			UploadBytes,
		)
	})
}
