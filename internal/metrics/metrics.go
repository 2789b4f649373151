// Package metrics exposes Prometheus collectors for the scoring path.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels persisted predictions.
	OutcomeSuccess = "success"
	// OutcomeError labels failed predictions (validation, model or store).
	OutcomeError = "error"
)

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "secureflow",
			Name:      "predictions_total",
			Help:      "Total number of prediction requests handled, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	predictionSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "secureflow",
			Name:      "prediction_seconds",
			Help:      "Prediction latency in seconds, including persistence.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	anomaliesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "secureflow",
			Name:      "anomalies_total",
			Help:      "Total number of transactions flagged anomalous.",
		},
	)
)

// Register attaches the scoring collectors to the supplied registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		predictionsTotal,
		predictionSeconds,
		anomaliesTotal,
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// Collector implements the scoring engine's MetricsCollector interface.
type Collector struct{}

func (Collector) RecordPrediction(outcome string, duration time.Duration) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	predictionsTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	predictionSeconds.Observe(duration.Seconds())
}

func (Collector) RecordAnomaly() {
	anomaliesTotal.Inc()
}
