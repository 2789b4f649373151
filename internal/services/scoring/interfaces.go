package scoring

import (
	"context"
	"time"

	"secureflow/internal/models"
)

// Model is the outlier-scoring capability behind the engine. Score returns
// an anomaly score in [0,1] where higher means more anomalous.
type Model interface {
	Score(ctx context.Context, vec []float64) (float64, error)
}

// Store is the append-only persistence collaborator. Create assigns the id
// and timestamp; a returned id is visible to subsequent reads.
type Store interface {
	Create(ctx context.Context, tx *models.Transaction) error
}

// MetricsCollector records scoring-path observations.
type MetricsCollector interface {
	RecordPrediction(outcome string, duration time.Duration)
	RecordAnomaly()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPrediction(string, time.Duration) {}
func (NoopMetricsCollector) RecordAnomaly()                        {}
