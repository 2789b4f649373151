// Package scoring implements the transaction anomaly scoring engine:
// normalize, score, classify, explain, persist. The batch path reuses the
// single-transaction path verbatim, isolating per-item failures.
package scoring

import (
	"context"
	"time"

	apperrors "secureflow/internal/errors"
	"secureflow/internal/models"
	"secureflow/internal/services/feature"
)

// Service is the engine's public surface.
type Service interface {
	ScoreTransaction(ctx context.Context, raw feature.RawTransaction) (*Result, error)
	ScoreBatch(ctx context.Context, raws []feature.RawTransaction) []BatchItem
}

type service struct {
	normalizer *feature.Normalizer
	model      Model
	classifier *Classifier
	explainer  *Explainer
	store      Store
	metrics    MetricsCollector
	workers    int
}

// Config holds the engine's tunables.
type Config struct {
	// BatchWorkers bounds batch parallelism. Values below 1 mean
	// sequential processing.
	BatchWorkers int
}

// NewService wires the engine. metrics may be nil.
func NewService(normalizer *feature.Normalizer, model Model, classifier *Classifier, explainer *Explainer, store Store, metrics MetricsCollector, cfg Config) Service {
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	workers := cfg.BatchWorkers
	if workers < 1 {
		workers = 1
	}
	return &service{
		normalizer: normalizer,
		model:      model,
		classifier: classifier,
		explainer:  explainer,
		store:      store,
		metrics:    metrics,
		workers:    workers,
	}
}

// ScoreTransaction runs the full single-transaction path. Validation and
// model errors abort the request; a prediction is never reported as
// successful unless the record was persisted.
func (s *service) ScoreTransaction(ctx context.Context, raw feature.RawTransaction) (*Result, error) {
	start := time.Now()

	result, err := s.score(ctx, raw)
	if err != nil {
		s.metrics.RecordPrediction("error", time.Since(start))
		return nil, err
	}

	s.metrics.RecordPrediction("success", time.Since(start))
	if result.Transaction.IsAnomaly {
		s.metrics.RecordAnomaly()
	}
	return result, nil
}

func (s *service) score(ctx context.Context, raw feature.RawTransaction) (*Result, error) {
	vec, err := s.normalizer.Normalize(raw)
	if err != nil {
		return nil, err
	}

	score, err := s.model.Score(ctx, vec)
	if err != nil {
		return nil, err
	}

	classification := s.classifier.Classify(score)
	explanation := s.explainer.Explain(vec, score)

	tx := &models.Transaction{
		Amount:           vec[0],
		Hour:             int(vec[1]),
		DayOfWeek:        int(vec[2]),
		MerchantCategory: int(vec[3]),
		TransactionType:  int(vec[4]),
		AnomalyScore:     score,
		IsAnomaly:        classification.IsAnomaly,
		Explanation:      explanation,
	}
	if err := s.store.Create(ctx, tx); err != nil {
		return nil, apperrors.Persistence("transaction append", err)
	}

	return &Result{
		Transaction:    tx,
		Classification: classification,
		TopFactors:     TopN(explanation, DefaultTopFactors),
	}, nil
}
