// Package dashboard computes derived statistics over stored transactions
// and feedback. Pure read side: aggregates are recomputed on every call,
// never cached, and nothing is mutated.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"secureflow/internal/models"
)

// TransactionReader is the read-side slice of the transaction store.
type TransactionReader interface {
	AggregateStats(ctx context.Context, since time.Time) (*models.ScoreAggregate, error)
	HourlyDistribution(ctx context.Context, since time.Time) ([]models.HourlyBucket, error)
}

// FeedbackReader tallies feedback within the window.
type FeedbackReader interface {
	CountsSince(ctx context.Context, since time.Time) (total, positive int64, err error)
}

// DefaultWindow matches the historical 7-day dashboard view.
const DefaultWindow = 7 * 24 * time.Hour

type Service interface {
	Summary(ctx context.Context, window time.Duration) (*models.DashboardData, error)
}

type service struct {
	transactions TransactionReader
	feedback     FeedbackReader
}

func NewService(transactions TransactionReader, feedback FeedbackReader) Service {
	return &service{transactions: transactions, feedback: feedback}
}

// Summary computes the dashboard payload for the trailing window. Rates are
// percentages to match the historical API shape.
func (s *service) Summary(ctx context.Context, window time.Duration) (*models.DashboardData, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	since := time.Now().Add(-window)

	agg, err := s.transactions.AggregateStats(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard aggregates: %w", err)
	}

	hourly, err := s.transactions.HourlyDistribution(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard hourly distribution: %w", err)
	}

	fbTotal, fbPositive, err := s.feedback.CountsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard feedback: %w", err)
	}

	data := &models.DashboardData{
		Stats: models.DashboardStats{
			TotalTransactions: agg.TotalTransactions,
			AnomaliesDetected: agg.AnomaliesDetected,
			AvgAnomalyScore:   agg.AvgAnomalyScore,
		},
		HourlyDistribution: fillHourlyBuckets(hourly),
		Feedback: models.FeedbackStats{
			TotalFeedback:    fbTotal,
			PositiveFeedback: fbPositive,
		},
	}
	if agg.TotalTransactions > 0 {
		data.Stats.AnomalyRate = float64(agg.AnomaliesDetected) / float64(agg.TotalTransactions) * 100
	}
	if fbTotal > 0 {
		data.Feedback.Accuracy = float64(fbPositive) / float64(fbTotal) * 100
	}
	return data, nil
}

// fillHourlyBuckets expands sparse query results into the 24 fixed buckets,
// keyed by the stored hour field.
func fillHourlyBuckets(sparse []models.HourlyBucket) []models.HourlyBucket {
	buckets := make([]models.HourlyBucket, 24)
	for h := range buckets {
		buckets[h].Hour = h
	}
	for _, b := range sparse {
		if b.Hour >= 0 && b.Hour < 24 {
			buckets[b.Hour].TotalTransactions = b.TotalTransactions
			buckets[b.Hour].Anomalies = b.Anomalies
		}
	}
	return buckets
}
