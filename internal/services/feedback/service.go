// Package feedback records operator judgments on stored predictions and
// computes running accuracy statistics.
package feedback

import (
	"context"
	"fmt"

	"secureflow/internal/models"
)

// TransactionGetter verifies the referenced transaction exists.
type TransactionGetter interface {
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
}

// Repository is the feedback persistence collaborator.
type Repository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	Counts(ctx context.Context) (total, positive int64, err error)
}

// Service records feedback and aggregates accuracy.
type Service interface {
	Record(ctx context.Context, transactionID uint, isCorrect bool, comments string) (*models.Feedback, error)
	Stats(ctx context.Context) (*models.FeedbackStats, error)
}

type service struct {
	repo         Repository
	transactions TransactionGetter
}

func NewService(repo Repository, transactions TransactionGetter) Service {
	return &service{repo: repo, transactions: transactions}
}

// Record stores one feedback row. Fails with the transaction-not-found
// domain error when the referenced id does not exist; nothing is written in
// that case.
func (s *service) Record(ctx context.Context, transactionID uint, isCorrect bool, comments string) (*models.Feedback, error) {
	if _, err := s.transactions.GetByID(ctx, transactionID); err != nil {
		return nil, err
	}

	fb := &models.Feedback{
		TransactionID: transactionID,
		IsCorrect:     isCorrect,
		Comments:      comments,
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("record feedback: %w", err)
	}
	return fb, nil
}

// Stats scans all feedback rows. Accuracy is positive/total in [0,1] and 0
// when no feedback exists.
func (s *service) Stats(ctx context.Context) (*models.FeedbackStats, error) {
	total, positive, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("feedback stats: %w", err)
	}

	stats := &models.FeedbackStats{
		TotalFeedback:    total,
		PositiveFeedback: positive,
	}
	if total > 0 {
		stats.Accuracy = float64(positive) / float64(total)
	}
	return stats, nil
}
