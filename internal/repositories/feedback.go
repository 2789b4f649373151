package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"secureflow/internal/models"
)

// FeedbackRepository stores operator feedback rows. Append-only.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	Counts(ctx context.Context) (total, positive int64, err error)
	CountsSince(ctx context.Context, since time.Time) (total, positive int64, err error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *feedbackRepository) Counts(ctx context.Context) (int64, int64, error) {
	var total, positive int64
	err := r.db.WithContext(ctx).Model(&models.Feedback{}).
		Select("COUNT(*), COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0)").
		Row().Scan(&total, &positive)
	return total, positive, err
}

// CountsSince restricts the tally to feedback on transactions scored within
// the window.
func (r *feedbackRepository) CountsSince(ctx context.Context, since time.Time) (int64, int64, error) {
	var total, positive int64
	err := r.db.WithContext(ctx).Model(&models.Feedback{}).
		Joins("JOIN transactions ON transactions.id = feedbacks.transaction_id").
		Where("transactions.created_at >= ?", since).
		Select("COUNT(*), COALESCE(SUM(CASE WHEN feedbacks.is_correct THEN 1 ELSE 0 END), 0)").
		Row().Scan(&total, &positive)
	return total, positive, err
}
