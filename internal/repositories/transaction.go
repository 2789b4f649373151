package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "secureflow/internal/errors"
	"secureflow/internal/models"
)

// TransactionRepository is the append-only store for scored transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	List(ctx context.Context, limit, offset int) ([]models.Transaction, int64, error)
	AggregateStats(ctx context.Context, since time.Time) (*models.ScoreAggregate, error)
	HourlyDistribution(ctx context.Context, since time.Time) ([]models.HourlyBucket, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).First(&tx, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) List(ctx context.Context, limit, offset int) ([]models.Transaction, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&txs).Error
	return txs, total, err
}

func (r *transactionRepository) AggregateStats(ctx context.Context, since time.Time) (*models.ScoreAggregate, error) {
	var agg models.ScoreAggregate
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("created_at >= ?", since).
		Select("COUNT(*) as total_transactions, " +
			"COALESCE(SUM(CASE WHEN is_anomaly THEN 1 ELSE 0 END), 0) as anomalies_detected, " +
			"COALESCE(AVG(anomaly_score), 0) as avg_anomaly_score").
		Row().Scan(&agg.TotalTransactions, &agg.AnomaliesDetected, &agg.AvgAnomalyScore)
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *transactionRepository) HourlyDistribution(ctx context.Context, since time.Time) ([]models.HourlyBucket, error) {
	rows, err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("created_at >= ?", since).
		Select("hour, COUNT(*) as total, " +
			"COALESCE(SUM(CASE WHEN is_anomaly THEN 1 ELSE 0 END), 0) as anomalies").
		Group("hour").
		Order("hour").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []models.HourlyBucket
	for rows.Next() {
		var b models.HourlyBucket
		if err := rows.Scan(&b.Hour, &b.TotalTransactions, &b.Anomalies); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}
