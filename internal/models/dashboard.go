package models

// ScoreAggregate holds raw aggregates scanned from the transactions table.
type ScoreAggregate struct {
	TotalTransactions int64
	AnomaliesDetected int64
	AvgAnomalyScore   float64
}

// HourlyBucket is one of the 24 fixed hour-of-day buckets. Bucketing follows
// the stored hour field, not the calendar date of created_at.
type HourlyBucket struct {
	Hour              int   `json:"hour"`
	TotalTransactions int64 `json:"total_transactions"`
	Anomalies         int64 `json:"anomalies"`
}

// FeedbackStats summarizes operator feedback. Accuracy is positive/total in
// [0,1], zero when no feedback exists.
type FeedbackStats struct {
	TotalFeedback    int64   `json:"total_feedback"`
	PositiveFeedback int64   `json:"positive_feedback"`
	Accuracy         float64 `json:"accuracy"`
}

// DashboardStats is the headline block of the dashboard payload. AnomalyRate
// is a percentage to match the historical API shape.
type DashboardStats struct {
	TotalTransactions int64   `json:"total_transactions"`
	AnomaliesDetected int64   `json:"anomalies_detected"`
	AvgAnomalyScore   float64 `json:"avg_anomaly_score"`
	AnomalyRate       float64 `json:"anomaly_rate"`
}

// DashboardData is the full dashboard response, recomputed from the store on
// every read.
type DashboardData struct {
	Stats              DashboardStats `json:"stats"`
	HourlyDistribution []HourlyBucket `json:"hourly_distribution"`
	Feedback           FeedbackStats  `json:"feedback"`
}
