package scoring

import "secureflow/internal/models"

// RiskTier is the coarse classification derived from the anomaly score.
type RiskTier string

const (
	TierLow    RiskTier = "low"
	TierMedium RiskTier = "medium"
	TierHigh   RiskTier = "high"
)

// Classification is the decision derived from one anomaly score.
type Classification struct {
	IsAnomaly  bool
	Tier       RiskTier
	Confidence float64
}

// Result is a completed, persisted scoring outcome. Transaction carries the
// stored record including the full explanation; TopFactors is the top-N
// filtered view returned to callers.
type Result struct {
	Transaction    *models.Transaction
	Classification Classification
	TopFactors     models.Explanation
}

// BatchItem is one slot of a batch run: either a Result or the error that
// stopped that item. Index always matches the input position.
type BatchItem struct {
	Index  int
	Result *Result
	Err    error
}
