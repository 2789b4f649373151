package model

import (
	"math"
	"math/rand"

	"secureflow/internal/models"
)

// SyntheticConfig controls the synthetic training set. The defaults mirror
// the distribution the production model was originally calibrated on:
// typical card activity around $50 in the afternoon, with a small population
// of high-value small-hours outliers.
type SyntheticConfig struct {
	NormalCount  int
	AnomalyCount int
	Seed         int64
}

// DefaultSyntheticConfig returns the standard training-set parameters.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		NormalCount:  10000,
		AnomalyCount: 200,
		Seed:         42,
	}
}

var anomalousHours = []int{2, 3, 4, 23}

// GenerateTrainingSet produces feature vectors in canonical order:
// amount, hour, day_of_week, merchant_category, transaction_type.
func GenerateTrainingSet(cfg SyntheticConfig) [][]float64 {
	rng := rand.New(rand.NewSource(cfg.Seed))
	data := make([][]float64, 0, cfg.NormalCount+cfg.AnomalyCount)

	for i := 0; i < cfg.NormalCount; i++ {
		data = append(data, []float64{
			math.Abs(rng.NormFloat64()*30 + 50),
			clampHour(rng.NormFloat64()*4 + 14),
			float64(rng.Intn(7)),
			float64(rng.Intn(models.CategoryCount)),
			float64(rng.Intn(models.TypeCount)),
		})
	}

	for i := 0; i < cfg.AnomalyCount; i++ {
		data = append(data, []float64{
			math.Abs(rng.NormFloat64()*200 + 500),
			float64(anomalousHours[rng.Intn(len(anomalousHours))]),
			float64(rng.Intn(7)),
			float64(rng.Intn(models.CategoryCount)),
			float64(rng.Intn(models.TypeCount)),
		})
	}

	return data
}

func clampHour(h float64) float64 {
	h = math.Round(h)
	if h < 0 {
		return 0
	}
	if h > 23 {
		return 23
	}
	return h
}
