package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(0.6, 0.1)

	tests := []struct {
		name        string
		score       float64
		wantAnomaly bool
		wantTier    RiskTier
	}{
		{"well below threshold", 0.2, false, TierLow},
		{"just below threshold", 0.59, false, TierLow},
		{"exactly at threshold", 0.6, true, TierMedium},
		{"inside medium band", 0.65, true, TierMedium},
		{"inside high band", 0.75, true, TierHigh},
		{"far above threshold", 0.95, true, TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.score)
			assert.Equal(t, tt.wantAnomaly, got.IsAnomaly)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(0.6, 0.1)
	assert.Equal(t, c.Classify(0.73), c.Classify(0.73))
}

func TestClassifyMonotonic(t *testing.T) {
	c := NewClassifier(0.5, 0.1)

	// Raising the score never flips the flag from anomalous back to normal.
	flagged := false
	for score := 0.0; score <= 1.0; score += 0.01 {
		got := c.Classify(score)
		if flagged {
			assert.True(t, got.IsAnomaly, "flag regressed at score %.2f", score)
		}
		flagged = flagged || got.IsAnomaly
	}
	assert.True(t, flagged)
}

func TestClassifyConfidenceGrowsWithDistance(t *testing.T) {
	c := NewClassifier(0.5, 0.1)

	near := c.Classify(0.51).Confidence
	far := c.Classify(0.69).Confidence
	assert.Greater(t, far, near)

	// Clamped at the extremes.
	assert.Equal(t, 1.0, c.Classify(1.0).Confidence)
	assert.Equal(t, 1.0, c.Classify(0.0).Confidence)
}
