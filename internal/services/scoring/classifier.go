package scoring

import "math"

const defaultConfidenceSpan = 0.2

// Classifier converts an anomaly score into a flag, risk tier and
// confidence using a single configurable cutoff. Deterministic: identical
// scores always produce identical classifications.
type Classifier struct {
	threshold      float64
	bandDelta      float64
	confidenceSpan float64
}

// NewClassifier creates a Classifier. threshold is the anomaly cutoff T;
// bandDelta is the width of the medium band [T, T+delta).
func NewClassifier(threshold, bandDelta float64) *Classifier {
	return &Classifier{
		threshold:      threshold,
		bandDelta:      bandDelta,
		confidenceSpan: defaultConfidenceSpan,
	}
}

// Classify derives the decision for one score. IsAnomaly is monotonic
// non-decreasing in the score for a fixed threshold.
func (c *Classifier) Classify(score float64) Classification {
	isAnomaly := score >= c.threshold

	tier := TierLow
	switch {
	case score >= c.threshold+c.bandDelta:
		tier = TierHigh
	case isAnomaly:
		tier = TierMedium
	}

	// Confidence grows linearly with distance from the decision boundary.
	confidence := math.Abs(score-c.threshold) / c.confidenceSpan
	if confidence > 1 {
		confidence = 1
	}

	return Classification{
		IsAnomaly:  isAnomaly,
		Tier:       tier,
		Confidence: confidence,
	}
}

// Threshold returns the configured cutoff.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}
