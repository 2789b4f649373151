package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secureflow/internal/models"
	"secureflow/internal/services/feature"
)

func TestExplain(t *testing.T) {
	e := NewExplainer()

	vec := []float64{1500, 3, 0, 1, 0}
	explanation := e.Explain(vec, 0.8)

	require.Len(t, explanation, feature.Count)
	for _, name := range feature.Names {
		assert.Contains(t, explanation, name)
	}

	// Extreme amount and small-hours timing push toward anomalous.
	assert.Greater(t, explanation[feature.FeatureAmount], 0.0)
	assert.Greater(t, explanation[feature.FeatureHour], 0.0)
}

func TestExplainDeterministic(t *testing.T) {
	e := NewExplainer()
	vec := []float64{75, 10, 2, 3, 1}

	first := e.Explain(vec, 0.5)
	second := e.Explain(vec, 0.5)
	assert.Equal(t, first, second)
}

func TestExplainVariesAcrossInputs(t *testing.T) {
	e := NewExplainer()

	a := e.Explain([]float64{50, 14, 1, 0, 0}, 0.45)
	b := e.Explain([]float64{51, 14, 1, 0, 0}, 0.45)
	assert.NotEqual(t, a, b)
}

func TestExplainTypicalFeaturesPushNormal(t *testing.T) {
	e := NewExplainer()

	// A transaction sitting at the center of every feature distribution.
	explanation := e.Explain([]float64{50, 14, 3, 4.5, 1}, 0.4)
	assert.Negative(t, explanation[feature.FeatureAmount])
	assert.Negative(t, explanation[feature.FeatureHour])
}

func TestTopN(t *testing.T) {
	explanation := models.Explanation{
		"amount":            2.5,
		"hour":              -1.2,
		"day_of_week":       0.3,
		"merchant_category": -0.1,
		"transaction_type":  0.05,
	}

	top := TopN(explanation, 3)
	require.Len(t, top, 3)
	assert.Contains(t, top, "amount")
	assert.Contains(t, top, "hour")
	assert.Contains(t, top, "day_of_week")

	// Values survive filtering untouched.
	assert.Equal(t, 2.5, top["amount"])
}

func TestTopNSmallMap(t *testing.T) {
	explanation := models.Explanation{"amount": 1.0}
	assert.Equal(t, explanation, TopN(explanation, 3))
}
