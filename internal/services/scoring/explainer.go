package scoring

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"

	"secureflow/internal/models"
	"secureflow/internal/services/feature"
)

// DefaultTopFactors is how many attribution entries are surfaced to callers.
const DefaultTopFactors = 3

// typical per-feature location and spread, matching the distribution the
// model trains on. Deviation from these is what the attribution measures.
type featureRef struct {
	name string
	mean float64
	std  float64
}

var featureRefs = []featureRef{
	{feature.FeatureAmount, 50, 30},
	{feature.FeatureHour, 14, 4},
	{feature.FeatureDayOfWeek, 3, 2},
	{feature.FeatureMerchantCategory, 4.5, 3},
	{feature.FeatureTransactionType, 1, 1},
}

// expected |z| of a standard normal draw; features deviating less than this
// are treated as pushing toward "normal".
const typicalAbsZ = 0.8

// Explainer produces per-feature attribution maps approximating each
// feature's contribution to a score. A heuristic stand-in kept behind the
// same shape a real Shapley estimator would have.
type Explainer struct {
	jitter float64
}

// NewExplainer creates an Explainer with a small jitter amplitude so bulk
// scoring does not produce a dataset of bit-identical explanations.
func NewExplainer() *Explainer {
	return &Explainer{jitter: 0.01}
}

// Explain returns one signed attribution per feature. Positive values push
// toward anomalous. Deterministic for identical vectors: the jitter source
// is seeded from the vector itself, never shared between requests.
func (e *Explainer) Explain(vec []float64, score float64) models.Explanation {
	rng := rand.New(rand.NewSource(vectorSeed(vec)))

	out := make(models.Explanation, len(featureRefs))
	for i, ref := range featureRefs {
		if i >= len(vec) {
			break
		}
		z := (vec[i] - ref.mean) / ref.std
		attr := (math.Abs(z) - typicalAbsZ) * 0.1 * (0.5 + score)
		attr += e.jitter * (rng.Float64()*2 - 1)
		out[ref.name] = attr
	}
	return out
}

// TopN returns the n entries with the largest absolute attribution.
func TopN(explanation models.Explanation, n int) models.Explanation {
	if len(explanation) <= n {
		return explanation
	}

	type entry struct {
		name  string
		value float64
	}
	entries := make([]entry, 0, len(explanation))
	for name, value := range explanation {
		entries = append(entries, entry{name, value})
	}
	sort.Slice(entries, func(i, j int) bool {
		return math.Abs(entries[i].value) > math.Abs(entries[j].value)
	})

	out := make(models.Explanation, n)
	for _, e := range entries[:n] {
		out[e.name] = e.value
	}
	return out
}

// vectorSeed derives a per-request RNG seed from the vector bits.
func vectorSeed(vec []float64) int64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range vec {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return int64(h.Sum64())
}
