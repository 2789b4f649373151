// Package model provides the pluggable outlier model behind the scoring
// engine: an isolation forest, its synthetic training set, and a process-wide
// provider that owns lazy initialization.
package model

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math"
	"math/rand"
	"sort"
	"sync"
)

// Forest is an isolation-forest outlier model. Scores are normalized to
// [0,1]; higher means more anomalous. After Fit the tree structure is
// read-only and safe for concurrent Score calls.
type Forest struct {
	mu sync.RWMutex

	treeCount     int
	sampleSize    int
	contamination float64
	maxDepth      int
	rng           *rand.Rand

	trees     []*splitNode
	trained   bool
	threshold float64

	// normalization constant from training
	avgPathLength float64
}

// splitNode is a node of one isolation tree. Fields are exported for gob
// snapshot serialization.
type splitNode struct {
	Feature int
	Value   float64
	Left    *splitNode
	Right   *splitNode
	Size    int
}

// Option configures a Forest.
type Option func(*Forest)

// WithTrees sets the number of isolation trees.
func WithTrees(n int) Option {
	return func(f *Forest) { f.treeCount = n }
}

// WithSampleSize sets the subsample size used to grow each tree.
func WithSampleSize(n int) Option {
	return func(f *Forest) { f.sampleSize = n }
}

// WithContamination sets the expected anomaly proportion used to calibrate
// the suggested threshold after fitting.
func WithContamination(c float64) Option {
	return func(f *Forest) { f.contamination = c }
}

// WithSeed fixes the random source for reproducible forests.
func WithSeed(seed int64) Option {
	return func(f *Forest) { f.rng = rand.New(rand.NewSource(seed)) }
}

// NewForest creates a Forest with the given options.
func NewForest(opts ...Option) *Forest {
	f := &Forest{
		treeCount:     100,
		sampleSize:    256,
		contamination: 0.1,
		threshold:     0.5,
		rng:           rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.maxDepth = int(math.Ceil(math.Log2(float64(f.sampleSize))))
	return f
}

// Fit trains the forest on the given samples and calibrates the suggested
// threshold from the contamination percentile of the training scores.
// Fitting replaces any previous model.
func (f *Forest) Fit(data [][]float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(data) == 0 {
		return errors.New("empty training data")
	}

	nSamples := len(data)
	nFeatures := len(data[0])

	sampleSize := f.sampleSize
	if sampleSize > nSamples {
		sampleSize = nSamples
	}

	f.trees = make([]*splitNode, f.treeCount)
	for i := 0; i < f.treeCount; i++ {
		indices := f.rng.Perm(nSamples)[:sampleSize]
		sample := make([][]float64, sampleSize)
		for j, idx := range indices {
			sample[j] = data[idx]
		}
		f.trees[i] = f.grow(sample, nFeatures, 0)
	}

	f.avgPathLength = expectedPathLength(float64(sampleSize))
	f.trained = true

	if f.contamination > 0 {
		scores := make([]float64, len(data))
		for i, row := range data {
			scores[i] = f.score(row)
		}
		f.threshold = percentile(scores, 100*(1-f.contamination))
	}

	return nil
}

func (f *Forest) grow(data [][]float64, nFeatures, depth int) *splitNode {
	n := len(data)
	if depth >= f.maxDepth || n <= 1 {
		return &splitNode{Size: n}
	}

	feat := f.rng.Intn(nFeatures)

	minVal, maxVal := data[0][feat], data[0][feat]
	for _, row := range data[1:] {
		if row[feat] < minVal {
			minVal = row[feat]
		}
		if row[feat] > maxVal {
			maxVal = row[feat]
		}
	}
	if minVal == maxVal {
		return &splitNode{Size: n}
	}

	split := minVal + f.rng.Float64()*(maxVal-minVal)

	var left, right [][]float64
	for _, row := range data {
		if row[feat] < split {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}

	return &splitNode{
		Feature: feat,
		Value:   split,
		Left:    f.grow(left, nFeatures, depth+1),
		Right:   f.grow(right, nFeatures, depth+1),
	}
}

// Score returns the anomaly score for one sample in [0,1].
func (f *Forest) Score(sample []float64) (float64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.trained {
		return 0, errors.New("model not trained")
	}
	return f.score(sample), nil
}

func (f *Forest) score(sample []float64) float64 {
	var totalPath float64
	for _, root := range f.trees {
		totalPath += pathLength(sample, root, 0)
	}
	avgPath := totalPath / float64(len(f.trees))

	// s(x) = 2^(-E[path] / c(n)); deeper isolation means lower score.
	return math.Pow(2, -avgPath/f.avgPathLength)
}

// Trained reports whether Fit has completed.
func (f *Forest) Trained() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.trained
}

// Threshold returns the contamination-calibrated score cutoff computed at
// fit time.
func (f *Forest) Threshold() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.threshold
}

func pathLength(sample []float64, n *splitNode, depth int) float64 {
	if n.Left == nil && n.Right == nil {
		return float64(depth) + expectedPathLength(float64(n.Size))
	}
	if sample[n.Feature] < n.Value {
		return pathLength(sample, n.Left, depth+1)
	}
	return pathLength(sample, n.Right, depth+1)
}

// expectedPathLength is the average unsuccessful-search path length of a BST
// with n nodes: c(n) = 2*H(n-1) - 2*(n-1)/n.
func expectedPathLength(n float64) float64 {
	if n <= 1 {
		return 0
	}
	return 2*(math.Log(n-1)+0.5772156649) - 2*(n-1)/n
}

func percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

// forestState is the gob-serializable form of a trained forest.
type forestState struct {
	TreeCount     int
	SampleSize    int
	Contamination float64
	Threshold     float64
	AvgPathLength float64
	Trees         []*splitNode
}

// Save serializes the trained forest.
func (f *Forest) Save() ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.trained {
		return nil, errors.New("model not trained")
	}

	var buf bytes.Buffer
	state := forestState{
		TreeCount:     f.treeCount,
		SampleSize:    f.sampleSize,
		Contamination: f.contamination,
		Threshold:     f.threshold,
		AvgPathLength: f.avgPathLength,
		Trees:         f.trees,
	}
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load restores a trained forest from its serialized form.
func (f *Forest) Load(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var state forestState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}

	f.treeCount = state.TreeCount
	f.sampleSize = state.SampleSize
	f.contamination = state.Contamination
	f.threshold = state.Threshold
	f.avgPathLength = state.AvgPathLength
	f.trees = state.Trees
	f.maxDepth = int(math.Ceil(math.Log2(float64(f.sampleSize))))
	f.trained = true

	return nil
}
