package model

import (
	"bytes"
	"context"
	"encoding/gob"
	"log"
	"sync"

	"github.com/google/uuid"

	apperrors "secureflow/internal/errors"
	"secureflow/internal/services/feature"
)

// SnapshotCache persists trained model snapshots between process restarts.
// LoadSnapshot returns (nil, nil) when no snapshot exists.
type SnapshotCache interface {
	LoadSnapshot(ctx context.Context) ([]byte, error)
	SaveSnapshot(ctx context.Context, data []byte) error
}

// Config holds the forest and training-set parameters.
type Config struct {
	Trees         int
	SampleSize    int
	Contamination float64
	Synthetic     SyntheticConfig
}

// DefaultConfig returns the production model parameters.
func DefaultConfig() Config {
	return Config{
		Trees:         100,
		SampleSize:    256,
		Contamination: 0.1,
		Synthetic:     DefaultSyntheticConfig(),
	}
}

// Snapshot bundles everything needed to restore a trained model: the forest,
// the scaler it was fit with, and the version assigned at fit time.
type Snapshot struct {
	Version string
	Scaler  feature.Scaler
	Forest  []byte
}

// Provider owns the process-wide model instance. Initialization happens at
// most once, on first use; concurrent first calls block on the same init.
// After initialization the forest and scaler are read-only.
type Provider struct {
	cfg   Config
	cache SnapshotCache

	once    sync.Once
	mu      sync.RWMutex
	forest  *Forest
	scaler  *feature.Scaler
	version string
	initErr error
}

// NewProvider creates a Provider. cache may be nil, in which case every
// process start trains from scratch.
func NewProvider(cfg Config, cache SnapshotCache) *Provider {
	return &Provider{cfg: cfg, cache: cache}
}

// Score standardizes the vector and returns its anomaly score in [0,1].
// Triggers lazy initialization on first call.
func (p *Provider) Score(ctx context.Context, vec []float64) (float64, error) {
	if err := p.ensure(ctx); err != nil {
		return 0, err
	}
	score, err := p.forest.Score(p.scaler.Transform(vec))
	if err != nil {
		return 0, apperrors.ModelUnavailable(err)
	}
	return score, nil
}

// Loaded reports whether the model initialized successfully. It never
// triggers initialization.
func (p *Provider) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version != "" && p.initErr == nil
}

// Version returns the model version id, or empty before initialization.
func (p *Provider) Version() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// CalibratedThreshold returns the contamination-percentile score cutoff of
// the trained forest, triggering initialization if needed.
func (p *Provider) CalibratedThreshold(ctx context.Context) (float64, error) {
	if err := p.ensure(ctx); err != nil {
		return 0, err
	}
	return p.forest.Threshold(), nil
}

func (p *Provider) ensure(ctx context.Context) error {
	p.once.Do(func() { p.init(ctx) })
	if p.initErr != nil {
		return apperrors.ModelUnavailable(p.initErr)
	}
	return nil
}

func (p *Provider) init(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cache != nil {
		if data, err := p.cache.LoadSnapshot(ctx); err != nil {
			log.Printf("model snapshot load failed, training from scratch: %v", err)
		} else if data != nil {
			if err := p.restore(data); err == nil {
				log.Printf("model %s restored from snapshot", p.version)
				return
			} else {
				log.Printf("model snapshot corrupt, training from scratch: %v", err)
			}
		}
	}

	snap, err := Train(p.cfg)
	if err != nil {
		p.initErr = err
		return
	}
	if err := p.restore(snap); err != nil {
		p.initErr = err
		return
	}
	log.Printf("model %s trained (threshold %.4f)", p.version, p.forest.Threshold())

	if p.cache != nil {
		if err := p.cache.SaveSnapshot(ctx, snap); err != nil {
			log.Printf("model snapshot save failed: %v", err)
		}
	}
}

func (p *Provider) restore(data []byte) error {
	snap, forest, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	p.version = snap.Version
	p.scaler = &snap.Scaler
	p.forest = forest
	return nil
}

// Train fits a scaler and forest on a fresh synthetic training set and
// returns the encoded snapshot. Used by the lazy init path and by the admin
// CLI for offline training.
func Train(cfg Config) ([]byte, error) {
	raw := GenerateTrainingSet(cfg.Synthetic)
	scaler := feature.FitScaler(raw)

	forest := NewForest(
		WithTrees(cfg.Trees),
		WithSampleSize(cfg.SampleSize),
		WithContamination(cfg.Contamination),
		WithSeed(cfg.Synthetic.Seed),
	)
	if err := forest.Fit(scaler.TransformAll(raw)); err != nil {
		return nil, err
	}

	forestBytes, err := forest.Save()
	if err != nil {
		return nil, err
	}

	return EncodeSnapshot(Snapshot{
		Version: uuid.NewString(),
		Scaler:  *scaler,
		Forest:  forestBytes,
	})
}

// EncodeSnapshot gob-encodes a snapshot.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot decodes a snapshot and restores the forest inside it.
func DecodeSnapshot(data []byte) (*Snapshot, *Forest, error) {
	var snap Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, nil, err
	}
	forest := NewForest()
	if err := forest.Load(snap.Forest); err != nil {
		return nil, nil, err
	}
	return &snap, forest, nil
}
