package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "secureflow:model:snapshot"

// ModelCache persists gob-encoded trained model snapshots so process
// restarts can skip retraining.
type ModelCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewModelCache(client *redis.Client, ttl time.Duration) *ModelCache {
	return &ModelCache{client: client, ttl: ttl}
}

// LoadSnapshot returns the stored snapshot, or (nil, nil) when none exists.
func (c *ModelCache) LoadSnapshot(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SaveSnapshot stores a snapshot with the configured TTL.
func (c *ModelCache) SaveSnapshot(ctx context.Context, data []byte) error {
	return c.client.Set(ctx, snapshotKey, data, c.ttl).Err()
}

// Ping checks Redis connectivity for health reporting.
func (c *ModelCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *ModelCache) Close() error {
	return c.client.Close()
}
