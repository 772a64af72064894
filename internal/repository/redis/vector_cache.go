package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"offerPilot/business/recommend"

	"github.com/redis/go-redis/v9"
)

type VectorCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ recommend.VectorCache = (*VectorCache)(nil)

func NewVectorCache(client *redis.Client, ttl time.Duration) *VectorCache {
	return &VectorCache{
		client: client,
		ttl:    ttl,
	}
}

// GetVectors returns the cached embeddings for the given keys. Missing or
// unreadable entries are simply absent from the result map.
func (c *VectorCache) GetVectors(ctx context.Context, keys []string) (map[string][]float64, error) {
	if len(keys) == 0 {
		return map[string][]float64{}, nil
	}

	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get vectors from Redis: %w", err)
	}

	vectors := make(map[string][]float64, len(keys))
	for i, val := range vals {
		raw, ok := val.(string)
		if !ok {
			continue
		}

		var vec []float64
		if err := json.Unmarshal([]byte(raw), &vec); err != nil {
			continue
		}
		vectors[keys[i]] = vec
	}

	return vectors, nil
}

func (c *VectorCache) SetVectors(ctx context.Context, vectors map[string][]float64) error {
	if len(vectors) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for key, vec := range vectors {
		jsonData, err := json.Marshal(vec)
		if err != nil {
			return fmt.Errorf("failed to marshal vector: %w", err)
		}
		pipe.Set(ctx, key, jsonData, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store vectors in Redis: %w", err)
	}

	return nil
}
