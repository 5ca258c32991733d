// Package cache persists successful extraction results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kycgate/internal/kyc/evidence/ocr"
	"kycgate/pkg/platform/sentinel"
)

const keyPrefix = "kyc:ocr:"

// DefaultTTL applies when a non-positive TTL is configured.
const DefaultTTL = 10 * time.Minute

// RedisCache stores extraction results with TTL-based eviction.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache constructs a Redis-backed extraction cache.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get loads a cached result. Returns sentinel.ErrNotFound on a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (*ocr.ExtractionResult, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find extraction cache: %w", err)
	}

	var result ocr.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode extraction cache: %w", err)
	}
	return &result, nil
}

// Set writes a result, overwriting any existing entry.
func (c *RedisCache) Set(ctx context.Context, key string, result *ocr.ExtractionResult) error {
	if result == nil {
		return fmt.Errorf("extraction result is required")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode extraction cache: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("save extraction cache: %w", err)
	}
	return nil
}

var _ ocr.ResultCache = (*RedisCache)(nil)
