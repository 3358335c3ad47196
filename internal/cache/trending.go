package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/w24010/Mapmoments/internal/model"
)

const (
	// TrendingCacheKey holds the ranked trending pin list
	TrendingCacheKey = "trending:pins"

	// TrendingCacheTTL keeps the ranked list fresh without recomputing
	// on every request
	TrendingCacheTTL = 60 * time.Second
)

// TrendingCache caches the ranked trending pin list.
// Using an interface enables testing with mocks and potential future backends.
type TrendingCache interface {
	// Get returns the cached trending list. found=false on a cache
	// miss or expired key.
	Get(ctx context.Context) (pins []model.Pin, found bool, err error)

	// Set stores the ranked list with the trending TTL.
	Set(ctx context.Context, pins []model.Pin) error

	// Invalidate drops the cached list.
	Invalidate(ctx context.Context) error
}

// RedisTrendingCache implements TrendingCache using a single JSON value.
type RedisTrendingCache struct {
	client *redis.Client
}

// NewTrendingCache creates a new TrendingCache backed by Redis.
func NewTrendingCache(client *redis.Client) TrendingCache {
	return &RedisTrendingCache{client: client}
}

func (c *RedisTrendingCache) Get(ctx context.Context) ([]model.Pin, bool, error) {
	data, err := c.client.Get(ctx, TrendingCacheKey).Result()
	if err == redis.Nil {
		log.Printf("[TrendingCache] Get: MISS")
		return nil, false, nil
	}
	if err != nil {
		log.Printf("[TrendingCache] Get FAILED: err=%v", err)
		return nil, false, fmt.Errorf("get trending cache: %w", err)
	}

	var pins []model.Pin
	if err := json.Unmarshal([]byte(data), &pins); err != nil {
		log.Printf("[TrendingCache] Get unmarshal error: err=%v", err)
		return nil, false, fmt.Errorf("unmarshal trending cache: %w", err)
	}

	log.Printf("[TrendingCache] Get: HIT pins=%d", len(pins))
	return pins, true, nil
}

func (c *RedisTrendingCache) Set(ctx context.Context, pins []model.Pin) error {
	data, err := json.Marshal(pins)
	if err != nil {
		return fmt.Errorf("marshal trending cache: %w", err)
	}

	if err := c.client.Set(ctx, TrendingCacheKey, data, TrendingCacheTTL).Err(); err != nil {
		log.Printf("[TrendingCache] Set FAILED: err=%v", err)
		return fmt.Errorf("set trending cache: %w", err)
	}

	log.Printf("[TrendingCache] Set OK: pins=%d ttl=%v", len(pins), TrendingCacheTTL)
	return nil
}

func (c *RedisTrendingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, TrendingCacheKey).Err(); err != nil {
		log.Printf("[TrendingCache] Invalidate FAILED: err=%v", err)
		return fmt.Errorf("invalidate trending cache: %w", err)
	}
	return nil
}
