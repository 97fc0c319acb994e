package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"landing-sequencer-service/internal/domain"
	"landing-sequencer-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "alp:result:"

// RedisResultCache is a Redis-backed cache of sequencing results keyed by
// dataset fingerprint. Entries expire after TTL; a zero TTL keeps them
// until evicted.
type RedisResultCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{Client: client, TTL: ttl}
}

// Fetch a cached result for the fingerprint.
func (c *RedisResultCache) Get(
	ctx context.Context,
	fingerprint string,
) (_ *domain.SchedulingResult, _ bool, err error) {
	defer obs.Time(ctx, "result.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("result cache: client is nil")
	}

	if strings.TrimSpace(fingerprint) == "" {
		return nil, false, errors.New("get result cache: fingerprint must not be empty")
	}

	raw, err := c.Client.Get(ctx, keyPrefix+fingerprint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get result cache: redis get: %w", err)
	}

	var result domain.SchedulingResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false, fmt.Errorf("get result cache: decode %q: %w", fingerprint, err)
	}

	return &result, true, nil
}

// Store a result under the fingerprint.
func (c *RedisResultCache) Put(
	ctx context.Context,
	fingerprint string,
	result *domain.SchedulingResult,
) error {
	if c.Client == nil {
		return errors.New("result cache: client is nil")
	}

	if strings.TrimSpace(fingerprint) == "" {
		return errors.New("insert result cache: fingerprint must not be empty")
	}

	if result == nil {
		return errors.New("insert result cache: result is nil")
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("insert result cache: encode: %w", err)
	}

	if err := c.Client.Set(ctx, keyPrefix+fingerprint, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert result cache fingerprint=%q: %w", fingerprint, err)
	}

	return nil
}
