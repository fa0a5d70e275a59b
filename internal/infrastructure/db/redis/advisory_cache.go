package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

const defaultAdvisoryTTL = 10 * time.Minute

// AdvisoryCache keeps generated advice for identical requests.
// Key format: advisory:<sha256 hex of role, processes and message>
type AdvisoryCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewAdvisoryCache wraps client. A non-positive ttl falls back to ten minutes.
func NewAdvisoryCache(client redis.Cmdable, ttl time.Duration) *AdvisoryCache {
	if ttl <= 0 {
		ttl = defaultAdvisoryTTL
	}
	return &AdvisoryCache{client: client, ttl: ttl}
}

// Get reports a miss as (nil, false, nil).
func (c *AdvisoryCache) Get(ctx context.Context, key string) (*domain.Advice, bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("advisory cache get: %w", err)
	}

	var advice domain.Advice
	if err := json.Unmarshal(raw, &advice); err != nil {
		return nil, false, fmt.Errorf("advisory cache decode: %w", err)
	}
	return &advice, true, nil
}

func (c *AdvisoryCache) Set(ctx context.Context, key string, advice *domain.Advice) error {
	raw, err := json.Marshal(advice)
	if err != nil {
		return fmt.Errorf("advisory cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(key), raw, c.ttl).Err()
}

func (c *AdvisoryCache) key(k string) string {
	return "advisory:" + k
}
