package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freshbins/freshbins-api/internal/entity"
)

// notCovered is the cached value for an outward code with no service area,
// so repeated checks for uncovered postcodes don't hit postgres each time.
const notCovered = "none"

type AreaCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAreaCache(rdb *redis.Client, ttl time.Duration) *AreaCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AreaCache{rdb: rdb, ttl: ttl}
}

func key(outward string) string {
	return "area:" + outward
}

func (c *AreaCache) Get(ctx context.Context, outward string) (*entity.ServiceArea, bool, error) {
	val, err := c.rdb.Get(ctx, key(outward)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if val == notCovered {
		return nil, true, nil
	}

	var area entity.ServiceArea
	if err := json.Unmarshal([]byte(val), &area); err != nil {
		// stale or corrupt entry, treat as a miss
		return nil, false, nil
	}
	return &area, true, nil
}

func (c *AreaCache) Set(ctx context.Context, outward string, area *entity.ServiceArea) error {
	if area == nil {
		return c.rdb.Set(ctx, key(outward), notCovered, c.ttl).Err()
	}
	body, err := json.Marshal(area)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(outward), body, c.ttl).Err()
}

// Invalidate drops a cached answer after an admin edits coverage.
func (c *AreaCache) Invalidate(ctx context.Context, outward string) error {
	return c.rdb.Del(ctx, key(outward)).Err()
}
