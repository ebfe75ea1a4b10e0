package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dispatch-strategy-service/internal/domain"
)

// Redis-backed cache for shortest-path results. Entries are invalidated
// wholesale on graph reload, so the TTL is only a backstop.
type RedisPathCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPathCache(client *redis.Client, ttl time.Duration) *RedisPathCache {
	return &RedisPathCache{client: client, ttl: ttl}
}

func pathKey(from, to string) string {
	return fmt.Sprintf("path:%s:%s", from, to)
}

// Fetch a cached path. A miss returns (nil, nil).
func (c *RedisPathCache) Get(ctx context.Context, from, to string) (*domain.Path, error) {
	raw, err := c.client.Get(ctx, pathKey(from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("path cache get %s->%s: %w", from, to, err)
	}

	var p domain.Path
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("path cache get %s->%s: decode: %w", from, to, err)
	}
	return &p, nil
}

// Store a path result.
func (c *RedisPathCache) Put(ctx context.Context, from, to string, p domain.Path) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("path cache put %s->%s: encode: %w", from, to, err)
	}
	if err := c.client.Set(ctx, pathKey(from, to), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("path cache put %s->%s: %w", from, to, err)
	}
	return nil
}

// Drop every cached path. Called when the road network changes.
func (c *RedisPathCache) Flush(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, "path:*", 256).Result()
		if err != nil {
			return fmt.Errorf("path cache flush: scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("path cache flush: del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
