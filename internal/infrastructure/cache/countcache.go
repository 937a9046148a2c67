package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

const (
	countKeyPrefix   = "ticketing:"
	defaultCountTTL  = 30 * time.Second
	defaultLocalSize = 256
)

// RedisCountCache keeps list totals in Redis so every server instance shares them.
// Redis errors are logged and the total is computed directly.
type RedisCountCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger logger.Interface
}

func NewRedisCountCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisCountCache {
	if ttl <= 0 {
		ttl = defaultCountTTL
	}
	return &RedisCountCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCountCache) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (int64, error)) (int64, error) {
	redisKey := countKeyPrefix + key

	cached, err := c.client.Get(ctx, redisKey).Result()
	switch {
	case err == nil:
		if n, convErr := strconv.ParseInt(cached, 10, 64); convErr == nil {
			return n, nil
		}
		c.logger.Warnw("discarding malformed cached count", "key", redisKey, "value", cached)
	case !errors.Is(err, redis.Nil):
		c.logger.Warnw("count cache read failed, counting directly", "key", redisKey, "error", err)
	}

	// the load is shared by every waiter on key, so it must not die with the first caller
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(redisKey, func() (interface{}, error) {
		n, err := load(shared)
		if err != nil {
			return int64(0), err
		}
		if setErr := c.Set(shared, key, n); setErr != nil {
			c.logger.Warnw("count cache write failed", "key", redisKey, "error", setErr)
		}
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (c *RedisCountCache) Set(ctx context.Context, key string, n int64) error {
	if err := c.client.Set(ctx, countKeyPrefix+key, n, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache count: %w", err)
	}
	return nil
}

// LocalCountCache keeps list totals in process memory, bounded in size and age.
type LocalCountCache struct {
	lru   *expirable.LRU[string, int64]
	group singleflight.Group
}

func NewLocalCountCache(size int, ttl time.Duration) *LocalCountCache {
	if size <= 0 {
		size = defaultLocalSize
	}
	if ttl <= 0 {
		ttl = defaultCountTTL
	}
	return &LocalCountCache{
		lru: expirable.NewLRU[string, int64](size, nil, ttl),
	}
}

func (c *LocalCountCache) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (int64, error)) (int64, error) {
	if n, ok := c.lru.Get(key); ok {
		return n, nil
	}

	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		n, err := load(shared)
		if err != nil {
			return int64(0), err
		}
		c.lru.Add(key, n)
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (c *LocalCountCache) Set(_ context.Context, key string, n int64) error {
	c.lru.Add(key, n)
	return nil
}
