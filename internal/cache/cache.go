// Package cache keeps computed dashboard values in Redis. A Cache without a
// reachable server is disabled: reads miss and writes are dropped.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"aplus-academy/pkg/logger"
)

const keyPrefix = "aplus:"

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// New connects to addr. An empty addr or a failed ping yields a disabled
// cache rather than an error.
func New(ctx context.Context, addr string, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.L()
	}
	c := &Cache{ttl: ttl, log: log}
	if addr == "" {
		log.Warn("REDIS_ADDR is not set, caching disabled")
		return c
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("failed to connect to redis, caching disabled", zap.String(logger.FieldAddr, addr), zap.Error(err))
		rdb.Close()
		return c
	}

	log.Info("connected to redis", zap.String(logger.FieldAddr, addr))
	c.rdb = rdb
	return c
}

// NewWithClient wraps an existing client.
func NewWithClient(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.L()
	}
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON decodes the value under key into dest and reports whether it was
// present.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	data, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
