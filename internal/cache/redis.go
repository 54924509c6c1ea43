// Package cache is a small Redis JSON cache for read-mostly catalog data.
// A nil *Cache (or one built without a client) is a no-op, so the API runs without Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"comboshare/internal/logging"
	"comboshare/internal/metrics"
)

const keyPrefix = "comboshare:"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redisURL (redis://host:port/db). An empty URL returns a disabled cache.
func New(redisURL, password string, ttl time.Duration) (*Cache, error) {
	if redisURL == "" {
		return &Cache{ttl: ttl}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: rdb, ttl: ttl}, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Get decodes the cached value for key into dest and reports whether it was found.
// Decode and transport failures count as a miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheRequests.WithLabelValues("miss").Inc()
		} else {
			metrics.CacheRequests.WithLabelValues("error").Inc()
			logging.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.CacheRequests.WithLabelValues("error").Inc()
		logging.Warn().Err(err).Str("key", key).Msg("cache decode failed")
		return false
	}
	metrics.CacheRequests.WithLabelValues("hit").Inc()
	return true
}

// Set stores value as JSON with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if !c.Enabled() {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %s: %w", key, err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cache key %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	return c.client.Del(ctx, full...).Err()
}

// DeletePrefix removes every key starting with prefix.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	if !c.Enabled() {
		return nil
	}
	iter := c.client.Scan(ctx, 0, keyPrefix+prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Remember returns the cached value for key or loads, stores and returns it.
func Remember[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if err := c.Set(ctx, key, v); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	return v, nil
}

// Keys used by the API.
const (
	KeyCharacters = "characters"
	KeyPicks      = "picks"
	KeyLookups    = "lookups"
)

func KeyMoves(characterID int64) string {
	return fmt.Sprintf("moves:%d", characterID)
}
