package redis

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/webcalc/internal/config"
	"github.com/davidbz/webcalc/internal/domain"
	"github.com/davidbz/webcalc/internal/observability"
)

// ResultCache implements domain.ResultCache on top of plain redis string keys.
type ResultCache struct {
	client    redis.Cmdable
	keyPrefix string
}

// NewClient creates a redis client from cache settings.
func NewClient(cfg *config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// NewResultCache creates a new redis result cache adapter.
func NewResultCache(client redis.Cmdable, keyPrefix string) *ResultCache {
	return &ResultCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Ping verifies the server is reachable.
func (c *ResultCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Get returns a cached result or domain.ErrCacheMiss.
func (c *ResultCache) Get(ctx context.Context, key domain.CacheKey) (float64, error) {
	redisKey := c.redisKey(key)

	val, err := c.client.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrCacheMiss
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get %s: %w", redisKey, err)
	}

	result, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt cache entry %s: %w", redisKey, err)
	}

	observability.FromContext(ctx).Debug("result cache hit",
		observability.String("key", redisKey))

	return result, nil
}

// Set stores a result. A non-positive ttl stores without expiry.
func (c *ResultCache) Set(ctx context.Context, key domain.CacheKey, result float64, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	redisKey := c.redisKey(key)
	if err := c.client.Set(ctx, redisKey, formatResult(result), ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", redisKey, err)
	}
	return nil
}

// redisKey hashes the exact operand bits so that every distinct input,
// including -0 and NaN payloads, maps to its own entry.
func (c *ResultCache) redisKey(key domain.CacheKey) string {
	const bytesPerFloat64 = 8

	h := sha256.New()
	h.Write([]byte(key.Operation))

	buf := make([]byte, 2*bytesPerFloat64)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(key.A))
	binary.LittleEndian.PutUint64(buf[bytesPerFloat64:], math.Float64bits(key.B))
	h.Write(buf)

	return c.keyPrefix + key.Operation + ":" + hex.EncodeToString(h.Sum(nil))
}

func formatResult(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
