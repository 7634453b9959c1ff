// Package cache provides a Redis-backed decorator around the numeral converter.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eugenenazirov/roman-numerals/internal/numeral"
)

const (
	defaultTTL       = 24 * time.Hour
	defaultNamespace = "roman"
)

// CachingConverter decorates a numeral.Converter with a Redis read-through cache.
// A nil client disables caching entirely.
type CachingConverter struct {
	inner     numeral.Converter
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingConverter wraps inner with Redis caching.
// If ttl is 0 or negative it defaults to 24 hours. If namespace is empty, it uses "roman".
func NewCachingConverter(rdb *redis.Client, ttl time.Duration, inner numeral.Converter, namespace string) *CachingConverter {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingConverter{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Convert returns the numeral for n, consulting Redis before the inner converter.
func (c *CachingConverter) Convert(ctx context.Context, n int) (string, error) {
	// Out-of-range input never reaches Redis.
	if err := numeral.Validate(n); err != nil {
		return "", err
	}
	if c.rdb == nil {
		return c.inner.Convert(n)
	}

	key := c.cacheKey(n)

	// 1) Check cache. Read errors other than a hit fall through to the inner converter.
	if cached, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if numeral.IsNumeral(cached) {
			return cached, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Compute
	out, err := c.inner.Convert(n)
	if err != nil {
		return "", err
	}

	// 3) Store in cache (best effort)
	_ = c.rdb.Set(ctx, key, out, c.ttl).Err()
	return out, nil
}

// Enabled reports whether a Redis client is attached.
func (c *CachingConverter) Enabled() bool {
	return c.rdb != nil
}

func (c *CachingConverter) cacheKey(n int) string {
	return fmt.Sprintf("%s:%d", c.namespace, n)
}
