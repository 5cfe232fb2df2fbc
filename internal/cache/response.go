// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache for public API responses.
// Blog listings are read far more often than they change (new articles
// appear at most a few times a day), so the serialized JSON is cached and
// invalidated whenever generation or an admin write touches the blogs
// table.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached API responses.
	responseKeyPrefix = "api:"

	// DefaultResponseTTL is how long a cached response stays valid without
	// explicit invalidation.
	DefaultResponseTTL = 5 * time.Minute
)

// ResponseCache caches serialized JSON responses in Valkey. All operations
// are best-effort: a cache failure is logged and treated as a miss.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body. The second return reports a hit.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a response body under key with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if err := rc.client.Set(ctx, responseKeyPrefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single cached response.
func (rc *ResponseCache) Invalidate(ctx context.Context, key string) {
	if err := rc.client.Del(ctx, responseKeyPrefix+key).Err(); err != nil {
		slog.Warn("response cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("response cache invalidated", "key", key)
}

// InvalidateBlogs removes every cached blog listing, including the
// per-category variants. Called after generation runs and admin writes.
func (rc *ResponseCache) InvalidateBlogs(ctx context.Context) {
	rc.invalidatePattern(ctx, responseKeyPrefix+"blogs*")
}

// invalidatePattern deletes all keys matching the pattern via SCAN.
func (rc *ResponseCache) invalidatePattern(ctx context.Context, pattern string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache cleared", "pattern", pattern, "deleted", deleted)
	}
}

// BlogsKey returns the cache key for a blog listing, optionally filtered by
// category. An empty category means the full listing.
func BlogsKey(category string) string {
	if category == "" {
		return "blogs"
	}
	return "blogs:" + category
}

// PageKey returns the cache key for an editable page blob.
func PageKey(key string) string {
	return "page:" + key
}
