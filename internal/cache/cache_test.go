// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "api:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	// Verify connection.
	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestResponseCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()

	// Miss.
	data, ok := rc.Get(ctx, BlogsKey(""))
	if ok {
		t.Error("expected cache miss")
	}
	if data != nil {
		t.Error("expected nil data on miss")
	}

	// Set.
	body := []byte(`[{"title":"Cached Article"}]`)
	rc.Set(ctx, BlogsKey(""), body)

	// Hit.
	data, ok = rc.Get(ctx, BlogsKey(""))
	if !ok {
		t.Error("expected cache hit")
	}
	if string(data) != string(body) {
		t.Errorf("data mismatch: got %q, want %q", data, body)
	}
}

func TestResponseCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()

	rc.Set(ctx, PageKey("home"), []byte("cached"))

	_, ok := rc.Get(ctx, PageKey("home"))
	if !ok {
		t.Fatal("expected cache hit before invalidation")
	}

	rc.Invalidate(ctx, PageKey("home"))

	_, ok = rc.Get(ctx, PageKey("home"))
	if ok {
		t.Error("expected cache miss after invalidation")
	}
}

func TestResponseCacheInvalidateBlogs(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()

	rc.Set(ctx, BlogsKey(""), []byte("all"))
	rc.Set(ctx, BlogsKey("AI Trends"), []byte("trends"))
	rc.Set(ctx, PageKey("home"), []byte("page"))

	rc.InvalidateBlogs(ctx)

	// Both blog listings gone.
	if _, ok := rc.Get(ctx, BlogsKey("")); ok {
		t.Error("expected miss for full listing after InvalidateBlogs")
	}
	if _, ok := rc.Get(ctx, BlogsKey("AI Trends")); ok {
		t.Error("expected miss for category listing after InvalidateBlogs")
	}
	// Unrelated keys untouched.
	if _, ok := rc.Get(ctx, PageKey("home")); !ok {
		t.Error("page cache entry should survive blog invalidation")
	}
}

func TestBlogsKey(t *testing.T) {
	if BlogsKey("") != "blogs" {
		t.Errorf("BlogsKey: got %q, want %q", BlogsKey(""), "blogs")
	}
	if BlogsKey("AI Ethics") != "blogs:AI Ethics" {
		t.Errorf("BlogsKey: got %q", BlogsKey("AI Ethics"))
	}
}

func TestNewResponseCacheDefaultTTL(t *testing.T) {
	client := testValkeyClient(t)

	// TTL = 0 should use default.
	rc := NewResponseCache(client, 0)
	if rc.ttl != DefaultResponseTTL {
		t.Errorf("expected DefaultResponseTTL (%v), got %v", DefaultResponseTTL, rc.ttl)
	}
}
