// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// snapshot.go caches the rendered public portfolio document. The public
// endpoint serves the cached bytes until an admin write invalidates them
// or the TTL runs out.
package cache

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix is the Valkey key prefix for cached documents.
	keyPrefix = "public:"

	// PortfolioKey is the key of the public portfolio snapshot.
	PortfolioKey = "portfolio"

	// DefaultTTL is how long a rendered document stays cached.
	DefaultTTL = 5 * time.Minute
)

// SnapshotCache stores rendered documents in Valkey or in process memory.
// Errors from Valkey are logged and treated as misses.
type SnapshotCache struct {
	client *redis.Client
	local  *gocache.Cache
	ttl    time.Duration
}

// NewSnapshotCache creates a cache backed by the given Valkey client.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &SnapshotCache{client: client, ttl: ttl}
}

// NewMemorySnapshotCache creates a cache local to this process.
func NewMemorySnapshotCache(ttl time.Duration) *SnapshotCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &SnapshotCache{local: gocache.New(ttl, 10*time.Minute), ttl: ttl}
}

// Get returns the cached document for key.
func (c *SnapshotCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.local != nil {
		v, ok := c.local.Get(key)
		if !ok {
			return nil, false
		}
		data, ok := v.([]byte)
		return data, ok
	}

	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("snapshot cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("snapshot cache hit", "key", key)
	return val, true
}

// Set stores a document for key with the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, key string, data []byte) {
	if c.local != nil {
		c.local.Set(key, data, c.ttl)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		slog.Warn("snapshot cache set error", "key", key, "error", err)
	}
}

// Invalidate drops the cached document for key.
func (c *SnapshotCache) Invalidate(ctx context.Context, key string) {
	if c.local != nil {
		c.local.Delete(key)
		return
	}
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		slog.Warn("snapshot cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("snapshot cache invalidated", "key", key)
}
