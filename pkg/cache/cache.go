// Package cache stores ordered layers and rendered artifacts keyed by
// content hash.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the HTTP server, and [NullCache] when caching is disabled. Keys come
// from a [Keyer] so that identical layers ordered with identical settings
// map to the same entry regardless of which backend stores it.
package cache

import (
	"context"
	"errors"
	"time"
)

// Default lifetimes for cached entries.
const (
	TTLOrder    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// ErrCacheMiss is returned by Lookup when an item is not cached.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the entry for key. A miss returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Lookup is Get with misses reported as ErrCacheMiss.
func Lookup(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, ErrCacheMiss
	}
	return data, nil
}

// NullCache never stores anything. It is used when caching is disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
