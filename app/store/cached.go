package store

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lcw/v2"
)

//go:generate moq -out mocks/kv.go -pkg mocks -skip-ensure -fmt goimports . KV

// Cached wraps a KV with a loading cache and satisfies KV itself.
// Cache is populated on reads via loader function, invalidated on writes.
type Cached struct {
	kv    KV
	cache lcw.LoadingCache[[]byte]
}

// NewCached creates a new cached store wrapper.
// maxKeys sets the maximum number of entries in the cache.
func NewCached(kv KV, maxKeys int) (*Cached, error) {
	cache, err := lcw.NewLruCache(lcw.NewOpts[[]byte]().MaxKeys(maxKeys))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cached{kv: kv, cache: cache}, nil
}

// Get retrieves the value for a key, using cache with load-through. Misses are not cached.
func (c *Cached) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.cache.Get(key, func() ([]byte, error) {
		v, loadErr := c.kv.Get(ctx, key)
		if loadErr != nil {
			return nil, fmt.Errorf("load from store: %w", loadErr)
		}
		return v, nil
	})
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return val, nil
}

// Set stores a value and invalidates the cache entry.
func (c *Cached) Set(ctx context.Context, key string, value []byte) error {
	if err := c.kv.Set(ctx, key, value); err != nil {
		return fmt.Errorf("store set: %w", err)
	}
	c.cache.Invalidate(func(k string) bool { return k == key })
	return nil
}

// Close closes the cache.
func (c *Cached) Close() error {
	if err := c.cache.Close(); err != nil {
		return fmt.Errorf("cache close: %w", err)
	}
	return nil
}

// Stats returns cache statistics.
func (c *Cached) Stats() lcw.CacheStat {
	return c.cache.Stat()
}
