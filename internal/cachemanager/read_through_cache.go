package cachemanager

import (
	"context"
	"time"
)

// Loader produces a value for a cache miss. The report commands wrap
// their aggregate queries in one.
type Loader[I, V any] func(ctx context.Context, input I) (V, error)

// ReadThroughCache answers reads from a CacheManager and falls back to
// a Loader on a miss, storing what the loader returns. A failed load is
// never cached. With bypass set every read goes straight to the loader
// and nothing is stored, which is how callers force past stale entries.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache  CacheManager[K, V]
	load   Loader[I, V]
	bypass bool
}

// NewReadThroughCache wraps cache with load as the miss path.
func NewReadThroughCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	load Loader[I, V],
	bypass bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, load: load, bypass: bypass}
}

// Get returns the cached value for key, loading and storing it with ttl
// when absent.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.bypass {
		return r.load(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.load(ctx, input)
	if err != nil {
		return value, err
	}
	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}
