package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type reportInput struct {
	id int
}

func newCountingLoader() (*int, Loader[reportInput, []*projectRow]) {
	calls := 0
	return &calls, func(ctx context.Context, input reportInput) ([]*projectRow, error) {
		calls++
		return []*projectRow{{ID: input.id}}, nil
	}
}

func TestReadThroughCache_MissLoadsAndStores(t *testing.T) {
	cache := NewInMemoryCacheManager[string, []*projectRow]("test", DefaultExpiration, DefaultCleanupInterval)
	calls, loader := newCountingLoader()

	rtc := NewReadThroughCache[string, []*projectRow, reportInput](cache, loader, false)

	rows, err := rtc.Get(context.Background(), "key", reportInput{id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*projectRow{{ID: 1}}, rows)
	require.Equal(t, 1, *calls)

	// The loaded value is now cached.
	_, err = rtc.Get(context.Background(), "key", reportInput{id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 1, *calls, "second read should hit the cache")
}

func TestReadThroughCache_HitSkipsLoader(t *testing.T) {
	cache := NewInMemoryCacheManager[string, []*projectRow]("test", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "key", []*projectRow{{ID: 1, Name: "Acme Corp"}}, DefaultExpiration)
	calls, loader := newCountingLoader()

	rtc := NewReadThroughCache[string, []*projectRow, reportInput](cache, loader, false)

	rows, err := rtc.Get(context.Background(), "key", reportInput{id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*projectRow{{ID: 1, Name: "Acme Corp"}}, rows)
	require.Zero(t, *calls, "cache hit should not call the loader")
}

func TestReadThroughCache_BypassNeverStores(t *testing.T) {
	cache := NewInMemoryCacheManager[string, []*projectRow]("test", DefaultExpiration, DefaultCleanupInterval)
	calls, loader := newCountingLoader()

	rtc := NewReadThroughCache[string, []*projectRow, reportInput](cache, loader, true)

	for i := 0; i < 2; i++ {
		rows, err := rtc.Get(context.Background(), "key", reportInput{id: 1}, time.Minute)
		require.NoError(t, err)
		require.Equal(t, []*projectRow{{ID: 1}}, rows)
	}
	require.Equal(t, 2, *calls)

	_, ok := cache.Get(context.Background(), "key")
	require.False(t, ok)
}

func TestReadThroughCache_LoaderErrorNotCached(t *testing.T) {
	cache := NewInMemoryCacheManager[string, []*projectRow]("test", DefaultExpiration, DefaultCleanupInterval)

	rtc := NewReadThroughCache[string, []*projectRow, reportInput](
		cache,
		func(ctx context.Context, input reportInput) ([]*projectRow, error) {
			return nil, errors.New("query failed")
		},
		false,
	)

	_, err := rtc.Get(context.Background(), "key", reportInput{id: 1}, time.Minute)
	require.Error(t, err)

	_, ok := cache.Get(context.Background(), "key")
	require.False(t, ok, "a failed load should not be cached")
}
