package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMemoryCache(t *testing.T) *MemoryCache {
	t.Helper()
	mc := newMemoryCache(discardLogger(), time.Hour)
	t.Cleanup(func() { mc.Close() })
	return mc
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	mc := newTestMemoryCache(t)

	_, ok, err := mc.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), 0))
	val, ok, err := mc.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)

	has, err := mc.Has(ctx, "k")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, mc.Delete(ctx, "k"))
	has, err = mc.Has(ctx, "k")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	mc := newTestMemoryCache(t)

	in := []byte("abc")
	require.NoError(t, mc.Set(ctx, "k", in, 0))
	in[0] = 'X'

	out, _, _ := mc.Get(ctx, "k")
	assert.Equal(t, "abc", string(out))
	out[0] = 'Y'

	again, _, _ := mc.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	mc := newTestMemoryCache(t)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	require.NoError(t, mc.Set(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, mc.Set(ctx, "forever", []byte("2"), 0))

	now = now.Add(2 * time.Minute)

	_, ok, _ := mc.Get(ctx, "short")
	assert.False(t, ok)
	_, ok, _ = mc.Get(ctx, "forever")
	assert.True(t, ok)

	stats := mc.Stats()
	assert.Equal(t, 1, stats["expired_keys"])

	assert.Equal(t, 1, mc.cleanExpiredEntries())
	assert.Equal(t, 1, mc.Stats()["total_keys"])
}

func TestMemoryCache_FlushAndClose(t *testing.T) {
	ctx := context.Background()
	mc := newTestMemoryCache(t)

	require.NoError(t, mc.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, mc.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, mc.Flush(ctx))
	assert.Equal(t, 0, mc.Stats()["total_keys"])

	assert.NoError(t, mc.Close())
	assert.NoError(t, mc.Close())
}

func TestNew(t *testing.T) {
	c, err := New(DriverMemory, nil, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)
	c.Close()

	c, err = New(DriverNone, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, NopCache{}, c)

	_, err = New(DriverRedis, nil, nil)
	assert.Error(t, err)

	_, err = New("file", nil, nil)
	assert.Error(t, err)
}

type item struct {
	Name string `json:"name"`
}

func TestRememberJSON_CachesResult(t *testing.T) {
	ctx := context.Background()
	mc := newTestMemoryCache(t)

	calls := 0
	load := func(context.Context) ([]item, error) {
		calls++
		return []item{{Name: "Ada"}}, nil
	}

	first, err := RememberJSON(ctx, mc, discardLogger(), "items", time.Minute, load)
	require.NoError(t, err)
	second, err := RememberJSON(ctx, mc, discardLogger(), "items", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	raw, ok, _ := mc.Get(ctx, "items")
	require.True(t, ok)
	assert.JSONEq(t, `[{"name":"Ada"}]`, string(raw))
}

func TestRememberJSON_ErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	mc := newTestMemoryCache(t)
	boom := errors.New("boom")

	_, err := RememberJSON(ctx, mc, nil, "items", time.Minute, func(context.Context) ([]item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	has, _ := mc.Has(ctx, "items")
	assert.False(t, has)
}

func TestRememberJSON_CorruptEntryIsRecomputed(t *testing.T) {
	ctx := context.Background()
	mc := newTestMemoryCache(t)
	require.NoError(t, mc.Set(ctx, "items", []byte("{not json"), 0))

	got, err := RememberJSON(ctx, mc, discardLogger(), "items", 0, func(context.Context) ([]item, error) {
		return []item{{Name: "fresh"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "fresh"}}, got)
}

func TestRememberJSON_NopCacheAlwaysCalls(t *testing.T) {
	calls := 0
	for i := 0; i < 3; i++ {
		_, err := RememberJSON(context.Background(), NopCache{}, discardLogger(), "k", time.Minute, func(context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

// Redis testleri sadece REDIS_TEST_ADDR tanımlıysa çalışır.
func TestRedisCache_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	rc := NewRedisCache(client, discardLogger(), fmt.Sprintf("test:%d:", time.Now().UnixNano()))
	t.Cleanup(func() { rc.Flush(ctx) })

	require.NoError(t, rc.Set(ctx, "k", []byte("v"), time.Minute))
	val, ok, err := rc.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, rc.Flush(ctx))
	has, err := rc.Has(ctx, "k")
	require.NoError(t, err)
	assert.False(t, has)
}
