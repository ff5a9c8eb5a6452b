// -----------------------------------------------------------------------------
// Redis Cache Driver
// -----------------------------------------------------------------------------
// Birden fazla uygulama instance'ı arasında paylaşılan cache. Tüm key'ler
// prefix ile namespace'lenir; Flush sadece bu prefix'e ait key'leri siler.
//
// Her çağrı, çağıranın context'ine ek olarak 3 saniyelik bir timeout ile
// sınırlandırılır.
// -----------------------------------------------------------------------------

package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 3 * time.Second

// RedisCache, Redis tabanlı cache driver.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
	prefix string // Key prefix (namespace)
}

// NewRedisCache, verilen client ve prefix ile RedisCache oluşturur.
//
//	rc := cache.NewRedisCache(redisClient.Client(), logger, "person-directory:")
func NewRedisCache(client *redis.Client, logger *slog.Logger, prefix string) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, logger: logger, prefix: prefix}
}

func (r *RedisCache) prefixKey(key string) string {
	return r.prefix + key
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefixKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		r.logger.Error("❌ Redis Get hatası", "key", r.prefixKey(key), "error", err)
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefixKey(key), value, ttl).Err(); err != nil {
		r.logger.Error("❌ Redis Set hatası", "key", r.prefixKey(key), "error", err)
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := r.client.Del(ctx, r.prefixKey(key)).Err(); err != nil {
		r.logger.Error("❌ Redis Delete hatası", "key", r.prefixKey(key), "error", err)
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Has(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	count, err := r.client.Exists(ctx, r.prefixKey(key)).Result()
	if err != nil {
		r.logger.Error("❌ Redis Exists hatası", "key", r.prefixKey(key), "error", err)
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return count > 0, nil
}

// Flush, prefix'e ait key'leri SCAN ile bulup siler. Prefix boşsa tüm
// database temizlenir (FlushDB).
func (r *RedisCache) Flush(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if r.prefix == "" {
		if err := r.client.FlushDB(ctx).Err(); err != nil {
			return fmt.Errorf("redis flushdb failed: %w", err)
		}
		r.logger.Warn("⚠️  Redis database tamamen temizlendi (FlushDB)")
		return nil
	}

	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis flush failed: %w", err)
		}
	}

	r.logger.Warn("⚠️  Redis cache temizlendi", "prefix", r.prefix, "keys", len(keys))
	return nil
}

// Close, RedisCache client'ın sahibi değildir; client'ı kapatmaz.
func (r *RedisCache) Close() error { return nil }

func (r *RedisCache) Stats() map[string]any {
	s := r.client.PoolStats()
	return map[string]any{
		"driver":      DriverRedis,
		"prefix":      r.prefix,
		"hits":        s.Hits,
		"misses":      s.Misses,
		"total_conns": s.TotalConns,
		"idle_conns":  s.IdleConns,
	}
}
