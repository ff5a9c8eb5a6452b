// -----------------------------------------------------------------------------
// Cache Interface
// -----------------------------------------------------------------------------
// Tüm cache driver'ların implement etmesi gereken interface.
// Driver'lar: Redis, Memory, Nop
//
// Değerler []byte olarak saklanır; tipli okuma/yazma RememberJSON ile
// yapılır. Bu sayede Memory ve Redis driver'ları aynı JSON gösterimini
// paylaşır ve cache'ten dönen veri her zaman kopyadır.
// -----------------------------------------------------------------------------

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Driver adları (CACHE_DRIVER).
const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
	DriverNone   = "none"
)

// Cache, tüm cache driver'ların implement etmesi gereken interface.
//
// Örnek kullanım:
//
//	var c cache.Cache = cache.NewMemoryCache(logger)
//	err := c.Set(ctx, "persons:orm", data, 10*time.Minute)
type Cache interface {
	// Get, cache'den veri okur. Key yoksa (nil, false, nil) döner.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set, cache'e veri yazar. ttl = 0 ise süresiz saklanır.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete, key'i siler. Key yoksa hata vermez.
	Delete(ctx context.Context, key string) error

	// Has, key'in cache'de olup olmadığını kontrol eder.
	Has(ctx context.Context, key string) (bool, error)

	// Flush, driver'ın sahip olduğu tüm key'leri temizler.
	Flush(ctx context.Context) error

	// Close, arka plan işlerini durdurur ve bağlantıları bırakır.
	Close() error
}

// Stats, cache istatistikleri interface'i. Driver'lar opsiyonel olarak
// implement eder.
type Stats interface {
	Stats() map[string]any
}

// New, driver adına göre Cache üretir. Redis için client hazır olmalıdır.
func New(driver string, redis *RedisCache, logger *slog.Logger) (Cache, error) {
	switch driver {
	case DriverRedis:
		if redis == nil {
			return nil, fmt.Errorf("cache driver %q requires a redis client", driver)
		}
		return redis, nil
	case DriverMemory:
		return NewMemoryCache(logger), nil
	case DriverNone, "":
		return NopCache{}, nil
	}
	return nil, fmt.Errorf("unsupported cache driver: %q", driver)
}
