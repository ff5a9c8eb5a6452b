package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// NopCache, her şeyi unutan cache. CACHE_DRIVER=none için kullanılır.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NopCache) Delete(context.Context, string) error { return nil }
func (NopCache) Has(context.Context, string) (bool, error) { return false, nil }
func (NopCache) Flush(context.Context) error { return nil }
func (NopCache) Close() error { return nil }

// RememberJSON, key cache'te varsa JSON'dan çözüp döndürür; yoksa
// callback'i çalıştırır, sonucu JSON olarak cache'ler ve döndürür.
//
// Cache okuma/yazma hataları çağıranı durdurmaz: loglanır ve callback
// sonucu kullanılır. Callback hatası ise aynen döner ve cache'lenmez.
//
// Örnek:
//
//	persons, err := cache.RememberJSON(ctx, c, logger, "persons:orm", 10*time.Minute,
//	    func(ctx context.Context) ([]models.Person, error) {
//	        return repo.ListTop(ctx, 5)
//	    })
func RememberJSON[T any](ctx context.Context, c Cache, logger *slog.Logger, key string, ttl time.Duration, callback func(context.Context) (T, error)) (T, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if raw, ok, err := c.Get(ctx, key); err != nil {
		logger.Warn("⚠️  Cache okuma hatası", "key", key, "error", err)
	} else if ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		logger.Warn("⚠️  Cache içeriği çözülemedi, yeniden hesaplanıyor", "key", key)
	}

	result, err := callback(ctx)
	if err != nil {
		return result, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		logger.Warn("⚠️  Cache için JSON encode hatası", "key", key, "error", err)
		return result, nil
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("⚠️  Remember cache yazma hatası", "key", key, "error", err)
	}
	return result, nil
}
