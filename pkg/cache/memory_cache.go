// -----------------------------------------------------------------------------
// Memory Cache Driver
// -----------------------------------------------------------------------------
// Process içi map tabanlı cache. Test ve tek instance'lı development
// ortamları için uygundur; birden fazla instance arasında paylaşılmaz.
//
// Süresi dolan entry'ler okunurken yok sayılır ve arka planda çalışan
// garbage collection döngüsü tarafından silinir. Close döngüyü durdurur.
// -----------------------------------------------------------------------------

package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// memoryEntry, saklanan değer ve son geçerlilik zamanı.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero value = süresiz
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache, thread-safe in-memory cache.
type MemoryCache struct {
	mu     sync.RWMutex
	store  map[string]memoryEntry
	logger *slog.Logger
	now    func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryCache, 5 dakikalık GC aralığı ile yeni bir MemoryCache başlatır.
func NewMemoryCache(logger *slog.Logger) *MemoryCache {
	return newMemoryCache(logger, 5*time.Minute)
}

func newMemoryCache(logger *slog.Logger, gcInterval time.Duration) *MemoryCache {
	if logger == nil {
		logger = slog.Default()
	}

	mc := &MemoryCache{
		store:  make(map[string]memoryEntry),
		logger: logger,
		now:    time.Now,
		stop:   make(chan struct{}),
	}

	go mc.startGarbageCollection(gcInterval)

	logger.Info("✅ Memory cache başlatıldı")
	return mc
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.store[key]
	m.mu.RUnlock()

	if !ok || entry.expired(m.now()) {
		return nil, false, nil
	}
	return append([]byte(nil), entry.value...), true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.store[key] = memoryEntry{value: append([]byte(nil), value...), expiresAt: expiresAt}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.store, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := m.Get(ctx, key)
	return ok, err
}

func (m *MemoryCache) Flush(_ context.Context) error {
	m.mu.Lock()
	m.store = make(map[string]memoryEntry)
	m.mu.Unlock()

	m.logger.Warn("⚠️  Memory cache tamamen temizlendi")
	return nil
}

// Close, garbage collection döngüsünü durdurur. Birden fazla çağrılabilir.
func (m *MemoryCache) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

func (m *MemoryCache) Stats() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	valid := 0
	for _, entry := range m.store {
		if !entry.expired(now) {
			valid++
		}
	}

	return map[string]any{
		"driver":       DriverMemory,
		"total_keys":   len(m.store),
		"valid_keys":   valid,
		"expired_keys": len(m.store) - valid,
	}
}

func (m *MemoryCache) startGarbageCollection(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanExpiredEntries()
		case <-m.stop:
			return
		}
	}
}

func (m *MemoryCache) cleanExpiredEntries() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cleaned := 0
	for key, entry := range m.store {
		if entry.expired(now) {
			delete(m.store, key)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.logger.Debug("🧹 Memory cache garbage collection", "expired", cleaned)
	}
	return cleaned
}
