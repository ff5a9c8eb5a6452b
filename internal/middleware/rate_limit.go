package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/biyonik/person-directory/internal/http/request"
	"github.com/biyonik/person-directory/internal/http/response"
)

// -----------------------------------------------------------------------------
// Rate Limiting Middleware
// -----------------------------------------------------------------------------
// İstemci IP'si başına bir token bucket (golang.org/x/time/rate) tutar.
// Pencere başına maxRequests istek izinlidir; token'lar pencere boyunca
// eşit hızla yenilenir. Uzun süre kullanılmayan bucket'lar arka planda
// temizlenir. Limiter'lar registry'de tutulur ve shutdown sırasında
// StopAllLimiters ile durdurulur.
// -----------------------------------------------------------------------------

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	maxRequests int
	window      time.Duration
	limit       rate.Limit
	now         func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Global limiter registry - graceful shutdown için
var (
	limiterRegistry   = make(map[*RateLimiter]bool)
	limiterRegistryMu sync.Mutex
)

// NewRateLimiter, yeni bir RateLimiter oluşturur ve cleanup goroutine'ini
// başlatır.
func NewRateLimiter(maxRequests int, windowInSeconds int) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if windowInSeconds <= 0 {
		windowInSeconds = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	window := time.Duration(windowInSeconds) * time.Second

	limiter := &RateLimiter{
		visitors:    make(map[string]*visitor),
		maxRequests: maxRequests,
		window:      window,
		limit:       rate.Limit(float64(maxRequests) / window.Seconds()),
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
	}

	limiterRegistryMu.Lock()
	limiterRegistry[limiter] = true
	limiterRegistryMu.Unlock()

	limiter.wg.Add(1)
	go limiter.cleanupLoop()

	return limiter
}

func (rl *RateLimiter) cleanupLoop() {
	defer rl.wg.Done()

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.ctx.Done():
			return
		}
	}
}

// cleanup, iki pencereden uzun süredir görülmeyen istemcileri siler.
func (rl *RateLimiter) cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cleaned := 0
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > 2*rl.window {
			delete(rl.visitors, key)
			cleaned++
		}
	}
	return cleaned
}

// Stop, rate limiter'ı durdurur.
func (rl *RateLimiter) Stop() {
	limiterRegistryMu.Lock()
	delete(limiterRegistry, rl)
	limiterRegistryMu.Unlock()

	rl.cancel()
	rl.wg.Wait()
}

// StopAllLimiters, tüm aktif rate limiter'ları durdurur.
// main.go'daki shutdown hook'undan çağrılır.
func StopAllLimiters() {
	limiterRegistryMu.Lock()
	limiters := make([]*RateLimiter, 0, len(limiterRegistry))
	for limiter := range limiterRegistry {
		limiters = append(limiters, limiter)
	}
	limiterRegistryMu.Unlock()

	for _, limiter := range limiters {
		limiter.Stop()
	}
}

// Allow, key için bir isteğe izin verilip verilmeyeceğini söyler. Kalan
// token sayısını ve reddedildiyse ne kadar beklenmesi gerektiğini döndürür.
func (rl *RateLimiter) Allow(key string) (bool, int, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.maxRequests)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	reservation := v.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, 0, delay
	}

	remaining := int(math.Floor(v.limiter.TokensAt(now)))
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, 0
}

// RateLimit, rate limiting middleware'ini döndürür. Dönen limiter,
// StopAllLimiters ile durdurulana kadar yaşar.
func RateLimit(maxRequests int, windowInSeconds int) Middleware {
	return RateLimitWith(NewRateLimiter(maxRequests, windowInSeconds))
}

// RateLimitWith, hazır bir limiter ile middleware üretir.
func RateLimitWith(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, retryAfter := limiter.Allow(request.ClientIP(r))

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limiter.maxRequests))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

			if !allowed {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
				response.TooManyRequests(w, fmt.Sprintf("Rate limit aşıldı. %d saniye sonra tekrar deneyin.", seconds))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
