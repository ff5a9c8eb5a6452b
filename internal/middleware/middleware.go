// -----------------------------------------------------------------------------
// Middleware Package
// -----------------------------------------------------------------------------
// Middleware, bir http.Handler'ı alıp onu saran yeni bir handler döndürür.
// Logging, request ID, panic recovery, CORS ve rate limiting bu yapı
// üzerine kuruludur ve router'a global ya da route bazında eklenir.
// -----------------------------------------------------------------------------

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/biyonik/person-directory/internal/http/request"
)

// Middleware, bir sonraki http.Handler'ı alıp onu yeni bir handler olarak
// saran fonksiyon tipidir.
type Middleware func(next http.Handler) http.Handler

// Chain, middleware'leri verilen sırayla uygular: ilk eleman en dıştadır.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// statusRecorder, yazılan statü kodunu ve byte sayısını yakalar.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Logging, her isteği tamamlandıktan sonra method, path, statü ve süre ile
// loglar. 5xx yanıtlar error, 4xx yanıtlar warn seviyesindedir.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			logger.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", rec.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("ip", request.ClientIP(r)),
				slog.String("user_agent", r.UserAgent()),
				slog.String("request_id", request.RequestIDFrom(r.Context())),
			)
		})
	}
}
