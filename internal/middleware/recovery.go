package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/biyonik/person-directory/internal/http/request"
	"github.com/biyonik/person-directory/internal/http/response"
)

// PanicRecovery, bir handler'da panic oluştuğunda sunucunun çökmesini engeller
// ve istemciye standart bir JSON 500 hatası döndürür.
func PanicRecovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("❌ PANIC",
						"error", err,
						"path", r.URL.Path,
						"request_id", request.RequestIDFrom(r.Context()),
						"stack", string(debug.Stack()),
					)

					response.Error(w, http.StatusInternalServerError, "Sunucuda beklenmedik bir hata oluştu")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
