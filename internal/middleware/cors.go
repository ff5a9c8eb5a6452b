// -----------------------------------------------------------------------------
// CORS Middleware
// -----------------------------------------------------------------------------
// Tarayıcıdan farklı bir origin üzerinden gelen isteklere izin verir ve
// preflight (OPTIONS) isteklerini 204 ile yanıtlar.
// -----------------------------------------------------------------------------

package middleware

import (
	"net/http"
)

// CORSMiddleware, allowedOrigin'e izin veren CORS middleware'i döndürür.
// "*" tüm origin'lere izin verir.
func CORSMiddleware(allowedOrigin string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
				w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
