package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/biyonik/person-directory/internal/http/request"
)

// RequestIDHeader, istek kimliğinin taşındığı header.
const RequestIDHeader = "X-Request-ID"

// RequestID, her isteğe bir kimlik atar. İstemci geçerli bir UUID
// gönderdiyse o kullanılır; aksi halde yenisi üretilir. Kimlik yanıt
// header'ına ve context'e yazılır.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(request.WithRequestID(r.Context(), id)))
		})
	}
}
