// Package request, http.Request üzerine ince bir sarmalayıcıdır. Route
// parametreleri, query okuma, istemci IP'si ve request ID gibi sık
// kullanılan işlemleri tek yerde toplar.
package request

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// RequestParamsKeyType, route parametrelerinin context anahtarı tipi.
type RequestParamsKeyType struct{}

// RequestParamsKey global key instance
var RequestParamsKey = RequestParamsKeyType{}

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// WithRequestID, context'e request ID ekler. RequestID middleware'i
// tarafından çağrılır.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom, context'teki request ID'yi döndürür; yoksa boş string.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Request yapısı, http.Request yapısının üzerine inşa edilmiş bir sarmalayıcıdır.
type Request struct {
	*http.Request
}

// New, *http.Request'i Request'e dönüştürür.
func New(r *http.Request) *Request {
	return &Request{Request: r}
}

// Query, URL query parametresini okur; yoksa veya boşsa defaultValue döner.
func (r *Request) Query(key string, defaultValue string) string {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// QueryInt, query parametresini int olarak okur. Parse edilemezse
// defaultValue döner.
func (r *Request) QueryInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(r.Query(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// RouteParam, route parametrelerini almak için kullanılır.
func (r *Request) RouteParam(key string) string {
	params, ok := r.Context().Value(RequestParamsKey).(map[string]string)
	if !ok {
		return ""
	}
	return params[key]
}

// RequestID, RequestID middleware'inin atadığı kimlik.
func (r *Request) RequestID() string {
	return RequestIDFrom(r.Context())
}

// IP, client'ın IP adresini döndürür.
// Reverse proxy arkasındaysa X-Forwarded-For header'ını kontrol eder.
//
// Güvenlik Notu:
// X-Forwarded-For header'ı spoof edilebilir!
// Sadece güvenilir reverse proxy'lerden geliyorsa kullanın.
func (r *Request) IP() string {
	return ClientIP(r.Request)
}

// ClientIP, Request sarmalayıcısı olmadan IP çözümlemesi yapar.
// Middleware'ler bu fonksiyonu kullanır.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
