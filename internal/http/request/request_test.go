package request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	r := New(httptest.NewRequest(http.MethodGet, "/orm?n=7&email=%20a@b.c%20&bad=x", nil))

	assert.Equal(t, "a@b.c", r.Query("email", "default"))
	assert.Equal(t, "default", r.Query("missing", "default"))
	assert.Equal(t, 7, r.QueryInt("n", 5))
	assert.Equal(t, 5, r.QueryInt("bad", 5))
	assert.Equal(t, 5, r.QueryInt("missing", 5))
}

func TestRouteParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/persons/7", nil)
	ctx := context.WithValue(req.Context(), RequestParamsKey, map[string]string{"id": "7"})
	r := New(req.WithContext(ctx))

	assert.Equal(t, "7", r.RouteParam("id"))
	assert.Equal(t, "", r.RouteParam("other"))
	assert.Equal(t, "", New(req).RouteParam("id"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", ClientIP(req))

	req.RemoteAddr = "[::1]:8080"
	assert.Equal(t, "::1", ClientIP(req))

	req.Header.Set("X-Real-IP", "192.168.1.2")
	assert.Equal(t, "192.168.1.2", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", New(req).IP())
}

func TestRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", New(req).RequestID())

	req = req.WithContext(WithRequestID(req.Context(), "abc"))
	assert.Equal(t, "abc", New(req).RequestID())
}
