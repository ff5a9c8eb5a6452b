// -----------------------------------------------------------------------------
// Testing Helpers
// -----------------------------------------------------------------------------
// Testlerde tekrar eden kurulumları toplar.
//
// Özellikler:
// - HTTP testing helpers (request/response assertions)
// - Migration'ları uygulanmış in-memory SQLite (RefreshDatabase)
// - Transaction içinde çalışıp geri alınan testler (DatabaseTransaction)
//
// Kullanım:
//
//	func TestPersons(t *testing.T) {
//	    db := testutil.RefreshDatabase(t)
//
//	    testutil.NewTestRequest(http.MethodGet, "/json").
//	        Send(handler).
//	        AssertStatus(t, http.StatusOK).
//	        AssertJSON(t)
//	}
// -----------------------------------------------------------------------------

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/person-directory/internal/migrations"
	"github.com/biyonik/person-directory/pkg/database"
	"github.com/biyonik/person-directory/pkg/database/migration"
)

// DiscardLogger, çıktı üretmeyen logger.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// -----------------------------------------------------------------------------
// HTTP Testing Helpers
// -----------------------------------------------------------------------------

// TestRequest represents an HTTP test request builder.
type TestRequest struct {
	method  string
	url     string
	body    io.Reader
	headers map[string]string
}

// NewTestRequest creates a new test request builder.
func NewTestRequest(method, url string) *TestRequest {
	return &TestRequest{
		method:  method,
		url:     url,
		headers: make(map[string]string),
	}
}

// WithJSON sets the request body as JSON.
func (r *TestRequest) WithJSON(data any) *TestRequest {
	jsonData, _ := json.Marshal(data)
	r.body = bytes.NewReader(jsonData)
	r.headers["Content-Type"] = "application/json"
	return r
}

// WithHeader adds a header to the request.
func (r *TestRequest) WithHeader(key, value string) *TestRequest {
	r.headers[key] = value
	return r
}

// Send executes the test request.
func (r *TestRequest) Send(handler http.Handler) *TestResponse {
	req := httptest.NewRequest(r.method, r.url, r.body)
	for key, value := range r.headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	return &TestResponse{Recorder: w}
}

// TestResponse represents an HTTP test response.
type TestResponse struct {
	Recorder *httptest.ResponseRecorder
}

// AssertStatus asserts the response status code.
func (r *TestResponse) AssertStatus(t *testing.T, expectedStatus int) *TestResponse {
	t.Helper()
	assert.Equal(t, expectedStatus, r.Recorder.Code, "body: %s", r.Recorder.Body.String())
	return r
}

// AssertJSON asserts the response contains JSON.
func (r *TestResponse) AssertJSON(t *testing.T) *TestResponse {
	t.Helper()
	assert.Contains(t, r.Recorder.Header().Get("Content-Type"), "application/json")
	return r
}

// AssertHeader asserts a response header value.
func (r *TestResponse) AssertHeader(t *testing.T, key, expected string) *TestResponse {
	t.Helper()
	assert.Equal(t, expected, r.Recorder.Header().Get(key))
	return r
}

// AssertJSONPath asserts a top-level JSON value.
func (r *TestResponse) AssertJSONPath(t *testing.T, path string, expected any) *TestResponse {
	t.Helper()
	data := r.GetJSON(t)

	actual, ok := data[path]
	if assert.True(t, ok, "JSON path '%s' not found", path) {
		assert.Equal(t, expected, actual)
	}
	return r
}

// GetJSON parses the response body as a JSON object.
func (r *TestResponse) GetJSON(t *testing.T) map[string]any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal(r.Recorder.Body.Bytes(), &data), "body: %s", r.Recorder.Body.String())
	return data
}

// DecodeJSON parses the response body into v.
func (r *TestResponse) DecodeJSON(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Recorder.Body.Bytes(), v), "body: %s", r.Recorder.Body.String())
}

// GetBody returns the response body as string.
func (r *TestResponse) GetBody() string {
	return r.Recorder.Body.String()
}

// -----------------------------------------------------------------------------
// Database Testing Helpers
// -----------------------------------------------------------------------------

// RefreshDatabase, her test için yeni bir in-memory SQLite açar ve tüm
// migration'ları uygular. Bağlantı test sonunda kapanır.
func RefreshDatabase(t *testing.T) *database.DB {
	t.Helper()

	logger := DiscardLogger()
	db, err := database.Open(context.Background(), database.Options{
		Driver: database.DriverSQLite,
		DSN:    ":memory:",
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = migration.NewMigrator(db, logger).Run(context.Background(), migrations.All()...)
	require.NoError(t, err)
	return db
}

// DatabaseTransaction, callback'i bir transaction içinde çalıştırır ve
// sonunda geri alır.
func DatabaseTransaction(t *testing.T, db *database.DB, callback func(*database.Transaction)) {
	t.Helper()

	tx, err := database.BeginTransaction(context.Background(), db)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, tx.Rollback())
	}()

	callback(tx)
}
