package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLoadFrom_Defaults(t *testing.T) {
	cfg := LoadFrom(envMap(nil), quiet)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.NotEmpty(t, cfg.DB.DSN)
	assert.Equal(t, 5*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "steveharvey@crazyfunny.com", cfg.Person.LookupEmail)
	assert.True(t, cfg.RateLimit.Enabled)
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg := LoadFrom(envMap(map[string]string{
		"APP_ENV":                 "production",
		"DB_DRIVER":               "Postgres",
		"DB_QUERY_TIMEOUT":        "2",
		"DB_MIGRATE":              "false",
		"CACHE_DRIVER":            "none",
		"RATE_LIMIT_MAX_REQUESTS": "7",
		"PERSON_LOOKUP_EMAIL":     "ada@example.com",
		"LOG_FORMAT":              "JSON",
	}), quiet)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Contains(t, cfg.DB.DSN, "postgres://")
	assert.Equal(t, 2*time.Second, cfg.DB.QueryTimeout)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, "none", cfg.Cache.Driver)
	assert.Equal(t, 7, cfg.RateLimit.MaxRequests)
	assert.Equal(t, "ada@example.com", cfg.Person.LookupEmail)
	assert.Equal(t, "json", cfg.Log.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_InvalidNumbersFallBack(t *testing.T) {
	cfg := LoadFrom(envMap(map[string]string{
		"REDIS_PORT":         "abc",
		"RATE_LIMIT_ENABLED": "maybe",
	}), quiet)

	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestValidate_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"driver":     {"DB_DRIVER": "oracle"},
		"cache":      {"CACHE_DRIVER": "file"},
		"rate limit": {"RATE_LIMIT_MAX_REQUESTS": "0"},
		"timeout":    {"DB_QUERY_TIMEOUT": "0"},
		"log format": {"LOG_FORMAT": "xml"},
		"empty dsn":  {"DB_DSN": " "},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, LoadFrom(envMap(env), quiet).Validate())
		})
	}
}
