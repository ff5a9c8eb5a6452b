// -----------------------------------------------------------------------------
// Redis Connection Pool
// -----------------------------------------------------------------------------
// Redis sunucusuna bağlantı kurar ve connection pool'u yönetir. Kişi
// listelerinin cache'i (pkg/cache.RedisCache) bu client üzerinden çalışır.
//
// Özellikler:
// - Connection pooling
// - Health check
// - Graceful shutdown
// -----------------------------------------------------------------------------

package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig, Redis bağlantı yapılandırması.
type RedisConfig struct {
	Host         string        // Redis sunucu adresi
	Port         int           // Redis port
	Password     string        // Redis şifresi (opsiyonel)
	DB           int           // Database numarası (0-15)
	PoolSize     int           // Connection pool boyutu
	MinIdleConns int           // Minimum idle connection sayısı
	MaxRetries   int           // Maksimum retry sayısı
	DialTimeout  time.Duration // Bağlantı timeout süresi
	ReadTimeout  time.Duration // Okuma timeout süresi
	WriteTimeout time.Duration // Yazma timeout süresi
}

// DefaultRedisConfig, varsayılan Redis yapılandırması.
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Host:         "127.0.0.1",
		Port:         6379,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr, host:port biçimindeki adres.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisClient, redis.Client wrapper.
type RedisClient struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisClient, yeni bir Redis client oluşturur ve bağlantıyı test eder.
//
// Örnek:
//
//	client, err := database.NewRedisClient(ctx, database.DefaultRedisConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func NewRedisClient(ctx context.Context, config *RedisConfig, logger *slog.Logger) (*RedisClient, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr(),
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	r := &RedisClient{client: client, logger: logger}

	if err := r.Ping(ctx); err != nil {
		client.Close()
		logger.Error("❌ Redis bağlantı hatası", "addr", config.Addr(), "error", err)
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info("✅ Redis bağlantısı başarılı", "addr", config.Addr(), "db", config.DB)
	return r, nil
}

// Client, raw redis.Client instance döndürür.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}

// Ping, Redis sunucusunun erişilebilir olup olmadığını kontrol eder.
func (r *RedisClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return r.client.Ping(ctx).Err()
}

// Close, Redis bağlantısını kapatır.
func (r *RedisClient) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("❌ Redis kapatma hatası", "error", err)
		return err
	}

	r.logger.Info("Redis bağlantısı kapatıldı")
	return nil
}
