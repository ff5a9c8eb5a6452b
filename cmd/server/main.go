// Person Directory sunucusu.
//
// Yapılandırma ortam değişkenlerinden okunur (bkz. internal/config).
// Örnek:
//
//	DB_DRIVER=sqlite DB_DSN=file:persons.db CACHE_DRIVER=memory go run ./cmd/server
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biyonik/person-directory/internal/config"
	"github.com/biyonik/person-directory/internal/controllers"
	"github.com/biyonik/person-directory/internal/logging"
	"github.com/biyonik/person-directory/internal/middleware"
	"github.com/biyonik/person-directory/internal/migrations"
	"github.com/biyonik/person-directory/internal/repositories"
	"github.com/biyonik/person-directory/internal/router"
	"github.com/biyonik/person-directory/internal/services"
	"github.com/biyonik/person-directory/pkg/cache"
	"github.com/biyonik/person-directory/pkg/database"
	"github.com/biyonik/person-directory/pkg/database/migration"
)

func main() {
	if err := run(); err != nil {
		slog.Error("❌ Sunucu başlatılamadı", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, flushLogs := logging.Setup(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		SeqURL: cfg.Log.SeqURL,
		Output: os.Stdout,
	})
	defer flushLogs()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Shutdown sırasında ters sırada çalışacak kapatma fonksiyonları
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	closers = append(closers, closeRepo)

	personCache, closeCache, err := openCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	closers = append(closers, closeCache)

	svc := services.NewPersonService(repo, personCache, logger, services.Options{
		TTL:          cfg.Cache.TTL,
		QueryTimeout: cfg.DB.QueryTimeout,
	})
	home := controllers.NewHomeController(svc, cfg.Person.LookupEmail, logger)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSeconds)
	}
	closers = append(closers, middleware.StopAllLimiters)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.Setup(home, logger, limiter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("🚀 Sunucu başlatıldı", "addr", server.Addr, "env", cfg.App.Env, "driver", cfg.DB.Driver, "cache", cfg.Cache.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("✅ Sunucu düzgün şekilde kapatıldı")
	return nil
}

// openRepository, DB_DRIVER'a göre SQL ya da MongoDB repository'sini kurar.
// SQL için migration'lar, MongoDB için seed verisi uygulanır.
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.PersonRepository, func(), error) {
	if cfg.DB.Driver == config.DriverMongo {
		client, err := database.NewMongoClient(ctx, cfg.DB.DSN, cfg.DB.MongoDatabase, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Warn("⚠️  MongoDB kapatılamadı", "error", err)
			}
		}

		repo := repositories.NewPersonMongoRepository(client.Database(), logger)
		if cfg.DB.Migrate {
			if _, err := repo.EnsureSeed(ctx, migrations.SeedPersons()); err != nil {
				closeFn()
				return nil, nil, err
			}
		}
		return repo, closeFn, nil
	}

	db, err := database.Open(ctx, database.Options{
		Driver:          cfg.DB.Driver,
		DSN:             cfg.DB.DSN,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			logger.Warn("⚠️  Veritabanı kapatılamadı", "error", err)
		}
	}

	migrator := migration.NewMigrator(db, logger)
	if cfg.DB.Migrate {
		if _, err := migrator.Run(ctx, migrations.All()...); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("migrations failed: %w", err)
		}
	} else if db.Driver() == database.DriverSQLite {
		// Procedure gövdeleri bellekte tutulduğu için her açılışta kaydedilir
		if err := migrator.RegisterRoutines(migrations.All()...); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	repo, err := repositories.NewPersonSQLRepository(db, logger)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return repo, closeFn, nil
}

// openCache, CACHE_DRIVER'a göre cache'i kurar.
func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Cache, func(), error) {
	var (
		redisCache  *cache.RedisCache
		redisClient *database.RedisClient
	)

	if cfg.Cache.Driver == cache.DriverRedis {
		redisCfg := database.DefaultRedisConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB

		client, err := database.NewRedisClient(ctx, redisCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		redisClient = client
		redisCache = cache.NewRedisCache(client.Client(), logger, cfg.Cache.Prefix)
	}

	c, err := cache.New(cfg.Cache.Driver, redisCache, logger)
	if err != nil {
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, nil, err
	}

	return c, func() {
		if err := c.Close(); err != nil {
			logger.Warn("⚠️  Cache kapatılamadı", "error", err)
		}
		if redisClient != nil {
			redisClient.Close()
		}
	}, nil
}
