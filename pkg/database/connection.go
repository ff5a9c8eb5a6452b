// -----------------------------------------------------------------------------
// Database Package
// -----------------------------------------------------------------------------
// Bu dosya, uygulamanın SQL veritabanına bağlanmasını sağlayan merkezi
// bağlantı fonksiyonunu içerir. MySQL, PostgreSQL ve SQLite desteklenir;
// her sürücü kendi Grammar'ı ile birlikte gelir.
//
// Open fonksiyonu bağlantıyı açar, havuz ayarlarını uygular ve ping ile
// veritabanının ulaşılabilir olduğunu doğrular. Başarısız olursa açılan
// havuz kapatılır.
// -----------------------------------------------------------------------------

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Desteklenen sürücü adları. database/sql'e kayıtlı isimlerle aynıdır.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options, bağlantı ve havuz ayarları.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// DB, *sql.DB'yi lehçesinin Grammar'ı ve SQLite için kayıtlı routine
// gövdeleri ile birlikte taşır. *sql.DB gömülü olduğu için QueryExecutor
// arayüzünü doğrudan sağlar.
type DB struct {
	*sql.DB
	driver  string
	grammar Grammar
	logger  *slog.Logger

	mu       sync.RWMutex
	routines map[string]string
}

// Open, verilen ayarlarla veritabanına bağlanır.
// Bağlantı sırasında şu adımlar gerçekleştirilir:
//  1. Sürücüye uygun Grammar seçilir; bilinmeyen sürücü hata döner.
//  2. sql.Open ile havuz oluşturulur.
//  3. Havuz ayarları uygulanır. SQLite tek bağlantı ile çalışır.
//  4. PingContext ile bağlantı test edilir; hata varsa havuz kapatılır.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DSN == "" {
		return nil, errors.New("database dsn is empty")
	}

	grammar, err := GrammarFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", opts.Driver, err)
	}

	if opts.Driver == DriverSQLite {
		// Tek yazıcı; :memory: veritabanı da bağlantı başına ayrıdır.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(valueOr(opts.MaxOpenConns, 25))
		sqlDB.SetMaxIdleConns(valueOr(opts.MaxIdleConns, 25))
	}
	sqlDB.SetConnMaxLifetime(valueOr(opts.ConnMaxLifetime, 5*time.Minute))

	logger.Info("Veritabanına bağlanılıyor...", "driver", opts.Driver)

	pingCtx, cancel := context.WithTimeout(ctx, valueOr(opts.PingTimeout, 5*time.Second))
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", opts.Driver, err)
	}

	logger.Info("✅ Veritabanı bağlantısı başarılı", "driver", opts.Driver)
	return &DB{
		DB:       sqlDB,
		driver:   opts.Driver,
		grammar:  grammar,
		logger:   logger,
		routines: make(map[string]string),
	}, nil
}

func valueOr[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}

// Driver, sürücü adını döndürür.
func (db *DB) Driver() string { return db.driver }

// Grammar, sürücünün SQL lehçesini döndürür.
func (db *DB) Grammar() Grammar { return db.grammar }

// Builder, bu bağlantı üzerinde çalışan yeni bir QueryBuilder döndürür.
func (db *DB) Builder() *QueryBuilder {
	return NewBuilder(db.DB, db.grammar)
}

// Close, havuzu kapatır.
func (db *DB) Close() error {
	if err := db.DB.Close(); err != nil {
		db.logger.Error("❌ Veritabanı kapatma hatası", "error", err)
		return err
	}
	db.logger.Info("Veritabanı bağlantısı kapatıldı")
	return nil
}
