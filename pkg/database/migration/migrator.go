// -----------------------------------------------------------------------------
// Database Migration System
// -----------------------------------------------------------------------------
// Bu package, veritabanı şema değişikliklerini sırayla uygular ve hangi
// migration'ların çalıştığını `migrations` tablosunda takip eder.
//
// Her Migration, sürücü adına göre (mysql, postgres, sqlite) ayrı SQL
// ifadeleri taşır. Stored procedure desteklemeyen lehçeler için Routines
// alanındaki SELECT gövdeleri DB.RegisterRoutine ile kaydedilir; bu kayıt
// kalıcı değildir ve her Run çağrısında yenilenir.
//
// Kullanım:
//
//	m := migration.NewMigrator(db, logger)
//	applied, err := m.Run(ctx, migrations.All()...)
// -----------------------------------------------------------------------------

package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/biyonik/person-directory/pkg/database"
)

// Migration, tek bir şema adımıdır.
type Migration struct {
	// Name, migrations tablosuna yazılan benzersiz isim.
	Name string

	// Statements, sürücü adı → sırayla çalıştırılacak ifadeler.
	Statements map[string][]string

	// Routines, sürücü adı → routine adı → SELECT gövdesi.
	Routines map[string]map[string]string
}

// Migrator manages database migrations.
type Migrator struct {
	db     *database.DB
	logger *slog.Logger
}

// NewMigrator creates a new Migrator instance.
func NewMigrator(db *database.DB, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{db: db, logger: logger}
}

var migrationsTableDDL = map[string]string{
	database.DriverMySQL: `CREATE TABLE IF NOT EXISTS migrations (
		id INT AUTO_INCREMENT PRIMARY KEY,
		migration VARCHAR(255) NOT NULL,
		batch INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	database.DriverPostgres: `CREATE TABLE IF NOT EXISTS migrations (
		id SERIAL PRIMARY KEY,
		migration VARCHAR(255) NOT NULL,
		batch INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	database.DriverSQLite: `CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		migration TEXT NOT NULL,
		batch INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// CreateMigrationsTable creates the migrations tracking table.
func (m *Migrator) CreateMigrationsTable(ctx context.Context) error {
	ddl, ok := migrationsTableDDL[m.db.Driver()]
	if !ok {
		return fmt.Errorf("migrations are not supported for driver %q", m.db.Driver())
	}
	if _, err := m.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// Applied returns the names of migrations that have been run, oldest first.
func (m *Migrator) Applied(ctx context.Context) ([]string, error) {
	if err := m.CreateMigrationsTable(ctx); err != nil {
		return nil, err
	}

	rows, err := m.db.QueryContext(ctx, "SELECT migration FROM migrations ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// LastBatch returns the last batch number, 0 when nothing has run.
func (m *Migrator) LastBatch(ctx context.Context) (int, error) {
	var batch sql.NullInt64
	if err := m.db.QueryRowContext(ctx, "SELECT MAX(batch) FROM migrations").Scan(&batch); err != nil {
		return 0, err
	}
	if batch.Valid {
		return int(batch.Int64), nil
	}
	return 0, nil
}

// Run, bekleyen migration'ları verilen sırayla uygular ve uygulananların
// isimlerini döndürür. Her migration kendi transaction'ında çalışır; hata
// olursa o migration geri alınır ve Run durur.
func (m *Migrator) Run(ctx context.Context, migrations ...Migration) ([]string, error) {
	done, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}
	ran := make(map[string]bool, len(done))
	for _, name := range done {
		ran[name] = true
	}

	if err := m.RegisterRoutines(migrations...); err != nil {
		return nil, err
	}

	last, err := m.LastBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read last batch: %w", err)
	}
	batch := last + 1

	var applied []string
	for _, mig := range migrations {
		if ran[mig.Name] {
			continue
		}
		if err := m.apply(ctx, mig, batch); err != nil {
			return applied, err
		}
		applied = append(applied, mig.Name)
		m.logger.Info("✅ Migration uygulandı", "migration", mig.Name, "batch", batch)
	}

	if len(applied) == 0 {
		m.logger.Debug("Bekleyen migration yok")
	}
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration, batch int) error {
	tx, err := database.BeginTransaction(ctx, m.db)
	if err != nil {
		return fmt.Errorf("migration %s: %w", mig.Name, err)
	}
	defer tx.Rollback()

	for _, stmt := range mig.Statements[m.db.Driver()] {
		if _, err := tx.Tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %s failed: %w", mig.Name, err)
		}
	}

	g := m.db.Grammar()
	record := fmt.Sprintf("INSERT INTO migrations (migration, batch) VALUES (%s, %s)", g.Placeholder(1), g.Placeholder(2))
	if _, err := tx.Tx.ExecContext(ctx, record, mig.Name, batch); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", mig.Name, err)
	}

	return tx.Commit()
}

// RegisterRoutines, migration'lardaki routine gövdelerini bağlantıya
// kaydeder. Run bunu kendisi çağırır; migration çalıştırılmadan açılan
// SQLite bağlantıları için ayrıca kullanılır.
func (m *Migrator) RegisterRoutines(migrations ...Migration) error {
	for _, mig := range migrations {
		for name, body := range mig.Routines[m.db.Driver()] {
			if err := m.db.RegisterRoutine(name, body); err != nil {
				return fmt.Errorf("migration %s: %w", mig.Name, err)
			}
		}
	}
	return nil
}
