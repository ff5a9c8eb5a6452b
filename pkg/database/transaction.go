// pkg/database/transaction.go
//
// Bu dosya, veritabanı işlemlerinin (transaction) güvenli ve okunabilir
// bir şekilde kontrol edilmesini sağlar. Bir transaction, bir grup
// işlemin ya tamamen uygulanmasını ya da hiç uygulanmamasını garanti eder.
// Migrator her migration'ı ayrı bir transaction içinde çalıştırır.
//
// Örnek kullanım:
//
//   tx, err := database.BeginTransaction(ctx, db)
//   if err != nil { ... }
//   defer tx.Rollback()
//   tx.Tx.ExecContext(ctx, "...")
//   return tx.Commit()

package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
)

// Transaction
//
// sql.Tx nesnesini lehçesi ile birlikte saklar ve commit/rollback
// operasyonlarını loglayarak gerçekleştirir.
type Transaction struct {
	Tx      *sql.Tx
	grammar Grammar
	logger  *slog.Logger
	done    bool
}

// BeginTransaction
//
// Yeni bir transaction başlatır. Dönen Transaction mutlaka Commit() veya
// Rollback() ile sonlandırılmalıdır.
func BeginTransaction(ctx context.Context, db *DB) (*Transaction, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	db.logger.Debug("🔄 Transaction başladı")
	return &Transaction{Tx: tx, grammar: db.grammar, logger: db.logger}, nil
}

// NewBuilder, transaction'a bağlı yeni bir QueryBuilder oluşturur.
func (t *Transaction) NewBuilder() *QueryBuilder {
	return NewBuilder(t.Tx, t.grammar)
}

// Commit
//
// Transaction'ı başarılı şekilde sonlandırır.
func (t *Transaction) Commit() error {
	err := t.Tx.Commit()
	if err == nil {
		t.done = true
		t.logger.Debug("✅ Transaction commit edildi")
	}
	return err
}

// Rollback
//
// Yapılmış tüm değişiklikleri geri alır. Commit'ten sonra çağrılırsa
// hiçbir şey yapmaz; bu sayede defer ile güvenle kullanılabilir.
func (t *Transaction) Rollback() error {
	if t.done {
		return nil
	}
	err := t.Tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	if err == nil {
		t.done = true
		t.logger.Warn("❌ Transaction geri alındı")
	}
	return err
}
