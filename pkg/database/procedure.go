// -----------------------------------------------------------------------------
// Stored Procedure Çağrıları
// -----------------------------------------------------------------------------
// Call, procedure'ü lehçenin söz dizimi ile çalıştırır ve result set'i
// *sql.Rows olarak döndürür.
//
//	MySQL    → CALL `Persons_Get`()
//	Postgres → SELECT * FROM "Persons_Get"()
//	SQLite   → RegisterRoutine ile kaydedilmiş SELECT gövdesi
//
// SQLite gövdeleri ? placeholder'ları kullanır; parametreler Procedure
// içindeki sırayla bağlanır.
// -----------------------------------------------------------------------------

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/biyonik/person-directory/pkg/database/rowmapper"
)

// RegisterRoutine, name için bir SQL gövdesi kaydeder. Aynı isim tekrar
// kaydedilirse eskisinin üzerine yazılır. Kayıtlı routine, lehçe
// procedure desteklese bile önceliklidir.
func (db *DB) RegisterRoutine(name, body string) error {
	if err := validateIdentifier(name, "routine"); err != nil {
		return err
	}

	db.mu.Lock()
	db.routines[name] = body
	db.mu.Unlock()

	db.logger.Debug("routine kaydedildi", "name", name, "driver", db.driver)
	return nil
}

func (db *DB) routine(name string) (string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	body, ok := db.routines[name]
	return body, ok
}

// Call, stored procedure'ü çalıştırır. Dönen *sql.Rows çağıran tarafından
// kapatılmalıdır.
func (db *DB) Call(ctx context.Context, proc Procedure) (*sql.Rows, error) {
	return db.CallWith(ctx, db.DB, proc)
}

// CallWith, Call'un verilen executor (ör. *sql.Tx) üzerinde çalışan hali.
func (db *DB) CallWith(ctx context.Context, exec QueryExecutor, proc Procedure) (*sql.Rows, error) {
	query, args, err := db.compileCall(proc)
	if err != nil {
		return nil, err
	}

	db.logger.Debug("procedure çağrılıyor", "procedure", proc.Name, "params", len(args))

	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("procedure %s failed: %w", proc.Name, err)
	}
	return rows, nil
}

// EachCall, procedure sonucundaki her satır için fn'i çağırır.
func (db *DB) EachCall(ctx context.Context, proc Procedure, fn func(rowmapper.Row) error) error {
	rows, err := db.Call(ctx, proc)
	if err != nil {
		return err
	}
	return ForEachRow(rows, fn)
}

func (db *DB) compileCall(proc Procedure) (string, []any, error) {
	if body, ok := db.routine(proc.Name); ok {
		return body, proc.Args(), nil
	}

	query, args, err := db.grammar.CompileCall(proc)
	if err != nil {
		return "", nil, fmt.Errorf("procedure %s: %w", proc.Name, err)
	}
	return query, args, nil
}
