package database

import (
	"context"
	"database/sql"
)

/*
*
//QueryExecutor, Go'nun 'database/sql' paketindeki
// hem *sql.DB (havuz) hem de *sql.Tx (transaction) tarafından
// örtük olarak uygulanan context'li metodları tanımlayan bir arayüzdür.
//
// QueryBuilder ve Call *sql.DB'ye kilitlenmek yerine bu arayüze
// kilitlenir; böylece hem normal sorgularda hem de transaction
// içinde çalışabilirler.
*/
type QueryExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
