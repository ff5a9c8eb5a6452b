package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/biyonik/person-directory/pkg/database/rowmapper"
)

// -----------------------------------------------------------------------------
// QUERY BUILDER (SELECT)
// -----------------------------------------------------------------------------
// QueryBuilder; tablo, kolonlar, where'lar, order, limit ve offset
// bilgisini tutar ve Grammar üzerinden lehçeye uygun SELECT üretir.
// Sonuç satırları rowmapper.Row olarak okunur; struct'a dönüşüm
// çağıranın Mapper'ına bırakılır.
//
// Zincirleme metotlar panic atmaz. İlk geçersiz identifier kaydedilir ve
// ToSQL / Rows / Each çağrısında hata olarak döner.
//
// Örnek:
//
//	rows, err := db.Builder().
//	    Table("Person").
//	    Select("PersonId", "FirstName", "LastName").
//	    OrderBy("PersonId", "ASC").
//	    Limit(5).
//	    Collect(ctx)
// -----------------------------------------------------------------------------

type QueryBuilder struct {
	executor QueryExecutor
	grammar  Grammar
	table    string
	columns  []string
	wheres   []WhereClause
	orders   []OrderClause
	limit    int
	offset   int
	err      error
}

// NewBuilder, executor ve grammar ile yeni bir QueryBuilder üretir.
//
// Parametreler:
//   - executor: SQL komutlarını çalıştıracak executor (*sql.DB veya *sql.Tx)
//   - grammar: SQL lehçesini yöneten grammar
func NewBuilder(executor QueryExecutor, grammar Grammar) *QueryBuilder {
	return &QueryBuilder{
		executor: executor,
		grammar:  grammar,
		columns:  []string{"*"},
	}
}

// validateIdentifier, kolon/tablo adını doğrular.
//
// İzin verilenler: harf, rakam, alt çizgi ve table.column için tek nokta.
//
//   - ✅ "Person", "PersonId", "Person.PersonId"
//   - ❌ "id; DROP TABLE Person--", "id' OR '1'='1"
func validateIdentifier(identifier string, kind string) error {
	if identifier == "*" {
		return nil
	}
	if strings.TrimSpace(identifier) == "" {
		return fmt.Errorf("invalid %s name: empty identifier", kind)
	}
	if !validIdentifierPattern.MatchString(identifier) {
		return fmt.Errorf("invalid %s name: %q (contains unsafe characters)", kind, identifier)
	}
	if strings.Count(identifier, ".") > 1 {
		return fmt.Errorf("invalid %s name: %q (too many dots)", kind, identifier)
	}
	for _, part := range strings.Split(identifier, ".") {
		if part == "" {
			return fmt.Errorf("invalid %s name: %q (empty part)", kind, identifier)
		}
	}
	return nil
}

func (qb *QueryBuilder) check(identifier, kind string) bool {
	if qb.err != nil {
		return false
	}
	if err := validateIdentifier(identifier, kind); err != nil {
		qb.err = err
		return false
	}
	return true
}

// Table, sorgunun çalışacağı tablo adını belirler.
func (qb *QueryBuilder) Table(tableName string) *QueryBuilder {
	if qb.check(tableName, "table") {
		qb.table = tableName
	}
	return qb
}

// Select, sorgudan döndürülecek kolonları belirler.
//
//	qb.Select("PersonId", "FirstName")
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	for _, col := range columns {
		if !qb.check(col, "column") {
			return qb
		}
	}
	if len(columns) > 0 {
		qb.columns = columns
	}
	return qb
}

func (qb *QueryBuilder) addWhere(column, operator string, value any, boolean string) *QueryBuilder {
	if qb.check(column, "column") {
		qb.wheres = append(qb.wheres, WhereClause{
			Column:   column,
			Operator: operator,
			Value:    value,
			Boolean:  boolean,
		})
	}
	return qb
}

// Where, sorguya AND ile bağlanan bir koşul ekler.
//
//	qb.Where("Email", "=", email)
func (qb *QueryBuilder) Where(column string, operator string, value any) *QueryBuilder {
	return qb.addWhere(column, operator, value, "AND")
}

// OrWhere, sorguya OR ile bağlanan bir koşul ekler.
func (qb *QueryBuilder) OrWhere(column string, operator string, value any) *QueryBuilder {
	return qb.addWhere(column, operator, value, "OR")
}

// WhereIn, kolonun verilen değerlerden biri olmasını şart koşar.
//
//	qb.WhereIn("PersonId", []any{1, 2, 3})
//	→ WHERE `PersonId` IN (?, ?, ?)
func (qb *QueryBuilder) WhereIn(column string, values []any) *QueryBuilder {
	return qb.addWhere(column, "IN", values, "AND")
}

// WhereNull, kolonun NULL olmasını şart koşar.
func (qb *QueryBuilder) WhereNull(column string) *QueryBuilder {
	return qb.addWhere(column, "IS", nil, "AND")
}

// WhereNotNull, kolonun NULL olmamasını şart koşar.
func (qb *QueryBuilder) WhereNotNull(column string) *QueryBuilder {
	return qb.addWhere(column, "IS NOT", nil, "AND")
}

// OrderBy, sıralama ekler. direction ASC/DESC dışında bir şeyse ASC
// kabul edilir.
func (qb *QueryBuilder) OrderBy(column string, direction string) *QueryBuilder {
	if !qb.check(column, "column") {
		return qb
	}

	dir := OrderAsc
	if strings.EqualFold(strings.TrimSpace(direction), string(OrderDesc)) {
		dir = OrderDesc
	}

	qb.orders = append(qb.orders, OrderClause{Column: column, Direction: dir})
	return qb
}

// Limit, döndürülecek en fazla satır sayısı. 0 sınırsız demektir.
func (qb *QueryBuilder) Limit(limit int) *QueryBuilder {
	qb.limit = limit
	return qb
}

// Offset, atlanacak satır sayısı. Limit ile birlikte kullanılmalıdır.
func (qb *QueryBuilder) Offset(offset int) *QueryBuilder {
	qb.offset = offset
	return qb
}

// ToSQL, SQL metnini ve bind parametrelerini döndürür.
func (qb *QueryBuilder) ToSQL() (string, []any, error) {
	if qb.err != nil {
		return "", nil, qb.err
	}
	return qb.grammar.CompileSelect(qb)
}

// Rows, sorguyu çalıştırır. Dönen *sql.Rows çağıran tarafından kapatılmalıdır.
func (qb *QueryBuilder) Rows(ctx context.Context) (*sql.Rows, error) {
	query, args, err := qb.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("query compilation failed: %w", err)
	}

	rows, err := qb.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}

// Each, sorgu sonucundaki her satır için fn'i çağırır.
func (qb *QueryBuilder) Each(ctx context.Context, fn func(rowmapper.Row) error) error {
	rows, err := qb.Rows(ctx)
	if err != nil {
		return err
	}
	return ForEachRow(rows, fn)
}

// Collect, sorgu sonucundaki tüm satırları döndürür.
func (qb *QueryBuilder) Collect(ctx context.Context) ([]rowmapper.Row, error) {
	rows, err := qb.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return CollectRows(rows)
}
