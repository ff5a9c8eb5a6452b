package database

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// -----------------------------------------------------------------------------
// Grammar Interface
// -----------------------------------------------------------------------------
// Grammar, SQL lehçesine özgü sorgu üretimini tanımlar. Ortak SELECT
// derleme mantığı dialect struct'ında durur; lehçeler sadece quote
// karakteri, placeholder biçimi ve procedure çağrı söz dizimi ile ayrışır.
//
// Implementasyonlar:
// - MySQLGrammar: MySQL/MariaDB (`ident`, ?, CALL proc(?))
// - PostgresGrammar: PostgreSQL ("ident", $1, SELECT * FROM fn($1))
// - SQLiteGrammar: SQLite ("ident", ?, procedure yok)
// -----------------------------------------------------------------------------

// ErrProceduresUnsupported, lehçe stored procedure desteklemediğinde döner.
var ErrProceduresUnsupported = errors.New("stored procedures are not supported by this dialect")

// Grammar, SQL lehçesine özgü sorgu üretimini tanımlar.
type Grammar interface {
	// Name, lehçe adını döndürür (mysql, postgres, sqlite).
	Name() string

	// Wrap, identifier'ları (kolon/tablo adları) lehçeye göre sarmalar.
	// Geçersiz identifier için error döner, panic atmaz.
	Wrap(value string) (string, error)

	// Placeholder, n. (1'den başlayan) bind parametresinin yer tutucusu.
	Placeholder(n int) string

	// CompileSelect, QueryBuilder state'inden SELECT sorgusu üretir.
	CompileSelect(qb *QueryBuilder) (string, []any, error)

	// CompileCall, stored procedure çağrısı üretir.
	CompileCall(proc Procedure) (string, []any, error)
}

var validIdentifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_\.]+$`)

var allowedOperators = map[string]bool{
	"=":        true,
	"!=":       true,
	"<>":       true,
	"<":        true,
	">":        true,
	"<=":       true,
	">=":       true,
	"LIKE":     true,
	"NOT LIKE": true,
	"IN":       true,
	"NOT IN":   true,
	"IS":       true,
	"IS NOT":   true,
}

// GrammarFor, sürücü adına göre uygun Grammar'ı döndürür.
func GrammarFor(driver string) (Grammar, error) {
	switch driver {
	case DriverMySQL:
		return NewMySQLGrammar(), nil
	case DriverPostgres:
		return NewPostgresGrammar(), nil
	case DriverSQLite:
		return NewSQLiteGrammar(), nil
	}
	return nil, fmt.Errorf("unsupported sql driver: %q", driver)
}

// dialect, lehçeler arasında ortak olan derleme mantığını taşır.
type dialect struct {
	name     string
	quote    string
	numbered bool // $1, $2 ... (Postgres)
}

func (d dialect) Name() string { return d.name }

// Wrap, kolon ve tablo isimlerini lehçenin quote karakteri ile sarmalar.
// "table.column" formatı parça parça sarmalanır.
func (d dialect) Wrap(value string) (string, error) {
	if value == "*" {
		return value, nil
	}

	parts := strings.Split(value, ".")
	for i, part := range parts {
		if part == "" || !validIdentifierPattern.MatchString(part) {
			return "", fmt.Errorf("invalid SQL identifier: %q (contains unsafe characters)", value)
		}
		parts[i] = d.quote + part + d.quote
	}
	return strings.Join(parts, "."), nil
}

func (d dialect) Placeholder(n int) string {
	if d.numbered {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// wrapAll, birden fazla identifier'ı sarmalar.
func (d dialect) wrapAll(values []string) ([]string, error) {
	wrapped := make([]string, len(values))
	for i, value := range values {
		w, err := d.Wrap(value)
		if err != nil {
			return nil, err
		}
		wrapped[i] = w
	}
	return wrapped, nil
}

func validateOperator(operator string) (string, error) {
	op := strings.ToUpper(strings.TrimSpace(operator))
	if !allowedOperators[op] {
		return "", fmt.Errorf("invalid SQL operator: %s (not in whitelist)", operator)
	}
	return op, nil
}

// CompileSelect, QueryBuilder'dan SELECT sorgusu üretir.
func (d dialect) CompileSelect(qb *QueryBuilder) (string, []any, error) {
	if qb.table == "" {
		return "", nil, errors.New("select without table")
	}

	cols, err := d.wrapAll(qb.columns)
	if err != nil {
		return "", nil, fmt.Errorf("column wrap error: %w", err)
	}

	table, err := d.Wrap(qb.table)
	if err != nil {
		return "", nil, fmt.Errorf("table wrap error: %w", err)
	}

	var (
		sb   strings.Builder
		args []any
	)
	bind := func(v any) string {
		args = append(args, v)
		return d.Placeholder(len(args))
	}

	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(cols, ", "), table)

	for i, w := range qb.wheres {
		op, err := validateOperator(w.Operator)
		if err != nil {
			return "", nil, fmt.Errorf("where clause error: %w", err)
		}
		col, err := d.Wrap(w.Column)
		if err != nil {
			return "", nil, fmt.Errorf("where column wrap error: %w", err)
		}

		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			fmt.Fprintf(&sb, " %s ", w.Boolean)
		}

		switch op {
		case "IN", "NOT IN":
			values, ok := w.Value.([]any)
			if !ok || len(values) == 0 {
				return "", nil, fmt.Errorf("%s operator requires a non-empty []any value", op)
			}
			holders := make([]string, len(values))
			for j, v := range values {
				holders[j] = bind(v)
			}
			fmt.Fprintf(&sb, "%s %s (%s)", col, op, strings.Join(holders, ", "))
		case "IS", "IS NOT":
			if w.Value != nil {
				return "", nil, fmt.Errorf("%s operator only supports NULL", op)
			}
			fmt.Fprintf(&sb, "%s %s NULL", col, op)
		default:
			fmt.Fprintf(&sb, "%s %s %s", col, op, bind(w.Value))
		}
	}

	if len(qb.orders) > 0 {
		orders := make([]string, len(qb.orders))
		for i, o := range qb.orders {
			col, err := d.Wrap(o.Column)
			if err != nil {
				return "", nil, fmt.Errorf("order column wrap error: %w", err)
			}
			orders[i] = col + " " + string(o.Direction)
		}
		sb.WriteString(" ORDER BY " + strings.Join(orders, ", "))
	}

	if qb.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", qb.limit)
	}
	if qb.offset > 0 {
		if qb.limit <= 0 {
			return "", nil, errors.New("offset requires a limit")
		}
		fmt.Fprintf(&sb, " OFFSET %d", qb.offset)
	}

	return sb.String(), args, nil
}

// placeholders, procedure parametreleri için yer tutucu listesi üretir.
func (d dialect) placeholders(n int) string {
	holders := make([]string, n)
	for i := range holders {
		holders[i] = d.Placeholder(i + 1)
	}
	return strings.Join(holders, ", ")
}
