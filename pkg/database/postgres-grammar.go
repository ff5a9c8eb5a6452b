package database

import "fmt"

// -----------------------------------------------------------------------------
// PostgreSQL Grammar
// -----------------------------------------------------------------------------
// Identifier'lar çift tırnakla sarmalanır; bu yüzden şema da tırnaklı
// (büyük/küçük harf korunmuş) isimlerle kurulmalıdır. Parametreler $1, $2
// şeklinde numaralanır.
//
// Postgres'te result set döndüren procedure yerine RETURNS TABLE
// fonksiyonları kullanılır:
//
//	SELECT * FROM "Person_ByEmail"($1)
// -----------------------------------------------------------------------------

type PostgresGrammar struct {
	dialect
}

func NewPostgresGrammar() *PostgresGrammar {
	return &PostgresGrammar{dialect{name: DriverPostgres, quote: `"`, numbered: true}}
}

// CompileCall, set-returning fonksiyon çağrısı üretir.
func (g *PostgresGrammar) CompileCall(proc Procedure) (string, []any, error) {
	name, err := g.Wrap(proc.Name)
	if err != nil {
		return "", nil, fmt.Errorf("procedure name error: %w", err)
	}
	return fmt.Sprintf("SELECT * FROM %s(%s)", name, g.placeholders(len(proc.Params))), proc.Args(), nil
}
