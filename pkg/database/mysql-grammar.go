package database

import "fmt"

// -----------------------------------------------------------------------------
// MySQL Grammar
// -----------------------------------------------------------------------------
// Identifier'lar backtick ile sarmalanır, parametreler ? ile bağlanır.
// Stored procedure'ler CALL ile çağrılır ve result set'leri normal bir
// sorgu gibi okunur:
//
//	CALL `Person_ByEmail`(?)
// -----------------------------------------------------------------------------

type MySQLGrammar struct {
	dialect
}

func NewMySQLGrammar() *MySQLGrammar {
	return &MySQLGrammar{dialect{name: DriverMySQL, quote: "`"}}
}

// CompileCall, CALL ifadesi üretir.
func (g *MySQLGrammar) CompileCall(proc Procedure) (string, []any, error) {
	name, err := g.Wrap(proc.Name)
	if err != nil {
		return "", nil, fmt.Errorf("procedure name error: %w", err)
	}
	return fmt.Sprintf("CALL %s(%s)", name, g.placeholders(len(proc.Params))), proc.Args(), nil
}
