package database

// -----------------------------------------------------------------------------
// SQLite Grammar
// -----------------------------------------------------------------------------
// SQLite'ta stored procedure yoktur. DB.Call, SQLite için RegisterRoutine ile
// kaydedilmiş SQL gövdelerini çalıştırır; grammar seviyesinde CALL üretilmez.
// -----------------------------------------------------------------------------

type SQLiteGrammar struct {
	dialect
}

func NewSQLiteGrammar() *SQLiteGrammar {
	return &SQLiteGrammar{dialect{name: DriverSQLite, quote: `"`}}
}

// CompileCall her zaman ErrProceduresUnsupported döner.
func (g *SQLiteGrammar) CompileCall(proc Procedure) (string, []any, error) {
	return "", nil, ErrProceduresUnsupported
}
