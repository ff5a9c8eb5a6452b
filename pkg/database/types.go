// -----------------------------------------------------------------------------
// Database Types - SQL Builder İçin Yardımcı Tipler
// -----------------------------------------------------------------------------
// QueryBuilder'ın ve stored procedure çağrılarının kullandığı küçük struct
// tipleri burada tanımlanır. OrderDirection gibi enum-like tipler sayesinde
// kullanıcı input'u doğrudan SQL'e enjekte edilemez.
// -----------------------------------------------------------------------------

package database

// OrderDirection, ORDER BY için izin verilen yönleri temsil eder.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "ASC"
	OrderDesc OrderDirection = "DESC"
)

// OrderClause, bir ORDER BY ifadesini temsil eder.
//
// Örnek:
//
//	OrderClause{Column: "FirstName", Direction: OrderAsc}
//	→ MySQL: ORDER BY `FirstName` ASC
type OrderClause struct {
	Column    string
	Direction OrderDirection
}

// WhereClause, bir WHERE koşulunu temsil eder. Value her zaman
// placeholder ile bağlanır; operatör whitelist kontrolü Grammar'dadır.
type WhereClause struct {
	Column   string
	Operator string
	Value    any
	Boolean  string // "AND" veya "OR"
}

// Param, stored procedure'e giden tek bir parametredir. Name sadece
// loglama ve okunabilirlik içindir; parametreler sırayla bağlanır.
type Param struct {
	Name  string
	Value any
}

// Procedure, çağrılacak stored procedure ve parametreleri.
//
// Örnek:
//
//	database.Procedure{
//	    Name:   "Person_ByEmail",
//	    Params: []database.Param{{Name: "Email", Value: email}},
//	}
type Procedure struct {
	Name   string
	Params []Param
}

// Args, parametre değerlerini bağlanma sırasıyla döndürür.
func (p Procedure) Args() []any {
	args := make([]any, len(p.Params))
	for i, param := range p.Params {
		args[i] = param.Value
	}
	return args
}
