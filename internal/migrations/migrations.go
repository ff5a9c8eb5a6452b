// -----------------------------------------------------------------------------
// Person Directory Migrations
// -----------------------------------------------------------------------------
// Şema, örnek veri ve kişi sorguları için stored procedure'ler. Her adım
// mysql, postgres ve sqlite için ayrı SQL taşır; sqlite procedure
// desteklemediği için aynı sorgular routine olarak kaydedilir.
//
// Tablo ve kolon adları PascalCase'dir (Person, PersonId). Postgres'te bu
// isimler tırnak içinde tutulur ki grammar'ın ürettiği "Person" ile eşleşsin.
// -----------------------------------------------------------------------------

package migrations

import "github.com/biyonik/person-directory/pkg/database/migration"

// Procedure adları. Repository katmanı da bu sabitleri kullanır.
const (
	ProcPersonsGet       = "Persons_Get"
	ProcPersonsPhonesCsv = "Persons_PhonesCsv"
	ProcPersonByEmail    = "Person_ByEmail"
)

// All, uygulanma sırasıyla tüm migration'ları döndürür.
func All() []migration.Migration {
	return []migration.Migration{
		createPersonTables(),
		seedPersons(),
		createPersonProcedures(),
	}
}
