package migrations

import (
	"fmt"
	"strings"

	"github.com/biyonik/person-directory/internal/models"
	"github.com/biyonik/person-directory/pkg/database"
	"github.com/biyonik/person-directory/pkg/database/migration"
)

// seedData, development ortamındaki örnek kişiler. Boş LastName NULL
// olarak yazılır.
var seedData = []models.Person{
	{PersonID: 1, FirstName: "Steve", LastName: "Harvey", Email: "steveharvey@crazyfunny.com", Phones: "555-0100,555-0101"},
	{PersonID: 2, FirstName: "Ada", LastName: "Lovelace", Email: "ada@analytical.engine", Phones: "555-0102"},
	{PersonID: 3, FirstName: "Grace", LastName: "Hopper", Email: "grace@cobol.navy"},
	{PersonID: 4, FirstName: "Alan", LastName: "Turing", Email: "alan@bletchley.park", Phones: "555-0103"},
	{PersonID: 5, FirstName: "Cher", Email: "cher@believe.com"},
	{PersonID: 6, FirstName: "Katherine", LastName: "Johnson", Email: "katherine@nasa.gov", Phones: "555-0104,555-0105"},
	{PersonID: 7, FirstName: "Linus", LastName: "Torvalds", Email: "linus@kernel.org"},
}

// SeedPersons, seed kişilerinin bir kopyasını döndürür. MongoDB deposu
// boş bir veritabanını bu listeyle doldurur.
func SeedPersons() []models.Person {
	return append([]models.Person(nil), seedData...)
}

// SeedCount, seed ile eklenen kişi sayısı.
func SeedCount() int { return len(seedData) }

func sqlLiteral(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func seedStatements(driver string) []string {
	g, err := database.GrammarFor(driver)
	if err != nil {
		return nil
	}
	q := func(ident string) string {
		w, _ := g.Wrap(ident) // sabit isimler, hata dönmez
		return w
	}

	var persons, phones []string
	for _, p := range seedData {
		persons = append(persons, fmt.Sprintf("(%d, %s, %s, %s)", p.PersonID, sqlLiteral(p.FirstName), sqlLiteral(p.LastName), sqlLiteral(p.Email)))
		for _, phone := range p.PhoneList() {
			phones = append(phones, fmt.Sprintf("(%d, %s)", p.PersonID, sqlLiteral(phone)))
		}
	}

	stmts := []string{
		fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s) VALUES %s",
			q("Person"), q("PersonId"), q("FirstName"), q("LastName"), q("Email"),
			strings.Join(persons, ", ")),
		fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES %s",
			q("PersonPhone"), q("PersonId"), q("Phone"),
			strings.Join(phones, ", ")),
	}

	// Açık id ile eklenen satırlardan sonra sequence ileri alınır.
	if driver == database.DriverPostgres {
		stmts = append(stmts, `SELECT setval(pg_get_serial_sequence('"Person"', 'PersonId'), (SELECT MAX("PersonId") FROM "Person"))`)
	}
	return stmts
}

func seedPersons() migration.Migration {
	return migration.Migration{
		Name: "0002_seed_persons",
		Statements: map[string][]string{
			database.DriverMySQL:    seedStatements(database.DriverMySQL),
			database.DriverPostgres: seedStatements(database.DriverPostgres),
			database.DriverSQLite:   seedStatements(database.DriverSQLite),
		},
	}
}
