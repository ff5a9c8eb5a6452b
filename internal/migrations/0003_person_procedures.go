package migrations

import (
	"github.com/biyonik/person-directory/pkg/database"
	"github.com/biyonik/person-directory/pkg/database/migration"
)

// SQLite routine gövdeleri. Parametreler ? ile bağlanır.
const (
	sqlitePersonsGet = `SELECT "PersonId", "FirstName", "LastName", "Email"
		FROM "Person" ORDER BY "PersonId"`

	sqlitePersonsPhonesCsv = `SELECT p."PersonId", p."FirstName", p."LastName", p."Email",
			group_concat(pp."Phone", ',' ORDER BY pp."Phone") AS "Phones"
		FROM "Person" p
		LEFT JOIN "PersonPhone" pp ON pp."PersonId" = p."PersonId"
		GROUP BY p."PersonId", p."FirstName", p."LastName", p."Email"
		ORDER BY p."PersonId"`

	sqlitePersonByEmail = `SELECT p."PersonId", p."FirstName", p."LastName", p."Email",
			group_concat(pp."Phone", ',' ORDER BY pp."Phone") AS "Phones"
		FROM "Person" p
		LEFT JOIN "PersonPhone" pp ON pp."PersonId" = p."PersonId"
		WHERE p."Email" = ?
		GROUP BY p."PersonId", p."FirstName", p."LastName", p."Email"
		ORDER BY p."PersonId"`
)

func createPersonProcedures() migration.Migration {
	return migration.Migration{
		Name: "0003_create_person_procedures",
		Statements: map[string][]string{
			database.DriverMySQL: {
				`DROP PROCEDURE IF EXISTS Persons_Get`,
				`CREATE PROCEDURE Persons_Get()
				BEGIN
					SELECT PersonId, FirstName, LastName, Email FROM Person ORDER BY PersonId;
				END`,
				`DROP PROCEDURE IF EXISTS Persons_PhonesCsv`,
				`CREATE PROCEDURE Persons_PhonesCsv()
				BEGIN
					SELECT p.PersonId, p.FirstName, p.LastName, p.Email,
						GROUP_CONCAT(pp.Phone ORDER BY pp.Phone SEPARATOR ',') AS Phones
					FROM Person p
					LEFT JOIN PersonPhone pp ON pp.PersonId = p.PersonId
					GROUP BY p.PersonId, p.FirstName, p.LastName, p.Email
					ORDER BY p.PersonId;
				END`,
				`DROP PROCEDURE IF EXISTS Person_ByEmail`,
				`CREATE PROCEDURE Person_ByEmail(IN pEmail VARCHAR(255))
				BEGIN
					SELECT p.PersonId, p.FirstName, p.LastName, p.Email,
						GROUP_CONCAT(pp.Phone ORDER BY pp.Phone SEPARATOR ',') AS Phones
					FROM Person p
					LEFT JOIN PersonPhone pp ON pp.PersonId = p.PersonId
					WHERE p.Email = pEmail
					GROUP BY p.PersonId, p.FirstName, p.LastName, p.Email
					ORDER BY p.PersonId;
				END`,
			},
			database.DriverPostgres: {
				`CREATE OR REPLACE FUNCTION "Persons_Get"()
				RETURNS TABLE ("PersonId" INT, "FirstName" VARCHAR, "LastName" VARCHAR, "Email" VARCHAR)
				AS $$
					SELECT p."PersonId", p."FirstName", p."LastName", p."Email"
					FROM "Person" p ORDER BY p."PersonId"
				$$ LANGUAGE sql STABLE`,
				`CREATE OR REPLACE FUNCTION "Persons_PhonesCsv"()
				RETURNS TABLE ("PersonId" INT, "FirstName" VARCHAR, "LastName" VARCHAR, "Email" VARCHAR, "Phones" TEXT)
				AS $$
					SELECT p."PersonId", p."FirstName", p."LastName", p."Email",
						string_agg(pp."Phone", ',' ORDER BY pp."Phone")
					FROM "Person" p
					LEFT JOIN "PersonPhone" pp ON pp."PersonId" = p."PersonId"
					GROUP BY p."PersonId", p."FirstName", p."LastName", p."Email"
					ORDER BY p."PersonId"
				$$ LANGUAGE sql STABLE`,
				`CREATE OR REPLACE FUNCTION "Person_ByEmail"(p_email VARCHAR)
				RETURNS TABLE ("PersonId" INT, "FirstName" VARCHAR, "LastName" VARCHAR, "Email" VARCHAR, "Phones" TEXT)
				AS $$
					SELECT p."PersonId", p."FirstName", p."LastName", p."Email",
						string_agg(pp."Phone", ',' ORDER BY pp."Phone")
					FROM "Person" p
					LEFT JOIN "PersonPhone" pp ON pp."PersonId" = p."PersonId"
					WHERE p."Email" = p_email
					GROUP BY p."PersonId", p."FirstName", p."LastName", p."Email"
					ORDER BY p."PersonId"
				$$ LANGUAGE sql STABLE`,
			},
		},
		Routines: map[string]map[string]string{
			database.DriverSQLite: {
				ProcPersonsGet:       sqlitePersonsGet,
				ProcPersonsPhonesCsv: sqlitePersonsPhonesCsv,
				ProcPersonByEmail:    sqlitePersonByEmail,
			},
		},
	}
}
