package migrations

import (
	"github.com/biyonik/person-directory/pkg/database"
	"github.com/biyonik/person-directory/pkg/database/migration"
)

func createPersonTables() migration.Migration {
	return migration.Migration{
		Name: "0001_create_person_tables",
		Statements: map[string][]string{
			database.DriverMySQL: {
				`CREATE TABLE IF NOT EXISTS Person (
					PersonId INT AUTO_INCREMENT PRIMARY KEY,
					FirstName VARCHAR(100) NOT NULL,
					LastName VARCHAR(100) NULL,
					Email VARCHAR(255) NOT NULL,
					INDEX idx_person_email (Email)
				) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
				`CREATE TABLE IF NOT EXISTS PersonPhone (
					PersonPhoneId INT AUTO_INCREMENT PRIMARY KEY,
					PersonId INT NOT NULL,
					Phone VARCHAR(50) NOT NULL,
					FOREIGN KEY (PersonId) REFERENCES Person(PersonId) ON DELETE CASCADE
				) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
			},
			database.DriverPostgres: {
				`CREATE TABLE IF NOT EXISTS "Person" (
					"PersonId" SERIAL PRIMARY KEY,
					"FirstName" VARCHAR(100) NOT NULL,
					"LastName" VARCHAR(100) NULL,
					"Email" VARCHAR(255) NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_person_email ON "Person" ("Email")`,
				`CREATE TABLE IF NOT EXISTS "PersonPhone" (
					"PersonPhoneId" SERIAL PRIMARY KEY,
					"PersonId" INT NOT NULL REFERENCES "Person" ("PersonId") ON DELETE CASCADE,
					"Phone" VARCHAR(50) NOT NULL
				)`,
			},
			database.DriverSQLite: {
				`CREATE TABLE IF NOT EXISTS "Person" (
					"PersonId" INTEGER PRIMARY KEY AUTOINCREMENT,
					"FirstName" TEXT NOT NULL,
					"LastName" TEXT NULL,
					"Email" TEXT NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_person_email ON "Person" ("Email")`,
				`CREATE TABLE IF NOT EXISTS "PersonPhone" (
					"PersonPhoneId" INTEGER PRIMARY KEY AUTOINCREMENT,
					"PersonId" INTEGER NOT NULL REFERENCES "Person" ("PersonId") ON DELETE CASCADE,
					"Phone" TEXT NOT NULL
				)`,
			},
		},
	}
}
