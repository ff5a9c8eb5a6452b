package migrations

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/person-directory/pkg/database"
	"github.com/biyonik/person-directory/pkg/database/migration"
)

func migratedDB(t *testing.T) *database.DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(context.Background(), database.Options{Driver: database.DriverSQLite, DSN: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	applied, err := migration.NewMigrator(db, logger).Run(context.Background(), All()...)
	require.NoError(t, err)
	require.Len(t, applied, len(All()))
	return db
}

func TestAll_EveryDriverHasStatements(t *testing.T) {
	for _, m := range All() {
		for _, driver := range []string{database.DriverMySQL, database.DriverPostgres} {
			assert.NotEmpty(t, m.Statements[driver], "%s has no %s statements", m.Name, driver)
		}
	}
}

func TestSeed_RowsArePresent(t *testing.T) {
	db := migratedDB(t)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "Person"`).Scan(&count))
	assert.Equal(t, SeedCount(), count)

	var lastName *string
	require.NoError(t, db.QueryRow(`SELECT "LastName" FROM "Person" WHERE "Email" = 'cher@believe.com'`).Scan(&lastName))
	assert.Nil(t, lastName)
}

func TestRoutines_PersonsGet(t *testing.T) {
	db := migratedDB(t)

	rows, err := db.Call(context.Background(), database.Procedure{Name: ProcPersonsGet})
	require.NoError(t, err)
	list, err := database.CollectRows(rows)
	require.NoError(t, err)

	require.Len(t, list, SeedCount())
	assert.Equal(t, []string{"PersonId", "FirstName", "LastName", "Email"}, list[0].Names())
}

func TestRoutines_PhonesCsv(t *testing.T) {
	db := migratedDB(t)

	rows, err := db.Call(context.Background(), database.Procedure{Name: ProcPersonsPhonesCsv})
	require.NoError(t, err)
	list, err := database.CollectRows(rows)
	require.NoError(t, err)
	require.Len(t, list, SeedCount())

	phones, ok := list[0].Get("Phones")
	require.True(t, ok)
	assert.Equal(t, "555-0100,555-0101", phones)

	phones, _ = list[2].Get("Phones")
	assert.Nil(t, phones)
}

func TestRoutines_PersonByEmail(t *testing.T) {
	db := migratedDB(t)
	ctx := context.Background()

	rows, err := db.Call(ctx, database.Procedure{
		Name:   ProcPersonByEmail,
		Params: []database.Param{{Name: "Email", Value: "steveharvey@crazyfunny.com"}},
	})
	require.NoError(t, err)
	list, err := database.CollectRows(rows)
	require.NoError(t, err)
	require.Len(t, list, 1)

	first, _ := list[0].Get("FirstName")
	assert.Equal(t, "Steve", first)

	rows, err = db.Call(ctx, database.Procedure{
		Name:   ProcPersonByEmail,
		Params: []database.Param{{Name: "Email", Value: "nobody@example.com"}},
	})
	require.NoError(t, err)
	list, err = database.CollectRows(rows)
	require.NoError(t, err)
	assert.Empty(t, list)
}
