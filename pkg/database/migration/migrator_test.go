package migration

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/person-directory/pkg/database"
)

func openDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.Options{Driver: database.DriverSQLite, DSN: ":memory:"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

var testMigrations = []Migration{
	{
		Name: "create_things",
		Statements: map[string][]string{
			database.DriverSQLite: {
				"CREATE TABLE Thing (Id INTEGER PRIMARY KEY, Name TEXT)",
				"INSERT INTO Thing (Id, Name) VALUES (1, 'one'), (2, 'two')",
			},
		},
		Routines: map[string]map[string]string{
			database.DriverSQLite: {"Things_Get": "SELECT Id, Name FROM Thing ORDER BY Id"},
		},
	},
	{
		Name: "add_third_thing",
		Statements: map[string][]string{
			database.DriverSQLite: {"INSERT INTO Thing (Id, Name) VALUES (3, 'three')"},
		},
	},
}

func TestRun_AppliesPendingOnce(t *testing.T) {
	db := openDB(t)
	m := NewMigrator(db, nil)
	ctx := context.Background()

	applied, err := m.Run(ctx, testMigrations...)
	require.NoError(t, err)
	assert.Equal(t, []string{"create_things", "add_third_thing"}, applied)

	applied, err = m.Run(ctx, testMigrations...)
	require.NoError(t, err)
	assert.Empty(t, applied)

	names, err := m.Applied(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"create_things", "add_third_thing"}, names)

	batch, err := m.LastBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, batch)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM Thing").Scan(&count))
	assert.Equal(t, 3, count)
}

func TestRun_RegistersRoutines(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	_, err := NewMigrator(db, nil).Run(ctx, testMigrations...)
	require.NoError(t, err)

	rows, err := db.Call(ctx, database.Procedure{Name: "Things_Get"})
	require.NoError(t, err)
	all, err := database.CollectRows(rows)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRun_FailedMigrationRollsBack(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	m := NewMigrator(db, nil)

	broken := Migration{
		Name: "broken",
		Statements: map[string][]string{
			database.DriverSQLite: {
				"CREATE TABLE Half (Id INTEGER)",
				"INSERT INTO Missing VALUES (1)",
			},
		},
	}

	applied, err := m.Run(ctx, broken)
	require.Error(t, err)
	assert.Empty(t, applied)

	names, err := m.Applied(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 'Half'").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestRun_BatchIncrements(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	m := NewMigrator(db, nil)

	_, err := m.Run(ctx, testMigrations[0])
	require.NoError(t, err)
	_, err = m.Run(ctx, testMigrations...)
	require.NoError(t, err)

	batch, err := m.LastBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, batch)
}
