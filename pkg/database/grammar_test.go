package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarFor(t *testing.T) {
	for _, driver := range []string{DriverMySQL, DriverPostgres, DriverSQLite} {
		g, err := GrammarFor(driver)
		require.NoError(t, err)
		assert.Equal(t, driver, g.Name())
	}

	_, err := GrammarFor("mssql")
	assert.Error(t, err)
}

func TestWrap_PerDialect(t *testing.T) {
	cases := []struct {
		grammar Grammar
		in      string
		want    string
	}{
		{NewMySQLGrammar(), "Person", "`Person`"},
		{NewMySQLGrammar(), "Person.PersonId", "`Person`.`PersonId`"},
		{NewPostgresGrammar(), "Person", `"Person"`},
		{NewSQLiteGrammar(), "Person.FirstName", `"Person"."FirstName"`},
		{NewPostgresGrammar(), "*", "*"},
	}

	for _, tc := range cases {
		got, err := tc.grammar.Wrap(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestWrap_RejectsUnsafeIdentifiers(t *testing.T) {
	for _, in := range []string{"id`", `id"`, "id; DROP TABLE Person", "Person.", ".id", ""} {
		_, err := NewMySQLGrammar().Wrap(in)
		assert.Error(t, err, in)
	}
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "?", NewMySQLGrammar().Placeholder(3))
	assert.Equal(t, "?", NewSQLiteGrammar().Placeholder(1))
	assert.Equal(t, "$3", NewPostgresGrammar().Placeholder(3))
}

func TestCompileSelect_MySQL(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar()).
		Table("Person").
		Select("PersonId", "FirstName", "LastName").
		Where("LastName", "=", "Lovelace").
		OrWhere("FirstName", "like", "A%").
		OrderBy("FirstName", "desc").
		Limit(5).
		Offset(10)

	sql, args, err := qb.ToSQL()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT `PersonId`, `FirstName`, `LastName` FROM `Person` WHERE `LastName` = ? OR `FirstName` LIKE ? ORDER BY `FirstName` DESC LIMIT 5 OFFSET 10",
		sql)
	assert.Equal(t, []any{"Lovelace", "A%"}, args)
}

func TestCompileSelect_PostgresNumbersPlaceholders(t *testing.T) {
	qb := NewBuilder(nil, NewPostgresGrammar()).
		Table("Person").
		WhereIn("PersonId", []any{1, 2, 3}).
		Where("Email", "!=", "x@y.z").
		WhereNotNull("LastName")

	sql, args, err := qb.ToSQL()
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT * FROM "Person" WHERE "PersonId" IN ($1, $2, $3) AND "Email" != $4 AND "LastName" IS NOT NULL`,
		sql)
	assert.Equal(t, []any{1, 2, 3, "x@y.z"}, args)
}

func TestCompileSelect_Errors(t *testing.T) {
	g := NewSQLiteGrammar()

	_, _, err := NewBuilder(nil, g).Select("PersonId").ToSQL()
	assert.Error(t, err, "table missing")

	_, _, err = NewBuilder(nil, g).Table("Person").Where("PersonId", "; DROP", 1).ToSQL()
	assert.Error(t, err, "operator not whitelisted")

	_, _, err = NewBuilder(nil, g).Table("Person").WhereIn("PersonId", []any{}).ToSQL()
	assert.Error(t, err, "empty IN")

	_, _, err = NewBuilder(nil, g).Table("Person").Where("LastName", "IS", "x").ToSQL()
	assert.Error(t, err, "IS with value")

	_, _, err = NewBuilder(nil, g).Table("Person").Offset(5).ToSQL()
	assert.Error(t, err, "offset without limit")
}

func TestCompileCall(t *testing.T) {
	proc := Procedure{Name: "Person_ByEmail", Params: []Param{{Name: "Email", Value: "a@b.c"}}}

	sql, args, err := NewMySQLGrammar().CompileCall(proc)
	require.NoError(t, err)
	assert.Equal(t, "CALL `Person_ByEmail`(?)", sql)
	assert.Equal(t, []any{"a@b.c"}, args)

	sql, args, err = NewPostgresGrammar().CompileCall(proc)
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "Person_ByEmail"($1)`, sql)
	assert.Equal(t, []any{"a@b.c"}, args)

	sql, _, err = NewMySQLGrammar().CompileCall(Procedure{Name: "Persons_Get"})
	require.NoError(t, err)
	assert.Equal(t, "CALL `Persons_Get`()", sql)

	_, _, err = NewSQLiteGrammar().CompileCall(proc)
	assert.True(t, errors.Is(err, ErrProceduresUnsupported))

	_, _, err = NewMySQLGrammar().CompileCall(Procedure{Name: "x; DROP"})
	assert.Error(t, err)
}
