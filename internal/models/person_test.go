package models

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/person-directory/pkg/database/rowmapper"
)

func TestPersonMapper_MapsProcedureRow(t *testing.T) {
	row := rowmapper.NewRow(
		[]string{"PersonId", "FirstName", "LastName", "Email", "Phones"},
		[]any{int64(1), "Steve", "Harvey", []byte("steveharvey@crazyfunny.com"), "555-0100,555-0101"},
	)

	p, err := PersonMapper.MapNew(row)
	require.NoError(t, err)
	assert.Equal(t, Person{
		PersonID:  1,
		FirstName: "Steve",
		LastName:  "Harvey",
		Email:     "steveharvey@crazyfunny.com",
		Phones:    "555-0100,555-0101",
	}, p)
}

func TestPersonMapper_NullLastName(t *testing.T) {
	row := rowmapper.NewRow(
		[]string{"PersonId", "FirstName", "LastName"},
		[]any{int64(5), "Cher", sql.NullString{}},
	)

	p, err := PersonMapper.MapNew(row)
	require.NoError(t, err)
	assert.Equal(t, "", p.LastName)
	assert.Equal(t, "Cher", p.FullName())
}

func TestPersonMapper_ConversionError(t *testing.T) {
	row := rowmapper.NewRow([]string{"PersonId"}, []any{"seven"})

	_, err := PersonMapper.MapNew(row)
	var convErr *rowmapper.ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "PersonId", convErr.Column)
}

func TestPerson_JSONIsSnakeCase(t *testing.T) {
	out, err := json.Marshal(Person{PersonID: 7, FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"person_id":7,"first_name":"Ada","last_name":"Lovelace"}`, string(out))
}

func TestLeanPersons(t *testing.T) {
	lean := LeanPersons([]Person{{PersonID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "a@b.c"}})
	assert.Equal(t, []PersonSummary{{FirstName: "Ada", LastName: "Lovelace"}}, lean)
	assert.Empty(t, LeanPersons(nil))
}

func TestPerson_PhoneListAndVCard(t *testing.T) {
	p := Person{FirstName: "Steve", LastName: "Harvey", Email: "steveharvey@crazyfunny.com", Phones: "555-0100, ,555-0101"}
	assert.Equal(t, []string{"555-0100", "555-0101"}, p.PhoneList())

	card := p.VCard()
	assert.Contains(t, card, "BEGIN:VCARD\r\n")
	assert.Contains(t, card, "N:Harvey;Steve;;;\r\n")
	assert.Contains(t, card, "FN:Steve Harvey\r\n")
	assert.Contains(t, card, "EMAIL;TYPE=INTERNET:steveharvey@crazyfunny.com\r\n")
	assert.Contains(t, card, "TEL;TYPE=VOICE:555-0101\r\n")

	assert.Empty(t, Person{}.PhoneList())
	assert.Equal(t, `a\,b\;c`, vcardEscape("a,b;c"))
}
