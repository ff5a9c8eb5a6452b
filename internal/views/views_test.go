package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/person-directory/internal/models"
)

func TestRender_PersonsPage(t *testing.T) {
	rec := httptest.NewRecorder()
	err := Render(rec, PersonsPage, PageData{
		Title: "Persons",
		Persons: []models.Person{
			{PersonID: 1, FirstName: "Steve", LastName: "Harvey", Phones: "555-0100"},
			{PersonID: 2, FirstName: "<b>Ada</b>"},
		},
		ShowPhones: true,
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "<title>Persons</title>")
	assert.Contains(t, body, "<td>Harvey</td>")
	assert.Contains(t, body, "<th>Phones</th>")
	assert.Contains(t, body, "<td>555-0100</td>")
	assert.NotContains(t, body, "<th>Email</th>")
	assert.Contains(t, body, "&lt;b&gt;Ada&lt;/b&gt;")
	assert.Contains(t, body, "2 kayıt")
}

func TestRender_Empty(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, Render(rec, PersonsPage, PageData{Title: "Empty"}))
	assert.Contains(t, rec.Body.String(), "Kayıt bulunamadı.")
}

func TestRender_UnknownTemplate(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Error(t, Render(rec, "missing.html", PageData{}))
	assert.Empty(t, rec.Body.String())
}
