// Package views, HTML sayfalarını gömülü html/template dosyalarından
// üretir. Şablonlar başlangıçta bir kere parse edilir.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/biyonik/person-directory/internal/models"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// PersonsPage, kişi listesi sayfası.
const PersonsPage = "persons.html"

// PageData, persons.html şablonunun verisi.
type PageData struct {
	Title      string
	Persons    []models.Person
	ShowEmail  bool
	ShowPhones bool
}

// Render, şablonu önce belleğe yazar; hata olursa yanıta yarım HTML
// gönderilmez ve hata çağırana döner.
func Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}
