// -----------------------------------------------------------------------------
// Home Controller
// -----------------------------------------------------------------------------
// Kişi listesini farklı veri erişim yollarıyla gösteren action'lar.
// HTML action'ları views paketini, JSON action'ları response paketini
// kullanır. İş mantığı PersonService'tedir.
// -----------------------------------------------------------------------------

package controllers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/skip2/go-qrcode"

	"github.com/biyonik/person-directory/internal/http/request"
	"github.com/biyonik/person-directory/internal/http/response"
	"github.com/biyonik/person-directory/internal/models"
	"github.com/biyonik/person-directory/internal/services"
	"github.com/biyonik/person-directory/internal/views"
)

// QRCodeSize, kartvizit QR kodunun piksel boyutu.
const QRCodeSize = 256

type HomeController struct {
	persons     *services.PersonService
	lookupEmail string
	logger      *slog.Logger
}

// NewHomeController, lookupEmail PersonByEmail ve ContactCard için
// varsayılan adrestir; ?email= ile ezilebilir.
func NewHomeController(persons *services.PersonService, lookupEmail string, logger *slog.Logger) *HomeController {
	if logger == nil {
		logger = slog.Default()
	}
	return &HomeController{persons: persons, lookupEmail: lookupEmail, logger: logger}
}

// Index handles GET /
func (c *HomeController) Index(w http.ResponseWriter, r *request.Request) {
	persons, err := c.persons.Projected(r.Context())
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	c.render(w, r, views.PageData{Title: "Persons", Persons: persons})
}

// Switch handles GET /switch
func (c *HomeController) Switch(w http.ResponseWriter, r *request.Request) {
	persons, err := c.persons.Switched(r.Context())
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	c.render(w, r, views.PageData{Title: "Persons (switch)", Persons: persons, ShowEmail: true})
}

// ORM handles GET /orm?n=5
func (c *HomeController) ORM(w http.ResponseWriter, r *request.Request) {
	persons, err := c.persons.Top(r.Context(), r.QueryInt("n", services.DefaultTopCount))
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	c.render(w, r, views.PageData{Title: fmt.Sprintf("Top %d persons", len(persons)), Persons: persons, ShowEmail: true})
}

// ORMStoredProcedure handles GET /ormstoredprocedure
func (c *HomeController) ORMStoredProcedure(w http.ResponseWriter, r *request.Request) {
	persons, err := c.persons.ByProcedure(r.Context())
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	c.render(w, r, views.PageData{Title: "Persons (stored procedure)", Persons: persons, ShowEmail: true})
}

// JSON handles GET /json
func (c *HomeController) JSON(w http.ResponseWriter, r *request.Request) {
	persons, err := c.persons.ByProcedure(r.Context())
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	response.List(w, persons)
}

// LeanJSON handles GET /leanjson
func (c *HomeController) LeanJSON(w http.ResponseWriter, r *request.Request) {
	persons, err := c.persons.Lean(r.Context())
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	response.List(w, persons)
}

// PersonsPhones handles GET /personsphones
func (c *HomeController) PersonsPhones(w http.ResponseWriter, r *request.Request) {
	persons, err := c.persons.WithPhones(r.Context())
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	response.List(w, persons)
}

// PhonesPage handles GET /phones
// PersonsPhones ile aynı veri, telefon kolonuyla HTML olarak.
func (c *HomeController) PhonesPage(w http.ResponseWriter, r *request.Request) {
	persons, err := c.persons.WithPhones(r.Context())
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	c.render(w, r, views.PageData{Title: "Persons (phones)", Persons: persons, ShowEmail: true, ShowPhones: true})
}

// PersonByEmail handles GET /personbyemail?email=
func (c *HomeController) PersonByEmail(w http.ResponseWriter, r *request.Request) {
	person, err := c.persons.LeanPerson(r.Context(), r.Query("email", c.lookupEmail))
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	response.Success(w, http.StatusOK, person, nil)
}

// ContactCard handles GET /persons/card.png?email=
// Kişinin vCard'ını QR kod olarak PNG döndürür.
func (c *HomeController) ContactCard(w http.ResponseWriter, r *request.Request) {
	person, err := c.persons.ByEmail(r.Context(), r.Query("email", c.lookupEmail))
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	png, err := qrcode.Encode(person.VCard(), qrcode.Medium, QRCodeSize)
	if err != nil {
		respondError(w, r, c.logger, fmt.Errorf("qr code for person %d: %w", person.PersonID, err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", cardFileName(person)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// Health handles GET /health
func (c *HomeController) Health(w http.ResponseWriter, r *request.Request) {
	if err := c.persons.Ping(r.Context()); err != nil {
		c.logger.Warn("⚠️  Health check başarısız", "error", err)
		response.ServiceUnavailable(w, "")
		return
	}
	health := map[string]any{"status": "ok"}
	if stats := c.persons.CacheStats(); stats != nil {
		health["cache"] = stats
	}
	response.Success(w, http.StatusOK, health, nil)
}

// FlushCache handles POST /cache/flush
func (c *HomeController) FlushCache(w http.ResponseWriter, r *request.Request) {
	n, err := c.persons.InvalidateCache(r.Context())
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	response.Success(w, http.StatusOK, map[string]int{"flushed": n}, nil)
}

func (c *HomeController) render(w http.ResponseWriter, r *request.Request, data views.PageData) {
	if err := views.Render(w, views.PersonsPage, data); err != nil {
		respondError(w, r, c.logger, err)
	}
}

func cardFileName(p models.Person) string {
	return fmt.Sprintf("person-%d.png", p.PersonID)
}
