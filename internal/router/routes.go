package router

import (
	"log/slog"

	"github.com/biyonik/person-directory/internal/controllers"
	"github.com/biyonik/person-directory/internal/middleware"
)

// Setup, uygulamanın tüm route'larını ve global middleware'lerini kurar.
// limiter nil ise rate limiting uygulanmaz.
func Setup(home *controllers.HomeController, logger *slog.Logger, limiter *middleware.RateLimiter) *Router {
	r := New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.PanicRecovery(logger))
	r.Use(middleware.CORSMiddleware("*"))
	if limiter != nil {
		r.Use(middleware.RateLimitWith(limiter))
	}

	// HTML sayfaları
	r.GET("/", home.Index)
	r.GET("/switch", home.Switch)
	r.GET("/orm", home.ORM)
	r.GET("/ormstoredprocedure", home.ORMStoredProcedure)
	r.GET("/phones", home.PhonesPage)

	// JSON
	r.GET("/json", home.JSON)
	r.GET("/leanjson", home.LeanJSON)
	r.GET("/personsphones", home.PersonsPhones)
	r.GET("/personbyemail", home.PersonByEmail)

	r.GET("/persons/card.png", home.ContactCard)

	r.GET("/health", home.Health)
	r.POST("/cache/flush", home.FlushCache)

	return r
}
