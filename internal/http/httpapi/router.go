package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"copyhub/internal/http/handlers"
	"copyhub/internal/middleware"
)

// Options configures the cross-cutting middleware.
type Options struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
	CountryLookup   middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.Country(opts.CountryLookup),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/api", func(r chi.Router) {
		r.Route("/generate", func(r chi.Router) {
			r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
			r.Post("/yadirect", app.GenerateYaDirect)
			r.Post("/email-social", app.GenerateEmailSocial)
			r.Post("/loyalty", app.GenerateLoyalty)
		})
		r.Route("/history", func(r chi.Router) {
			r.Get("/", app.HistoryList)
			r.Patch("/{id}/favorite", app.HistoryToggleFavorite)
			r.Delete("/{id}", app.HistoryDelete)
		})
		r.Get("/stats", app.StatsSummary)
	})

	return r
}
