package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/chronos-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health                       public
//	GET  /api/v1/chronos               ?date=YYYY-MM-DD&time=HH:MM
//	POST /api/v1/chronos               {"date": "...", "time": "..."}
//	GET  /api/v1/weton/date/{date}
//	GET  /api/v1/weton/range           ?start=YYYY-MM-DD&end=YYYY-MM-DD
//	GET  /api/v1/shio/{year}
//	GET  /api/v1/numerology/date/{date}
//
// Everything under /api/v1 requires X-API-Key unless running in
// development without a key configured.
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
		RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, logger),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteMethodNotAllowed(w, "Method not allowed")
	})

	// ==========================================================================
	// Public routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)

	// ==========================================================================
	// Calculation routes (access key)
	// ==========================================================================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg, logger))

		r.Get("/chronos", handlers.GetChronos)
		r.Post("/chronos", handlers.PostChronos)

		r.Get("/weton/date/{date}", handlers.GetWetonDate)
		r.Get("/weton/range", handlers.GetWetonRange)

		r.Get("/shio/{year}", handlers.GetShio)

		r.Get("/numerology/date/{date}", handlers.GetNumerology)
	})

	return r
}
