package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Alfex4936/kanacheck/internal/config"
	"github.com/Alfex4936/kanacheck/internal/middleware"
	"github.com/Alfex4936/kanacheck/kanacheck"
)

// NewRouter wires the API. Order matters: recover -> request id ->
// logging -> cors -> body limit.
func NewRouter(cfg config.Config, logger zerolog.Logger, srv *kanacheck.Server) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxBodyKB) * 1024))

	r.Get("/health", kanacheck.HealthHandler)
	r.Get("/openapi.json", kanacheck.OpenAPIHandler)
	r.Get("/", kanacheck.DocsHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/check", srv.CheckHandler)
		r.Get("/allowlist", srv.AllowListHandler)
	})

	return r
}
