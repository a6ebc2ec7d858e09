package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/namelens/handlescan/internal/metrics"
	"github.com/namelens/handlescan/internal/server/handlers"
)

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes() {
	s.router.Get("/health", s.health.HealthHandler)
	s.router.Get("/health/live", s.health.LivenessHandler)
	s.router.Get("/health/ready", s.health.ReadinessHandler)

	s.router.Get("/version", handlers.VersionHandler)

	if s.opts.MetricsEnabled {
		s.router.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/platforms", handlers.PlatformsHandler)
		r.Post("/check", s.checks.CheckHandler)
	})
}
