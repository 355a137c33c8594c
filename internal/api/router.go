package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/caseflow-hq/caseflow-api/internal/api/middleware"
)

// NewRouter assembles the HTTP routes.
func NewRouter(health *HealthHandler, queues *QueueHandler, stats *StatsHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Trace)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", health.Healthz)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/queues", queues.ListQueues)
		r.Get("/queues/{queueName}", queues.GetQueue)
		r.Post("/tenants/{tenantID}/stats/recompute", stats.RecomputeTenantStats)
		r.Get("/tenants/{tenantID}/stats/{view}", stats.GetTenantStats)
	})

	return r
}
