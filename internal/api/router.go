package api

import (
	"campaign-route-service/internal/api/handlers"
	"campaign-route-service/internal/ports"
	"campaign-route-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// cache and store may be nil.
func NewRouter(
	repo ports.PointRepository,
	partitioner ports.Partitioner,
	newMetric ports.MetricFactory,
	cache ports.ItineraryCache,
	store ports.ItineraryStore,
	defaults services.PlanCampaignRequest,
) http.Handler {
	mux := http.NewServeMux()

	pointHandler := &handlers.PointHandler{Repo: repo}
	itineraryHandler := &handlers.ItineraryHandler{
		Repo:        repo,
		Partitioner: partitioner,
		NewMetric:   newMetric,
		Cache:       cache,
		Store:       store,
		Defaults:    defaults,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/points", pointHandler.List)
	mux.HandleFunc("/itineraries", itineraryHandler.Plan)
	mux.HandleFunc("/itineraries/{id}", itineraryHandler.Get)

	return loggingMiddleware(mux)
}
