package handlers

import (
	"campaign-route-service/internal/api/dto"
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/ports"
	"campaign-route-service/internal/services"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type ItineraryHandler struct {
	Repo        ports.PointRepository
	Partitioner ports.Partitioner
	NewMetric   ports.MetricFactory
	Cache       ports.ItineraryCache
	Store       ports.ItineraryStore
	// Defaults fills in whatever the request body leaves unset.
	Defaults services.PlanCampaignRequest
}

// Plan partitions the point set, solves the chained itinerary and returns it.
func (h *ItineraryHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanItineraryRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq := h.Defaults
	if s := strings.TrimSpace(req.Start); s != "" {
		svcReq.Start = s
	}
	if e := strings.TrimSpace(req.End); e != "" {
		svcReq.End = e
	}
	if svcReq.Start == "" || svcReq.End == "" {
		writeError(w, r, http.StatusBadRequest, "start and end are required")
		return
	}

	if req.Clusters < 0 {
		writeError(w, r, http.StatusBadRequest, "clusters must not be negative")
		return
	}
	if req.Clusters > 0 {
		svcReq.ClusterCount = req.Clusters
	}
	if len(req.ClusterOrder) > 0 {
		svcReq.ClusterOrder = req.ClusterOrder
	}
	if req.MaxInterior != nil {
		if *req.MaxInterior < 0 {
			writeError(w, r, http.StatusBadRequest, "max_interior must not be negative")
			return
		}
		svcReq.Solver.MaxInterior = *req.MaxInterior
	}

	rec, err := services.PlanCampaign(r.Context(), svcReq, h.Repo, h.Partitioner, h.NewMetric, h.Cache, h.Store)
	if err != nil {
		h.writePlanError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toItineraryResponse(rec))
}

func (h *ItineraryHandler) writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	var sf *domain.SegmentFailedError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Printf("plan itinerary abandoned: %v", err)
		writeError(w, r, http.StatusServiceUnavailable, "request cancelled")
	case errors.Is(err, domain.ErrUnknownPoint), errors.Is(err, services.ErrInvalidClusterOrder):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &sf):
		idx := sf.Index
		writeJSON(w, r, http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), ClusterIndex: &idx})
	case errors.Is(err, domain.ErrBrokenChain), errors.Is(err, domain.ErrDegenerateInput):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("plan itinerary failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// Get returns a previously solved itinerary by id.
func (h *ItineraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if _, err := uuid.Parse(id); err != nil || h.Store == nil {
		writeError(w, r, http.StatusNotFound, "itinerary not found")
		return
	}

	rec, err := h.Store.GetItinerary(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "itinerary not found")
		return
	}
	if err != nil {
		log.Printf("get itinerary failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toItineraryResponse(rec))
}
