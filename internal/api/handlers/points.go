package handlers

import (
	"campaign-route-service/internal/api/dto"
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/ports"
	"log"
	"net/http"
	"slices"
	"strings"
)

// PointHandler exposes read-only point retrieval endpoints.
type PointHandler struct {
	Repo ports.PointRepository
}

// List returns every point, or only the ones named by repeated ?name=
// parameters. Unknown names are skipped.
func (h *PointHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	names := r.URL.Query()["name"]

	var (
		points []domain.Point
		err    error
	)
	if lookup, ok := h.Repo.(ports.PointLookup); ok && len(names) > 0 {
		var byName map[string]domain.Point
		byName, err = lookup.GetMany(r.Context(), names)
		for _, p := range byName {
			points = append(points, p)
		}
		slices.SortFunc(points, func(a, b domain.Point) int { return strings.Compare(a.Name, b.Name) })
	} else {
		points, err = h.Repo.ListPoints(r.Context())
		if err == nil && len(names) > 0 {
			points = slices.DeleteFunc(points, func(p domain.Point) bool {
				return !slices.ContainsFunc(names, func(n string) bool { return strings.TrimSpace(n) == p.Name })
			})
		}
	}
	if err != nil {
		log.Printf("list points failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPointsResponse{
		Points: make([]dto.PointResponse, 0, len(points)),
	}
	for _, p := range points {
		res.Points = append(res.Points, toPointResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}
