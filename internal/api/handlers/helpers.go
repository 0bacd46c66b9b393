package handlers

import (
	"campaign-route-service/internal/api/dto"
	"campaign-route-service/internal/domain"
	"encoding/json"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

func toPointResponse(p domain.Point) dto.PointResponse {
	return dto.PointResponse{Name: p.Name, Lat: p.Lat, Lon: p.Lon}
}

func toItineraryResponse(rec *domain.ItineraryRecord) dto.ItineraryResponse {
	it := rec.Itinerary

	route := it.Route()
	res := dto.ItineraryResponse{
		ID:         rec.ID,
		CreatedAt:  rec.CreatedAt,
		Start:      it.Start.Name,
		End:        it.End.Name,
		TotalMiles: it.Total,
		Route:      make([]string, 0, len(route)),
		Segments:   make([]dto.SegmentResponse, 0, len(it.Segments)),
	}
	for _, p := range route {
		res.Route = append(res.Route, p.Name)
	}
	for i, seg := range it.Segments {
		sr := dto.SegmentResponse{
			Cluster: i + 1,
			Label:   seg.Label,
			Miles:   seg.Length,
			Points:  make([]dto.PointResponse, 0, len(seg.Points)),
		}
		for _, p := range seg.Points {
			sr.Points = append(sr.Points, toPointResponse(p))
		}
		res.Segments = append(res.Segments, sr)
	}
	return res
}
