package dto

import "time"

type PlanItineraryRequest struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	Clusters     int    `json:"clusters"`
	ClusterOrder []int  `json:"cluster_order"`
	MaxInterior  *int   `json:"max_interior"`
}

type SegmentResponse struct {
	Cluster int             `json:"cluster"`
	Label   int             `json:"label"`
	Miles   float64         `json:"miles"`
	Points  []PointResponse `json:"points"`
}

type ItineraryResponse struct {
	ID         string            `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	Start      string            `json:"start"`
	End        string            `json:"end"`
	TotalMiles float64           `json:"total_miles"`
	Route      []string          `json:"route"`
	Segments   []SegmentResponse `json:"segments"`
}

// ErrorResponse is returned for every non-2xx status. ClusterIndex is set
// only when a particular cluster in the traversal order failed.
type ErrorResponse struct {
	Error        string `json:"error"`
	ClusterIndex *int   `json:"cluster_index,omitempty"`
}
