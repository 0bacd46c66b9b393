package ports

import "campaign-route-service/internal/domain"

// Contract for the edge weight between two points.
// Implementations must be symmetric, non-negative and safe for concurrent use.
type Metric interface {
	// Return the distance in miles between a and b.
	Distance(a, b domain.Point) float64
}

// Build a Metric specialised for a known point set (e.g. a precomputed table).
type MetricFactory func(points []domain.Point) Metric
