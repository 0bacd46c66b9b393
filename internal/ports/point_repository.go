package ports

import (
	"campaign-route-service/internal/domain"
	"context"
)

// Port: a boundary for retrieving Point entities from a data source.
type PointRepository interface {
	// Retrieve every point available for routing.
	ListPoints(ctx context.Context) ([]domain.Point, error)
}

// Optional extension of PointRepository that supports lookups by name.
type PointLookup interface {
	PointRepository
	// Return the points with the given names; unknown names are omitted.
	GetMany(ctx context.Context, names []string) (map[string]domain.Point, error)
}
