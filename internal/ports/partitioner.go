package ports

import (
	"campaign-route-service/internal/domain"
	"context"
)

// Contract for splitting a point set into k clusters. Every point must land
// in exactly one non-empty cluster.
type Partitioner interface {
	Partition(ctx context.Context, points []domain.Point, k int) ([]domain.Cluster, error)
}
