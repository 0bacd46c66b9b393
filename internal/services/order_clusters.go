package services

import (
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/ports"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

var errNoClusters = errors.New("no clusters to order")

// ErrInvalidClusterOrder reports an explicit cluster order that does not name
// every cluster exactly once.
var ErrInvalidClusterOrder = errors.New("invalid cluster order")

// Centroid returns the mean position of the cluster's members.
func Centroid(c domain.Cluster) domain.Point {
	lats := make([]float64, len(c.Members))
	lons := make([]float64, len(c.Members))
	for i, p := range c.Members {
		lats[i] = p.Lat
		lons[i] = p.Lon
	}
	return domain.Point{
		Name: fmt.Sprintf("centroid-%d", c.Label),
		Lat:  stat.Mean(lats, nil),
		Lon:  stat.Mean(lons, nil),
	}
}

// OrderClusters chooses a traversal order: the cluster owning start comes
// first, the cluster owning end comes last, and the clusters in between are
// visited by repeatedly stepping to the nearest unvisited centroid.
//
// This is a planning shortcut: it trusts that a geographically tight walk
// over centroids leaves short hand-off legs. It does not search orders.
func OrderClusters(
	clusters []domain.Cluster,
	start domain.Point,
	end domain.Point,
	metric ports.Metric,
) ([]domain.Cluster, error) {
	if len(clusters) == 0 {
		return nil, fmt.Errorf("order clusters: %w", errNoClusters)
	}

	first, last := -1, -1
	for i, c := range clusters {
		if c.Contains(start.Name) {
			first = i
		}
		if c.Contains(end.Name) {
			last = i
		}
	}
	if first < 0 {
		return nil, fmt.Errorf("order clusters: %w: start %q is in no cluster", domain.ErrUnknownPoint, start.Name)
	}
	if last < 0 {
		return nil, fmt.Errorf("order clusters: %w: end %q is in no cluster", domain.ErrUnknownPoint, end.Name)
	}

	if len(clusters) == 1 {
		return []domain.Cluster{clusters[0]}, nil
	}
	if first == last {
		return nil, fmt.Errorf(
			"order clusters: %w: start %q and end %q share cluster %d",
			domain.ErrBrokenChain, start.Name, end.Name, clusters[first].Label,
		)
	}

	centroids := make([]domain.Point, len(clusters))
	for i, c := range clusters {
		centroids[i] = Centroid(c)
	}

	remaining := make(map[int]struct{}, len(clusters))
	for i := range clusters {
		if i != first && i != last {
			remaining[i] = struct{}{}
		}
	}

	ordered := make([]domain.Cluster, 0, len(clusters))
	ordered = append(ordered, clusters[first])
	cur := first

	for len(remaining) > 0 {
		next := -1
		bestD := 0.0
		for i := range remaining {
			d := metric.Distance(centroids[cur], centroids[i])
			// Tie-breaker keeps the walk deterministic despite map iteration order.
			if next < 0 || d < bestD || (d == bestD && clusters[i].Label < clusters[next].Label) {
				next, bestD = i, d
			}
		}

		ordered = append(ordered, clusters[next])
		delete(remaining, next)
		cur = next
	}

	ordered = append(ordered, clusters[last])
	return ordered, nil
}

// OrderByLabels arranges clusters in an explicitly supplied label order.
// Every cluster label must appear exactly once, the first cluster must hold
// start and the last must hold end.
func OrderByLabels(clusters []domain.Cluster, labels []int, start, end domain.Point) ([]domain.Cluster, error) {
	if len(clusters) == 0 {
		return nil, fmt.Errorf("order by labels: %w", errNoClusters)
	}
	if len(labels) != len(clusters) {
		return nil, fmt.Errorf("order by labels: %w: got %d labels for %d clusters", ErrInvalidClusterOrder, len(labels), len(clusters))
	}

	byLabel := make(map[int]domain.Cluster, len(clusters))
	for _, c := range clusters {
		byLabel[c.Label] = c
	}

	seen := make(map[int]struct{}, len(labels))
	ordered := make([]domain.Cluster, 0, len(labels))
	for _, l := range labels {
		c, ok := byLabel[l]
		if !ok {
			return nil, fmt.Errorf("order by labels: %w: unknown cluster label %d", ErrInvalidClusterOrder, l)
		}
		if _, dup := seen[l]; dup {
			return nil, fmt.Errorf("order by labels: %w: cluster label %d listed twice", ErrInvalidClusterOrder, l)
		}
		seen[l] = struct{}{}
		ordered = append(ordered, c)
	}

	first, last := ordered[0], ordered[len(ordered)-1]
	if !first.Contains(start.Name) {
		return nil, fmt.Errorf("order by labels: %w: first cluster %d does not hold start %q", ErrInvalidClusterOrder, first.Label, start.Name)
	}
	if !last.Contains(end.Name) {
		return nil, fmt.Errorf("order by labels: %w: last cluster %d does not hold end %q", ErrInvalidClusterOrder, last.Label, end.Name)
	}
	for _, c := range ordered[:len(ordered)-1] {
		if c.Contains(end.Name) {
			return nil, fmt.Errorf("order by labels: %w: end %q is also in cluster %d", ErrInvalidClusterOrder, end.Name, c.Label)
		}
	}
	for _, c := range ordered[1:] {
		if c.Contains(start.Name) {
			return nil, fmt.Errorf("order by labels: %w: start %q is also in cluster %d", ErrInvalidClusterOrder, start.Name, c.Label)
		}
	}

	return ordered, nil
}
