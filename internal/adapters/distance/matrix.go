package distance

import (
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/ports"
)

// Matrix is a memoizing Metric: every pairwise distance over a fixed point
// set is computed once up front, so the exact search pays a map and slice
// lookup per edge instead of trigonometry.
//
// Points outside the precomputed set fall through to the wrapped Metric.
// The table is read-only after construction and safe for concurrent use.
type Matrix struct {
	base  ports.Metric
	index map[string]int
	dist  [][]float64
}

func NewMatrix(base ports.Metric, points []domain.Point) *Matrix {
	index := make(map[string]int, len(points))
	uniq := make([]domain.Point, 0, len(points))
	for _, p := range points {
		if _, ok := index[p.Name]; ok {
			continue
		}
		index[p.Name] = len(uniq)
		uniq = append(uniq, p)
	}

	n := len(uniq)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	// Fill the upper triangle and mirror it; the base metric is symmetric.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := base.Distance(uniq[i], uniq[j])
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	return &Matrix{base: base, index: index, dist: dist}
}

func (m *Matrix) Distance(a, b domain.Point) float64 {
	i, okA := m.index[a.Name]
	j, okB := m.index[b.Name]
	if !okA || !okB {
		return m.base.Distance(a, b)
	}
	return m.dist[i][j]
}

// Size returns the number of distinct points in the table.
func (m *Matrix) Size() int { return len(m.dist) }
