package distance

import (
	"campaign-route-service/internal/domain"
)

type MockPair struct {
	From, To string
	Miles    float64
}

// MockMetric serves fixed distances by point name for tests.
// Pairs are symmetric; unknown pairs and self-pairs are 0.
type MockMetric struct {
	m map[string]float64
}

func NewMockMetric(pairs []MockPair) *MockMetric {
	m := make(map[string]float64, 2*len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = p.Miles
		m[p.To+"|"+p.From] = p.Miles
	}
	return &MockMetric{m: m}
}

func (p *MockMetric) Distance(a, b domain.Point) float64 {
	return p.m[a.Name+"|"+b.Name]
}
