package distance

import (
	"math"
	"testing"

	"campaign-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreatCircleMilesKnownArcs(t *testing.T) {
	origin := domain.Point{Name: "O", Lat: 0, Lon: 0}

	cases := []struct {
		name string
		to   domain.Point
		want float64
	}{
		{"one degree of latitude", domain.Point{Name: "N", Lat: 1, Lon: 0}, EarthRadiusMiles * math.Pi / 180},
		{"quarter meridian", domain.Point{Name: "P", Lat: 90, Lon: 0}, EarthRadiusMiles * math.Pi / 2},
		{"quarter equator", domain.Point{Name: "E", Lat: 0, Lon: 90}, EarthRadiusMiles * math.Pi / 2},
		{"antipode", domain.Point{Name: "A", Lat: 0, Lon: 180}, EarthRadiusMiles * math.Pi},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, GreatCircleMiles(origin, tc.to), 1e-6)
		})
	}
}

func TestGreatCircleSymmetricAndZero(t *testing.T) {
	desMoines := domain.Point{Name: "Iowa", Lat: 41.591064, Lon: -93.603715}
	dc := domain.Point{Name: "DC", Lat: 38.895110, Lon: -77.036366}
	juneau := domain.Point{Name: "Alaska", Lat: 58.301598, Lon: -134.420212}

	points := []domain.Point{desMoines, dc, juneau}
	var m GreatCircle
	for _, a := range points {
		require.Zero(t, m.Distance(a, a), "distance(%s,%s)", a.Name, a.Name)
		for _, b := range points {
			assert.Equal(t, m.Distance(a, b), m.Distance(b, a), "distance(%s,%s) not symmetric", a.Name, b.Name)
			assert.GreaterOrEqual(t, m.Distance(a, b), 0.0)
		}
	}

	// Des Moines to Washington is about 892 miles as the crow flies.
	assert.InDelta(t, 891.9, m.Distance(desMoines, dc), 0.5)
}

func TestMatrixMatchesBaseMetric(t *testing.T) {
	points := []domain.Point{
		{Name: "A", Lat: 30, Lon: -90},
		{Name: "B", Lat: 35, Lon: -85},
		{Name: "C", Lat: 40, Lon: -100},
		{Name: "A", Lat: 30, Lon: -90},
	}
	m := NewMatrix(GreatCircle{}, points)
	require.Equal(t, 3, m.Size())

	for _, a := range points {
		for _, b := range points {
			assert.InDelta(t, GreatCircleMiles(a, b), m.Distance(a, b), 1e-9)
		}
	}

	outside := domain.Point{Name: "Z", Lat: 45, Lon: -70}
	assert.InDelta(t, GreatCircleMiles(points[0], outside), m.Distance(points[0], outside), 1e-9)
}

func TestMockMetricIsSymmetric(t *testing.T) {
	m := NewMockMetric([]MockPair{{From: "A", To: "B", Miles: 7}})
	a, b := domain.Point{Name: "A"}, domain.Point{Name: "B"}
	assert.Equal(t, 7.0, m.Distance(a, b))
	assert.Equal(t, 7.0, m.Distance(b, a))
	assert.Zero(t, m.Distance(a, a))
}
