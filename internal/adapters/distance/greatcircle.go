package distance

import (
	"campaign-route-service/internal/domain"

	"github.com/golang/geo/s2"
)

// Mean Earth radius in statute miles (6371.009 km).
const EarthRadiusMiles = 3958.7613

// GreatCircle implements ports.Metric as the spherical great-circle distance in miles.
// It is stateless and safe for concurrent use.
type GreatCircle struct{}

func (GreatCircle) Distance(a, b domain.Point) float64 {
	return GreatCircleMiles(a, b)
}

// GreatCircleMiles returns the great-circle distance between a and b in miles.
// Coordinates are not validated; out-of-range values are the loader's concern.
func GreatCircleMiles(a, b domain.Point) float64 {
	if a.Lat == b.Lat && a.Lon == b.Lon {
		return 0
	}
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusMiles
}
