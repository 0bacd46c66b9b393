package domain

// Immutable named geographic location. Identity is by Name.
type Point struct {
	Name string
	Lat  float64
	Lon  float64
}

// Return the point as a [lon, lat] vector, the axis order the partitioner clusters on.
func (p Point) LonLat() []float64 { return []float64{p.Lon, p.Lat} }

// Same reports whether p and o name the same location.
func (p Point) Same(o Point) bool { return p.Name == o.Name }

// IsZero reports whether p is the zero Point (no name assigned).
func (p Point) IsZero() bool { return p.Name == "" }

// IndexOf returns the position of the point named name in points, or -1.
func IndexOf(points []Point, name string) int {
	for i, p := range points {
		if p.Name == name {
			return i
		}
	}
	return -1
}
