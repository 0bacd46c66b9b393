package domain

import (
	"time"
)

// Represents the optimal traversal of one cluster.
// Points[0] is the entry anchor; when an exit was mandated it is the last point.
// Length is the sum of consecutive great-circle distances in miles.
type Segment struct {
	Label  int
	Points []Point
	Length float64
}

// First returns the entry point of the segment.
func (s Segment) First() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	return s.Points[0]
}

// Last returns the final point of the segment, the hand-off anchor for the next cluster.
func (s Segment) Last() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	return s.Points[len(s.Points)-1]
}

// Represents the full route from the global start to the global end.
// It is the concatenation of Segments in traversal order and is immutable
// once returned by the chain orchestrator.
type Itinerary struct {
	Start    Point
	End      Point
	Segments []Segment
	Total    float64
}

// Route returns the flat visiting order. A hand-off anchor that closes one
// segment and opens the next is listed once.
func (it *Itinerary) Route() []Point {
	route := make([]Point, 0, len(it.Segments)*4)
	for _, seg := range it.Segments {
		pts := seg.Points
		if len(route) > 0 && len(pts) > 0 && route[len(route)-1].Same(pts[0]) {
			pts = pts[1:]
		}
		route = append(route, pts...)
	}
	return route
}

// A solved itinerary as persisted and served by the API.
type ItineraryRecord struct {
	ID        string
	CreatedAt time.Time
	Itinerary *Itinerary
}
