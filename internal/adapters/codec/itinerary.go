// Package codec holds the JSON wire form of solved itineraries shared by
// the SQL stores and the Redis cache.
package codec

import (
	"campaign-route-service/internal/domain"
	"encoding/json"
	"fmt"
	"time"
)

// Stored JSON shape of an itinerary. Field names are part of the on-disk
// format; change them only together with a migration.
type itineraryBody struct {
	Start    pointBody     `json:"start"`
	End      pointBody     `json:"end"`
	Total    float64       `json:"total_miles"`
	Segments []segmentBody `json:"segments"`
}

type segmentBody struct {
	Label  int         `json:"label"`
	Length float64     `json:"miles"`
	Points []pointBody `json:"points"`
}

type pointBody struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func toPointBody(p domain.Point) pointBody {
	return pointBody{Name: p.Name, Lat: p.Lat, Lon: p.Lon}
}

func (p pointBody) point() domain.Point {
	return domain.Point{Name: p.Name, Lat: p.Lat, Lon: p.Lon}
}

// EncodeItinerary marshals it into the stored JSON shape.
func EncodeItinerary(it *domain.Itinerary) ([]byte, error) {
	if it == nil {
		return nil, fmt.Errorf("encode itinerary: itinerary is nil")
	}

	body := itineraryBody{
		Start:    toPointBody(it.Start),
		End:      toPointBody(it.End),
		Total:    it.Total,
		Segments: make([]segmentBody, 0, len(it.Segments)),
	}
	for _, s := range it.Segments {
		sb := segmentBody{Label: s.Label, Length: s.Length, Points: make([]pointBody, 0, len(s.Points))}
		for _, p := range s.Points {
			sb.Points = append(sb.Points, toPointBody(p))
		}
		body.Segments = append(body.Segments, sb)
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode itinerary: %w", err)
	}
	return b, nil
}

// DecodeItinerary is the inverse of EncodeItinerary.
func DecodeItinerary(b []byte) (*domain.Itinerary, error) {
	var body itineraryBody
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, fmt.Errorf("decode itinerary: %w", err)
	}

	it := &domain.Itinerary{
		Start:    body.Start.point(),
		End:      body.End.point(),
		Total:    body.Total,
		Segments: make([]domain.Segment, 0, len(body.Segments)),
	}
	for _, sb := range body.Segments {
		seg := domain.Segment{Label: sb.Label, Length: sb.Length, Points: make([]domain.Point, 0, len(sb.Points))}
		for _, p := range sb.Points {
			seg.Points = append(seg.Points, p.point())
		}
		it.Segments = append(it.Segments, seg)
	}
	return it, nil
}

type recordBody struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Itinerary json.RawMessage `json:"itinerary"`
}

// EncodeRecord marshals a full record, id and timestamp included.
func EncodeRecord(rec *domain.ItineraryRecord) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("encode record: record is nil")
	}
	it, err := EncodeItinerary(rec.Itinerary)
	if err != nil {
		return nil, fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	b, err := json.Marshal(recordBody{ID: rec.ID, CreatedAt: rec.CreatedAt, Itinerary: it})
	if err != nil {
		return nil, fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	return b, nil
}

// DecodeRecord is the inverse of EncodeRecord.
func DecodeRecord(b []byte) (*domain.ItineraryRecord, error) {
	var body recordBody
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	it, err := DecodeItinerary(body.Itinerary)
	if err != nil {
		return nil, fmt.Errorf("decode record %s: %w", body.ID, err)
	}
	return &domain.ItineraryRecord{ID: body.ID, CreatedAt: body.CreatedAt, Itinerary: it}, nil
}
