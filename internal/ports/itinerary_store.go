package ports

import (
	"campaign-route-service/internal/domain"
	"context"
	"errors"
)

// ErrNotFound is returned by stores and caches when a key has no entry.
var ErrNotFound = errors.New("not found")

// Port: persistent storage for solved itineraries.
type ItineraryStore interface {
	SaveItinerary(ctx context.Context, rec *domain.ItineraryRecord) error
	// Return ErrNotFound when no itinerary has the given id.
	GetItinerary(ctx context.Context, id string) (*domain.ItineraryRecord, error)
}

// Port: short-lived cache of solved itineraries keyed by a digest of the solve input.
type ItineraryCache interface {
	// Return ErrNotFound on a miss.
	Get(ctx context.Context, key string) (*domain.ItineraryRecord, error)
	Put(ctx context.Context, key string, rec *domain.ItineraryRecord) error
}
