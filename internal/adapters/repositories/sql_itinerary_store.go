package repositories

import (
	"campaign-route-service/internal/adapters/codec"
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/platform/obs"
	"campaign-route-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLItineraryStore is a Postgres-backed implementation of the ItineraryStore port.
type SQLItineraryStore struct{ DB *sql.DB }

func NewSQLItineraryStore(db *sql.DB) *SQLItineraryStore {
	return &SQLItineraryStore{DB: db}
}

func (s *SQLItineraryStore) SaveItinerary(ctx context.Context, rec *domain.ItineraryRecord) (err error) {
	defer obs.Time(ctx, "itinerary.store.Save")(&err)

	if s.DB == nil {
		return errors.New("sql itinerary store: DB is nil")
	}
	if rec == nil || rec.ID == "" || rec.Itinerary == nil {
		return errors.New("save itinerary: record must have an id and an itinerary")
	}

	body, err := codec.EncodeItinerary(rec.Itinerary)
	if err != nil {
		return fmt.Errorf("save itinerary id=%s: %w", rec.ID, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO itineraries (id, start_name, end_name, total_miles, created_at, body)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET total_miles = EXCLUDED.total_miles,
		body = EXCLUDED.body;
	`,
		rec.ID,
		rec.Itinerary.Start.Name,
		rec.Itinerary.End.Name,
		rec.Itinerary.Total,
		rec.CreatedAt.UTC(),
		string(body),
	)
	if err != nil {
		return fmt.Errorf("save itinerary id=%s: %w", rec.ID, err)
	}

	return nil
}

func (s *SQLItineraryStore) GetItinerary(ctx context.Context, id string) (_ *domain.ItineraryRecord, err error) {
	defer obs.Time(ctx, "itinerary.store.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("sql itinerary store: DB is nil")
	}

	var (
		createdAt time.Time
		body      []byte
	)
	err = s.DB.QueryRowContext(ctx, `
	SELECT created_at, body
	FROM itineraries
	WHERE id = $1;
	`, id).Scan(&createdAt, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get itinerary id=%s: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get itinerary id=%s: %w", id, err)
	}

	it, err := codec.DecodeItinerary(body)
	if err != nil {
		return nil, fmt.Errorf("get itinerary id=%s: %w", id, err)
	}

	return &domain.ItineraryRecord{ID: id, CreatedAt: createdAt.UTC(), Itinerary: it}, nil
}
