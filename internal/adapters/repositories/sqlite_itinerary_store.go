package repositories

import (
	"campaign-route-service/internal/adapters/codec"
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite-backed implementation of the ItineraryStore port.
type SqliteItineraryStore struct{ DB *sql.DB }

func NewSqliteItineraryStore(db *sql.DB) *SqliteItineraryStore {
	return &SqliteItineraryStore{DB: db}
}

func (s *SqliteItineraryStore) SaveItinerary(ctx context.Context, rec *domain.ItineraryRecord) error {
	if s.DB == nil {
		return errors.New("sqlite itinerary store: DB is nil")
	}
	if rec == nil || rec.ID == "" || rec.Itinerary == nil {
		return errors.New("save itinerary: record must have an id and an itinerary")
	}

	body, err := codec.EncodeItinerary(rec.Itinerary)
	if err != nil {
		return fmt.Errorf("save itinerary id=%s: %w", rec.ID, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO itineraries (
		id,
		start_name,
		end_name,
		total_miles,
		created_at,
		body
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`,
		rec.ID,
		rec.Itinerary.Start.Name,
		rec.Itinerary.End.Name,
		rec.Itinerary.Total,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(body),
	)
	if err != nil {
		return fmt.Errorf("save itinerary id=%s: %w", rec.ID, err)
	}

	return nil
}

func (s *SqliteItineraryStore) GetItinerary(ctx context.Context, id string) (*domain.ItineraryRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite itinerary store: DB is nil")
	}

	var createdAt, body string
	err := s.DB.QueryRowContext(ctx, `
	SELECT created_at, body
	FROM itineraries
	WHERE id = ?;
	`, id).Scan(&createdAt, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get itinerary id=%s: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get itinerary id=%s: %w", id, err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("get itinerary id=%s: parse created_at: %w", id, err)
	}

	it, err := codec.DecodeItinerary([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("get itinerary id=%s: %w", id, err)
	}

	return &domain.ItineraryRecord{ID: id, CreatedAt: ts, Itinerary: it}, nil
}
