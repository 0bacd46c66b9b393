package cache

import (
	"campaign-route-service/internal/adapters/codec"
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/platform/obs"
	"campaign-route-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLItineraryCache is a Postgres-backed itinerary cache.
type SQLItineraryCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLItineraryCache(db *sql.DB, ttl time.Duration) *SQLItineraryCache {
	return &SQLItineraryCache{DB: db, TTL: ttl}
}

func (s *SQLItineraryCache) Get(ctx context.Context, key string) (_ *domain.ItineraryRecord, err error) {
	defer obs.Time(ctx, "itinerary.cache.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("itinerary cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get itinerary cache: key must not be empty")
	}

	var (
		body     []byte
		storedAt time.Time
	)
	err = s.DB.QueryRowContext(ctx, `
	SELECT body, stored_at
	FROM itinerary_cache
	WHERE cache_key = $1;
	`, key).Scan(&body, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get itinerary cache key=%s: %w", key, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get itinerary cache: query itinerary_cache table: %w", err)
	}
	if s.TTL > 0 && time.Since(storedAt) > s.TTL {
		return nil, fmt.Errorf("get itinerary cache key=%s: expired: %w", key, ports.ErrNotFound)
	}

	rec, err := codec.DecodeRecord(body)
	if err != nil {
		return nil, fmt.Errorf("get itinerary cache key=%s: %w", key, err)
	}
	return rec, nil
}

func (s *SQLItineraryCache) Put(ctx context.Context, key string, rec *domain.ItineraryRecord) (err error) {
	defer obs.Time(ctx, "itinerary.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("itinerary cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert itinerary cache: key must not be empty")
	}

	b, err := codec.EncodeRecord(rec)
	if err != nil {
		return fmt.Errorf("insert itinerary cache key=%s: %w", key, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO itinerary_cache (cache_key, body, stored_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET body = EXCLUDED.body,
		stored_at = EXCLUDED.stored_at;
	`, key, string(b), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert itinerary cache key=%s: %w", key, err)
	}

	return nil
}
