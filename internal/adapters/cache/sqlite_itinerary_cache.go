package cache

import (
	"campaign-route-service/internal/adapters/codec"
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite backed itinerary cache, used when no Redis server is configured.
// Entries older than TTL read as misses; a zero TTL never expires them.
type SqliteItineraryCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSqliteItineraryCache(db *sql.DB, ttl time.Duration) *SqliteItineraryCache {
	return &SqliteItineraryCache{DB: db, TTL: ttl}
}

func (s *SqliteItineraryCache) Get(ctx context.Context, key string) (*domain.ItineraryRecord, error) {
	if s.DB == nil {
		return nil, errors.New("itinerary cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get itinerary cache: key must not be empty")
	}

	var body, stored string
	err := s.DB.QueryRowContext(ctx, `
	SELECT
		body,
		stored_at
	FROM itinerary_cache
	WHERE cache_key = ?;
	`, key).Scan(&body, &stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get itinerary cache key=%s: %w", key, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get itinerary cache: query itinerary_cache table: %w", err)
	}

	storedAt, err := time.Parse(time.RFC3339Nano, stored)
	if err != nil {
		return nil, fmt.Errorf("get itinerary cache key=%s: parse stored_at: %w", key, err)
	}
	if s.TTL > 0 && time.Since(storedAt) > s.TTL {
		return nil, fmt.Errorf("get itinerary cache key=%s: expired: %w", key, ports.ErrNotFound)
	}

	rec, err := codec.DecodeRecord([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("get itinerary cache key=%s: %w", key, err)
	}
	return rec, nil
}

func (s *SqliteItineraryCache) Put(ctx context.Context, key string, rec *domain.ItineraryRecord) error {
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
	INSERT OR REPLACE INTO itinerary_cache (
		cache_key,
		body,
		stored_at
	)
	VALUES (?, ?, ?);
	`, key, string(b), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert itinerary cache key=%s: %w", key, err)
	}

	return nil
}
