package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS points (
			name TEXT PRIMARY KEY,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS itineraries (
			id UUID PRIMARY KEY,
			start_name TEXT NOT NULL,
			end_name TEXT NOT NULL,
			total_miles DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			body JSONB NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS itinerary_cache (
			cache_key TEXT PRIMARY KEY,
			body JSONB NOT NULL,
			stored_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_itineraries_anchors
			ON itineraries(start_name, end_name);`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}

// Upsert the points table from a CSV file.
func SeedPostgresFromCSV(ctx context.Context, db *sql.DB, csvPath string) error {
	points, err := ReadPointsCSV(csvPath)
	if err != nil {
		return fmt.Errorf("seed points: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed points: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO points (name, latitude, longitude)
	VALUES ($1, $2, $3)
	ON CONFLICT (name) DO UPDATE
	SET latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude;
	`)
	if err != nil {
		return fmt.Errorf("seed points: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, p.Name, p.Lat, p.Lon); err != nil {
			return fmt.Errorf("seed points: insert name=%q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed points: commit tx: %w", err)
	}

	return nil
}
