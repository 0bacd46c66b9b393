package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPointsQuery := `
	CREATE TABLE IF NOT EXISTS points (
		name TEXT PRIMARY KEY,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL
	);
	`

	createItinerariesQuery := `
	CREATE TABLE IF NOT EXISTS itineraries (
        id TEXT PRIMARY KEY,
        start_name TEXT NOT NULL,
        end_name TEXT NOT NULL,
        total_miles REAL NOT NULL,
        created_at TEXT NOT NULL,
        body TEXT NOT NULL
    );
	`

	createCacheQuery := `
	CREATE TABLE IF NOT EXISTS itinerary_cache (
        cache_key TEXT PRIMARY KEY,
        body TEXT NOT NULL,
        stored_at TEXT NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_itineraries_anchors
    ON itineraries(start_name, end_name);
	`

	statements := []string{
		createPointsQuery,
		createItinerariesQuery,
		createCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the points table from a CSV file. Existing rows with the same
// name are replaced.
func SeedFromCSV(db *sql.DB, csvPath string) error {
	points, err := ReadPointsCSV(csvPath)
	if err != nil {
		return fmt.Errorf("seed points: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed points: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO points (
		name,
		latitude,
		longitude
	)
	VALUES (?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed points: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(p.Name, p.Lat, p.Lon); err != nil {
			return fmt.Errorf("seed points: insert name=%q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed points: commit tx: %w", err)
	}

	return nil
}
