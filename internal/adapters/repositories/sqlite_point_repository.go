package repositories

import (
	"campaign-route-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed implementation of the PointRepository port.
type SqlitePointRepository struct{ DB *sql.DB }

func NewSqlitePointRepository(db *sql.DB) *SqlitePointRepository {
	return &SqlitePointRepository{DB: db}
}

// Return all points stored in the database, ordered by name.
func (s *SqlitePointRepository) ListPoints(ctx context.Context) ([]domain.Point, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite point repository: DB is nil")
	}

	query := `
	SELECT
		name,
		latitude,
		longitude
	FROM points
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list points: query points table: %w", err)
	}
	defer rows.Close()

	return scanPoints(rows, "list points")
}

// Fetch the points with the given names. Unknown names are absent from the result.
func (s *SqlitePointRepository) GetMany(ctx context.Context, names []string) (map[string]domain.Point, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite point repository: DB is nil")
	}

	seen := map[string]struct{}{}
	args := make([]any, 0, len(names))
	ph := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		args = append(args, n)
		ph = append(ph, "?")
	}

	if len(args) == 0 {
		return map[string]domain.Point{}, nil
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT name, latitude, longitude
	FROM points
	WHERE name IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get points: query points table: %w", err)
	}
	defer rows.Close()

	points, err := scanPoints(rows, "get points")
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.Point, len(points))
	for _, p := range points {
		out[p.Name] = p
	}
	return out, nil
}

func scanPoints(rows *sql.Rows, op string) ([]domain.Point, error) {
	points := make([]domain.Point, 0, 64)
	for rows.Next() {
		var p domain.Point
		if err := rows.Scan(&p.Name, &p.Lat, &p.Lon); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: row iteration: %w", op, err)
	}

	return points, nil
}
