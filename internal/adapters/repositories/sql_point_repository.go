package repositories

import (
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Postgres-backed implementation of the PointRepository port.
type SQLPointRepository struct{ DB *sql.DB }

func NewSQLPointRepository(db *sql.DB) *SQLPointRepository {
	return &SQLPointRepository{DB: db}
}

func (s *SQLPointRepository) ListPoints(ctx context.Context) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "points.ListPoints")(&err)

	if s.DB == nil {
		return nil, errors.New("sql point repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT name, latitude, longitude
	FROM points
	ORDER BY name;
	`)
	if err != nil {
		return nil, fmt.Errorf("list points: query points table: %w", err)
	}
	defer rows.Close()

	return scanPoints(rows, "list points")
}

// Fetch the points with the given names. Unknown names are absent from the result.
func (s *SQLPointRepository) GetMany(ctx context.Context, names []string) (_ map[string]domain.Point, err error) {
	defer obs.Time(ctx, "points.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("sql point repository: DB is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}

	if len(uniq) == 0 {
		return map[string]domain.Point{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT name, latitude, longitude
	FROM points
	WHERE name = ANY($1::text[]);
	`, uniq)
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
