package repositories

import (
	"campaign-route-service/internal/domain"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Columns the point loader requires, matched case-insensitively against the header.
const (
	colName      = "name"
	colLatitude  = "latitude"
	colLongitude = "longitude"
)

// ParsePointsCSV reads points from a CSV stream with a header row containing
// at least name, latitude and longitude columns. Extra columns are ignored.
// Names must be unique and non-empty; coordinates must be in range.
func ParsePointsCSV(r io.Reader) ([]domain.Point, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse points csv: missing header row")
		}
		return nil, fmt.Errorf("parse points csv: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colName, colLatitude, colLongitude} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("parse points csv: header is missing column %q", required)
		}
	}

	points := make([]domain.Point, 0, 64)
	seen := make(map[string]int)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse points csv: line %d: %w", line, err)
		}

		name := strings.TrimSpace(rec[cols[colName]])
		if name == "" {
			return nil, fmt.Errorf("parse points csv: line %d: name cannot be empty", line)
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("parse points csv: line %d: duplicate name %q (first on line %d)", line, name, prev)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[colLatitude]]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse points csv: line %d: latitude: %w", line, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[colLongitude]]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse points csv: line %d: longitude: %w", line, err)
		}
		if lat < -90 || lat > 90 {
			return nil, fmt.Errorf("parse points csv: line %d: latitude %v out of range [-90, 90]", line, lat)
		}
		if lon < -180 || lon > 180 {
			return nil, fmt.Errorf("parse points csv: line %d: longitude %v out of range [-180, 180]", line, lon)
		}

		seen[name] = line
		points = append(points, domain.Point{Name: name, Lat: lat, Lon: lon})
	}

	return points, nil
}

// ReadPointsCSV parses the CSV file at path.
func ReadPointsCSV(path string) ([]domain.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read points csv: open %q: %w", path, err)
	}
	defer f.Close()

	points, err := ParsePointsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read points csv %q: %w", path, err)
	}
	return points, nil
}

// File-backed implementation of the PointRepository port. The file is read
// on every call so edits are picked up without a restart.
type CSVPointRepository struct{ Path string }

func NewCSVPointRepository(path string) *CSVPointRepository {
	return &CSVPointRepository{Path: path}
}

func (c *CSVPointRepository) ListPoints(ctx context.Context) ([]domain.Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadPointsCSV(c.Path)
}
