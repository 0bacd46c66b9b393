package cache

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"campaign-route-service/internal/adapters/repositories"
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func sampleRecord() *domain.ItineraryRecord {
	iowa := domain.Point{Name: "Iowa", Lat: 41.591087, Lon: -93.603729}
	ill := domain.Point{Name: "Illinois", Lat: 39.798363, Lon: -89.654961}
	dc := domain.Point{Name: "DC", Lat: 38.895110, Lon: -77.036366}
	return &domain.ItineraryRecord{
		ID:        "4b0d2c4e-8f31-4c1c-9a52-2f7d7c0d5a11",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Itinerary: &domain.Itinerary{
			Start: iowa,
			End:   dc,
			Segments: []domain.Segment{
				{Label: 3, Points: []domain.Point{iowa, ill}, Length: 244.5},
				{Label: 0, Points: []domain.Point{ill, dc}, Length: 665.25},
			},
			Total: 909.75,
		},
	}
}

func TestRedisItineraryCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisItineraryCache(mr.Addr(), time.Hour)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	_, err := c.Get(ctx, "abc")
	require.ErrorIs(t, err, ports.ErrNotFound)

	want := sampleRecord()
	require.NoError(t, c.Put(ctx, "abc", want))
	require.True(t, mr.Exists("itinerary:abc"))

	got, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	mr.FastForward(2 * time.Hour)
	_, err = c.Get(ctx, "abc")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRedisItineraryCacheRejectsEmptyKey(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisItineraryCache(mr.Addr(), time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	_, err := c.Get(context.Background(), " ")
	require.Error(t, err)
	require.Error(t, c.Put(context.Background(), "", sampleRecord()))
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repositories.InitSchema(db))
	return db
}

func TestSqliteItineraryCacheRoundTrip(t *testing.T) {
	c := NewSqliteItineraryCache(openTestDB(t), time.Hour)
	ctx := context.Background()

	_, err := c.Get(ctx, "k1")
	require.ErrorIs(t, err, ports.ErrNotFound)

	want := sampleRecord()
	require.NoError(t, c.Put(ctx, "k1", want))
	got, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	// A second put under the same key replaces the entry.
	want.ID = "replacement"
	require.NoError(t, c.Put(ctx, "k1", want))
	got, err = c.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, "replacement", got.ID)
}

func TestSqliteItineraryCacheExpires(t *testing.T) {
	db := openTestDB(t)
	c := NewSqliteItineraryCache(db, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "old", sampleRecord()))
	_, err := db.Exec(`UPDATE itinerary_cache SET stored_at = ? WHERE cache_key = ?`,
		time.Now().Add(-time.Hour).UTC().Format(time.RFC3339Nano), "old")
	require.NoError(t, err)

	_, err = c.Get(ctx, "old")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
