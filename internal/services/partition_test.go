package services

import (
	"context"
	"math/rand/v2"
	"testing"

	"campaign-route-service/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMeansPartitionCoversEveryPointOnce(t *testing.T) {
	r := rand.New(rand.NewPCG(21, 22))
	pts := randomPoints(r, "K", 20)

	clusters, err := NewKMeansPartitioner().Partition(context.Background(), pts, 6)
	require.NoError(t, err)
	require.Len(t, clusters, 6)

	seen := map[string]int{}
	for label, c := range clusters {
		assert.Equal(t, label, c.Label)
		assert.NotEmpty(t, c.Members, "cluster %d is empty", label)
		for i, p := range c.Members {
			seen[p.Name]++
			if i > 0 {
				assert.Less(t, c.Members[i-1].Name, p.Name, "members are sorted by name")
			}
		}
	}
	require.Len(t, seen, len(pts))
	for name, n := range seen {
		assert.Equal(t, 1, n, "point %s", name)
	}
}

func TestKMeansPartitionIsDeterministic(t *testing.T) {
	r := rand.New(rand.NewPCG(8, 9))
	pts := randomPoints(r, "D", 15)

	first, err := NewKMeansPartitioner().Partition(context.Background(), pts, 4)
	require.NoError(t, err)
	second, err := NewKMeansPartitioner().Partition(context.Background(), pts, 4)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("partition changed between runs (-first +second):\n%s", diff)
	}
}

func TestKMeansPartitionSeparatesObviousGroups(t *testing.T) {
	pts := []domain.Point{
		{Name: "w1", Lat: 40.0, Lon: -120.0},
		{Name: "w2", Lat: 40.1, Lon: -120.1},
		{Name: "w3", Lat: 39.9, Lon: -119.9},
		{Name: "e1", Lat: 40.0, Lon: -75.0},
		{Name: "e2", Lat: 40.1, Lon: -75.1},
	}

	clusters, err := NewKMeansPartitioner().Partition(context.Background(), pts, 2)
	require.NoError(t, err)

	var got [][]string
	for _, c := range clusters {
		got = append(got, names(c.Members))
	}
	assert.ElementsMatch(t, [][]string{{"w1", "w2", "w3"}, {"e1", "e2"}}, got)
}

func TestKMeansPartitionEdgeCases(t *testing.T) {
	pts := []domain.Point{{Name: "a", Lat: 1, Lon: 1}, {Name: "b", Lat: 1, Lon: 1}, {Name: "c", Lat: 1, Lon: 1}}
	km := NewKMeansPartitioner()

	// Coincident points still yield k non-empty clusters.
	clusters, err := km.Partition(context.Background(), pts, 3)
	require.NoError(t, err)
	for _, c := range clusters {
		assert.Len(t, c.Members, 1)
	}

	_, err = km.Partition(context.Background(), pts, 0)
	require.Error(t, err)
	_, err = km.Partition(context.Background(), pts, 4)
	require.Error(t, err)
	_, err = km.Partition(context.Background(), nil, 1)
	require.ErrorIs(t, err, domain.ErrDegenerateInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = km.Partition(ctx, pts, 2)
	require.ErrorIs(t, err, context.Canceled)
}
