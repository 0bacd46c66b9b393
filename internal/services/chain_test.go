package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"campaign-route-service/internal/adapters/distance"
	"campaign-route-service/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cloneClusters(clusters []domain.Cluster) []domain.Cluster {
	out := make([]domain.Cluster, len(clusters))
	for i, c := range clusters {
		out[i] = domain.Cluster{Label: c.Label, Members: append([]domain.Point(nil), c.Members...)}
	}
	return out
}

func TestSolveItineraryTwoClusterChain(t *testing.T) {
	s := domain.Point{Name: "S", Lat: 40.0, Lon: -100.0}
	a1 := domain.Point{Name: "A1", Lat: 40.5, Lon: -98.0}
	a2 := domain.Point{Name: "A2", Lat: 39.5, Lon: -96.5}
	b1 := domain.Point{Name: "B1", Lat: 39.0, Lon: -92.0}
	b2 := domain.Point{Name: "B2", Lat: 38.0, Lon: -90.0}
	e := domain.Point{Name: "E", Lat: 38.5, Lon: -87.0}

	clusters := []domain.Cluster{
		{Label: 7, Members: []domain.Point{a2, s, a1}},
		{Label: 2, Members: []domain.Point{e, b1, b2}},
	}
	before := cloneClusters(clusters)

	it, err := SolveItinerary(context.Background(), clusters, s, e, distance.GreatCircle{}, SolverOptions{})
	require.NoError(t, err)

	if diff := cmp.Diff(before, clusters); diff != "" {
		t.Fatalf("input clusters mutated (-want +got):\n%s", diff)
	}

	require.Len(t, it.Segments, 2)
	assert.Equal(t, 7, it.Segments[0].Label)
	assert.Equal(t, 2, it.Segments[1].Label)
	assert.Equal(t, []string{"S", "A1", "A2"}, names(it.Segments[0].Points))

	// The second segment opens at the first segment's final point.
	assert.Equal(t, it.Segments[0].Last().Name, it.Segments[1].First().Name)
	assert.Equal(t, []string{"A2", "B1", "B2", "E"}, names(it.Segments[1].Points))

	route := names(it.Route())
	if diff := cmp.Diff([]string{"S", "A1", "A2", "B1", "B2", "E"}, route); diff != "" {
		t.Errorf("route mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, it.Segments[0].Length+it.Segments[1].Length, it.Total)
	assert.InDelta(t, PathLength(it.Route(), distance.GreatCircle{}), it.Total, 1e-9)
}

func TestSolveItineraryCoverageAndAnchors(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 13))

	var clusters []domain.Cluster
	var all []domain.Point
	for label, size := range []int{4, 3, 5, 1, 4} {
		pts := randomPoints(r, string(rune('a'+label)), size)
		clusters = append(clusters, domain.Cluster{Label: label, Members: pts})
		all = append(all, pts...)
	}
	start := clusters[0].Members[2]
	end := clusters[len(clusters)-1].Members[1]

	it, err := SolveItinerary(context.Background(), clusters, start, end, distance.NewMatrix(distance.GreatCircle{}, all), SolverOptions{Workers: 3})
	require.NoError(t, err)

	route := it.Route()
	require.Len(t, route, len(all))
	assert.Equal(t, start.Name, route[0].Name)
	assert.Equal(t, end.Name, route[len(route)-1].Name)

	seen := make(map[string]int, len(all))
	for _, p := range route {
		seen[p.Name]++
	}
	for _, p := range all {
		assert.Equal(t, 1, seen[p.Name], "point %s visited %d times", p.Name, seen[p.Name])
	}

	sum := 0.0
	for _, seg := range it.Segments {
		assert.GreaterOrEqual(t, seg.Length, 0.0)
		sum += seg.Length
	}
	assert.Equal(t, sum, it.Total)
	assert.GreaterOrEqual(t, it.Total, 0.0)
}

func TestSolveItinerarySingleCluster(t *testing.T) {
	s := domain.Point{Name: "S", Lat: 0, Lon: 0}
	m := domain.Point{Name: "M", Lat: 0, Lon: 2}
	e := domain.Point{Name: "E", Lat: 0, Lon: 1}

	it, err := SolveItinerary(context.Background(), []domain.Cluster{{Label: 0, Members: []domain.Point{s, m, e}}}, s, e, distance.GreatCircle{}, SolverOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "M", "E"}, names(it.Route()))
}

func TestSolveItineraryStartAndEndAreTheOnlyPoint(t *testing.T) {
	only := domain.Point{Name: "DC", Lat: 38.9, Lon: -77.0}

	it, err := SolveItinerary(context.Background(), []domain.Cluster{{Members: []domain.Point{only}}}, only, only, distance.GreatCircle{}, SolverOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"DC"}, names(it.Route()))
	assert.Zero(t, it.Total)
}

func TestSolveItineraryFailures(t *testing.T) {
	s := domain.Point{Name: "S", Lat: 0, Lon: 0}
	a := domain.Point{Name: "A", Lat: 0, Lon: 1}
	b := domain.Point{Name: "B", Lat: 0, Lon: 2}
	e := domain.Point{Name: "E", Lat: 0, Lon: 3}
	unnamed := domain.Point{Lat: 0, Lon: 1.5}

	cases := []struct {
		name      string
		clusters  []domain.Cluster
		wantIndex int
		wantErr   error
	}{
		{
			name:      "start outside first cluster",
			clusters:  []domain.Cluster{{Label: 5, Members: []domain.Point{a}}, {Label: 6, Members: []domain.Point{b, e}}},
			wantIndex: 0,
			wantErr:   domain.ErrInvalidAnchor,
		},
		{
			name: "end visited before the last cluster",
			clusters: []domain.Cluster{
				{Label: 0, Members: []domain.Point{s, a}},
				{Label: 1, Members: []domain.Point{e, b}},
				{Label: 2, Members: []domain.Point{{Name: "C", Lat: 0, Lon: 4}}},
			},
			wantIndex: 1,
			wantErr:   domain.ErrBrokenChain,
		},
		{
			name:      "start repeated in a later cluster",
			clusters:  []domain.Cluster{{Label: 0, Members: []domain.Point{s, a}}, {Label: 1, Members: []domain.Point{s, b, e}}},
			wantIndex: 1,
			wantErr:   domain.ErrBrokenChain,
		},
		{
			name:      "no hand-off anchor",
			clusters:  []domain.Cluster{{Label: 1, Members: []domain.Point{s, unnamed}}, {Label: 2, Members: []domain.Point{b, e}}},
			wantIndex: 1,
			wantErr:   domain.ErrBrokenChain,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it, err := SolveItinerary(context.Background(), tc.clusters, s, e, distance.GreatCircle{}, SolverOptions{})
			require.Nil(t, it)
			require.ErrorIs(t, err, domain.ErrSegmentFailed)
			require.ErrorIs(t, err, tc.wantErr)

			var sf *domain.SegmentFailedError
			require.True(t, errors.As(err, &sf))
			assert.Equal(t, tc.wantIndex, sf.Index)
			assert.Equal(t, tc.clusters[tc.wantIndex].Label, sf.Label)
		})
	}
}

func TestSolveItineraryNoClusters(t *testing.T) {
	_, err := SolveItinerary(context.Background(), nil, domain.Point{Name: "S"}, domain.Point{Name: "E"}, distance.GreatCircle{}, SolverOptions{})
	require.ErrorIs(t, err, domain.ErrDegenerateInput)
}

func TestSolveItineraryEmptyMiddleClusterStillHandsOff(t *testing.T) {
	s := domain.Point{Name: "S", Lat: 0, Lon: 0}
	e := domain.Point{Name: "E", Lat: 0, Lon: 3}

	// A cluster with no members of its own still receives the arriving anchor.
	it, err := SolveItinerary(context.Background(), []domain.Cluster{
		{Label: 0, Members: []domain.Point{s}},
		{Label: 1},
		{Label: 2, Members: []domain.Point{e}},
	}, s, e, distance.GreatCircle{}, SolverOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "E"}, names(it.Route()))
}
