package services

import (
	"testing"

	"campaign-route-service/internal/adapters/distance"
	"campaign-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(clusters []domain.Cluster) []int {
	out := make([]int, len(clusters))
	for i, c := range clusters {
		out[i] = c.Label
	}
	return out
}

func TestOrderClustersWalksNearestCentroid(t *testing.T) {
	s := domain.Point{Name: "S", Lat: 0, Lon: 0}
	e := domain.Point{Name: "E", Lat: 0, Lon: 40}

	clusters := []domain.Cluster{
		{Label: 0, Members: []domain.Point{{Name: "far", Lat: 0, Lon: 30}}},
		{Label: 1, Members: []domain.Point{e}},
		{Label: 2, Members: []domain.Point{{Name: "near", Lat: 0, Lon: 10}}},
		{Label: 3, Members: []domain.Point{s, {Name: "s2", Lat: 0, Lon: 1}}},
		{Label: 4, Members: []domain.Point{{Name: "mid", Lat: 0, Lon: 20}}},
	}

	ordered, err := OrderClusters(clusters, s, e, distance.GreatCircle{})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 4, 0, 1}, labels(ordered))
}

func TestOrderClustersSingleCluster(t *testing.T) {
	s := domain.Point{Name: "S"}
	e := domain.Point{Name: "E", Lon: 1}

	ordered, err := OrderClusters([]domain.Cluster{{Label: 9, Members: []domain.Point{s, e}}}, s, e, distance.GreatCircle{})
	require.NoError(t, err)
	assert.Equal(t, []int{9}, labels(ordered))
}

func TestOrderClustersErrors(t *testing.T) {
	s := domain.Point{Name: "S"}
	e := domain.Point{Name: "E", Lon: 1}
	x := domain.Point{Name: "X", Lon: 2}

	_, err := OrderClusters(nil, s, e, distance.GreatCircle{})
	require.Error(t, err)

	_, err = OrderClusters([]domain.Cluster{{Members: []domain.Point{x}}, {Label: 1, Members: []domain.Point{e}}}, s, e, distance.GreatCircle{})
	require.ErrorIs(t, err, domain.ErrUnknownPoint)

	_, err = OrderClusters([]domain.Cluster{{Members: []domain.Point{s, e}}, {Label: 1, Members: []domain.Point{x}}}, s, e, distance.GreatCircle{})
	require.ErrorIs(t, err, domain.ErrBrokenChain)
}

func TestOrderByLabels(t *testing.T) {
	s := domain.Point{Name: "S"}
	e := domain.Point{Name: "E", Lon: 1}
	clusters := []domain.Cluster{
		{Label: 0, Members: []domain.Point{{Name: "A", Lon: 2}}},
		{Label: 1, Members: []domain.Point{e}},
		{Label: 2, Members: []domain.Point{s}},
	}

	ordered, err := OrderByLabels(clusters, []int{2, 0, 1}, s, e)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, labels(ordered))

	cases := []struct {
		name   string
		labels []int
	}{
		{"too few labels", []int{2, 1}},
		{"unknown label", []int{2, 0, 5}},
		{"label twice", []int{2, 2, 1}},
		{"start cluster not first", []int{0, 2, 1}},
		{"end cluster not last", []int{2, 1, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := OrderByLabels(clusters, tc.labels, s, e)
			assert.ErrorIs(t, err, ErrInvalidClusterOrder)
		})
	}
}

func TestOrderByLabelsRejectsAnchorsInTwoClusters(t *testing.T) {
	s := domain.Point{Name: "S"}
	e := domain.Point{Name: "E", Lon: 1}

	_, err := OrderByLabels([]domain.Cluster{
		{Label: 0, Members: []domain.Point{s, e}},
		{Label: 1, Members: []domain.Point{e}},
	}, []int{0, 1}, s, e)
	require.ErrorIs(t, err, ErrInvalidClusterOrder)

	_, err = OrderByLabels([]domain.Cluster{
		{Label: 0, Members: []domain.Point{s}},
		{Label: 1, Members: []domain.Point{s, e}},
	}, []int{0, 1}, s, e)
	require.ErrorIs(t, err, ErrInvalidClusterOrder)
}

func TestCentroid(t *testing.T) {
	c := domain.Cluster{Label: 4, Members: []domain.Point{{Lat: 10, Lon: -100}, {Lat: 20, Lon: -90}}}

	got := Centroid(c)
	assert.Equal(t, "centroid-4", got.Name)
	assert.InDelta(t, 15.0, got.Lat, 1e-12)
	assert.InDelta(t, -95.0, got.Lon, 1e-12)
}
