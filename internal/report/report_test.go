package report

import (
	"bytes"
	"testing"

	"campaign-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteText(t *testing.T) {
	s := domain.Point{Name: "Iowa"}
	m := domain.Point{Name: "Illinois"}
	e := domain.Point{Name: "DC"}

	var buf bytes.Buffer
	err := WriteText(&buf, &domain.Itinerary{
		Start: s,
		End:   e,
		Segments: []domain.Segment{
			{Label: 4, Points: []domain.Point{s, m}, Length: 244.4561},
			{Label: 1, Points: []domain.Point{m, e}, Length: 665.1},
		},
		Total: 909.5561,
	})
	require.NoError(t, err)

	want := "The route will travel a total of 909.56 miles to visit every point while traveling from Iowa to DC.\n" +
		"Cluster 1 [Iowa, Illinois]  (244.46 miles)\n" +
		"Cluster 2 [Illinois, DC]  (665.10 miles)\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTextNil(t *testing.T) {
	require.Error(t, WriteText(&bytes.Buffer{}, nil))
}
