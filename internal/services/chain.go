package services

import (
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/platform/obs"
	"campaign-route-service/internal/ports"
	"context"
	"fmt"
	"log"
)

// SolveItinerary threads clusters, in the given order, into one route from
// start to end.
//
// The first cluster is entered at start. Each following cluster is entered at
// the point where the previous segment finished; when that point belongs to
// another cluster it is added to a fresh copy of the membership for this call
// only. The final cluster must finish at end. Segment lengths are summed into
// the itinerary total, so a hand-off anchor's incoming leg is charged to the
// segment it closes and its outgoing leg to the segment it opens.
//
// Any failure aborts the whole run and is returned as a
// *domain.SegmentFailedError carrying the cluster's position. No partial
// itinerary is returned. Input clusters are not modified.
func SolveItinerary(
	ctx context.Context,
	clusters []domain.Cluster,
	start domain.Point,
	end domain.Point,
	metric ports.Metric,
	opts SolverOptions,
) (_ *domain.Itinerary, err error) {
	defer obs.Time(ctx, "solve.itinerary")(&err)

	if len(clusters) == 0 {
		return nil, fmt.Errorf("solve itinerary: %w: no clusters", domain.ErrDegenerateInput)
	}

	segments := make([]domain.Segment, 0, len(clusters))
	anchor := start
	total := 0.0
	last := len(clusters) - 1

	for i, c := range clusters {
		// start may only be visited by the first cluster and end only by the
		// last; anywhere else the route would pass through it twice.
		if (i < last && c.Contains(end.Name)) || (i > 0 && c.Contains(start.Name)) {
			return nil, fmt.Errorf("solve itinerary: %w", &domain.SegmentFailedError{
				Index: i,
				Label: c.Label,
				Err:   domain.ErrBrokenChain,
			})
		}
		if i > 0 && anchor.IsZero() {
			return nil, fmt.Errorf("solve itinerary: %w", &domain.SegmentFailedError{
				Index: i,
				Label: c.Label,
				Err:   domain.ErrBrokenChain,
			})
		}

		// The first cluster must own start; later clusters receive the anchor
		// the traveller arrives from.
		var extra []domain.Point
		if i > 0 {
			extra = append(extra, anchor)
		}

		var exit *domain.Point
		if i == last {
			e := end
			exit = &e
			extra = append(extra, end)
		}

		members := c.With(extra...)

		seg, stats, err := SolveSegment(ctx, members, anchor, exit, metric, opts)
		if err != nil {
			return nil, fmt.Errorf("solve itinerary: %w", &domain.SegmentFailedError{
				Index: i,
				Label: c.Label,
				Err:   err,
			})
		}
		seg.Label = c.Label

		log.Printf(
			"op=solve.segment index=%d label=%d members=%d interior=%d candidates=%d miles=%.2f",
			i, c.Label, len(members), stats.Interior, stats.Candidates, seg.Length,
		)

		segments = append(segments, seg)
		total += seg.Length
		anchor = seg.Last()
	}

	return &domain.Itinerary{
		Start:    start,
		End:      end,
		Segments: segments,
		Total:    total,
	}, nil
}
