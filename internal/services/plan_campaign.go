package services

import (
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/platform/obs"
	"campaign-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Default number of clusters the capitals are split into.
const DefaultClusterCount = 14

type PlanCampaignRequest struct {
	Start        string
	End          string
	ClusterCount int
	// Explicit traversal order by cluster label; empty means OrderClusters decides.
	ClusterOrder []int
	Solver       SolverOptions
}

// PlanCampaign loads the point set, partitions and orders it, and solves the
// chained itinerary from Start to End. Results are looked up in and written
// to cache when one is given, and persisted to store when one is given.
// A cache failure is logged and otherwise ignored; a store failure is not.
func PlanCampaign(
	ctx context.Context,
	req PlanCampaignRequest,
	repo ports.PointRepository,
	partitioner ports.Partitioner,
	newMetric ports.MetricFactory,
	cache ports.ItineraryCache,
	store ports.ItineraryStore,
) (_ *domain.ItineraryRecord, err error) {
	defer obs.Time(ctx, "plan.campaign")(&err)

	points, err := repo.ListPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan campaign: list points: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("plan campaign: %w: no points loaded", domain.ErrDegenerateInput)
	}

	start, err := lookupPoint(points, req.Start)
	if err != nil {
		return nil, fmt.Errorf("plan campaign: start: %w", err)
	}
	end, err := lookupPoint(points, req.End)
	if err != nil {
		return nil, fmt.Errorf("plan campaign: end: %w", err)
	}

	k := req.ClusterCount
	if k == 0 {
		k = DefaultClusterCount
	}
	if k > len(points) {
		k = len(points)
	}

	clusters, err := partitioner.Partition(ctx, points, k)
	if err != nil {
		return nil, fmt.Errorf("plan campaign: partition: %w", err)
	}

	metric := newMetric(points)

	var ordered []domain.Cluster
	if len(req.ClusterOrder) > 0 {
		ordered, err = OrderByLabels(clusters, req.ClusterOrder, start, end)
	} else {
		ordered, err = OrderClusters(clusters, start, end, metric)
	}
	if err != nil {
		return nil, fmt.Errorf("plan campaign: %w", err)
	}

	key := ItineraryKey(ordered, start, end, req.Solver)
	if cache != nil {
		rec, err := cache.Get(ctx, key)
		switch {
		case err == nil:
			log.Printf("op=plan.campaign cache=hit key=%s id=%s", key, rec.ID)
			return rec, nil
		case errors.Is(err, ports.ErrNotFound):
		default:
			log.Printf("itinerary cache read failed: key=%s err=%v", key, err)
		}
	}

	it, err := SolveItinerary(ctx, ordered, start, end, metric, req.Solver)
	if err != nil {
		return nil, fmt.Errorf("plan campaign: %w", err)
	}

	rec := &domain.ItineraryRecord{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Itinerary: it,
	}

	if store != nil {
		if err := store.SaveItinerary(ctx, rec); err != nil {
			return nil, fmt.Errorf("plan campaign: save itinerary: %w", err)
		}
	}

	if cache != nil {
		if err := cache.Put(ctx, key, rec); err != nil {
			log.Printf("itinerary cache write failed: key=%s err=%v", key, err)
		}
	}

	return rec, nil
}

// ItineraryKey digests everything that determines a solve's result: the
// ordered cluster membership, the global anchors and the size limit.
func ItineraryKey(clusters []domain.Cluster, start, end domain.Point, opts SolverOptions) string {
	h := xxhash.New()
	_, _ = h.WriteString(start.Name + "\x00" + end.Name + "\x00" + strconv.Itoa(opts.MaxInterior))
	for _, c := range clusters {
		_, _ = h.WriteString("\x1e" + strconv.Itoa(c.Label))
		for _, p := range c.Members {
			_, _ = h.WriteString("\x1f" + p.Name + "@" +
				strconv.FormatFloat(p.Lat, 'g', -1, 64) + "," +
				strconv.FormatFloat(p.Lon, 'g', -1, 64))
		}
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func lookupPoint(points []domain.Point, name string) (domain.Point, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Point{}, fmt.Errorf("%w: name must be non-empty", domain.ErrUnknownPoint)
	}
	i := domain.IndexOf(points, name)
	if i < 0 {
		return domain.Point{}, fmt.Errorf("%w: %q", domain.ErrUnknownPoint, name)
	}
	return points[i], nil
}
