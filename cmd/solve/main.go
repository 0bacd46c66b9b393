// Command solve plans a campaign itinerary from a CSV of points and prints
// it as text. It needs no database.
package main

import (
	"campaign-route-service/internal/adapters/distance"
	"campaign-route-service/internal/adapters/repositories"
	"campaign-route-service/internal/config"
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/ports"
	"campaign-route-service/internal/report"
	"campaign-route-service/internal/services"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	csvPath := flag.String("csv", cfg.CSVPath, "CSV file of points (name,latitude,longitude)")
	start := flag.String("start", cfg.StartPoint, "name of the starting point")
	end := flag.String("end", cfg.EndPoint, "name of the final point")
	k := flag.Int("k", cfg.ClusterCount, "number of clusters")
	order := flag.String("order", "", "comma-separated cluster labels to visit in order (default: nearest centroid)")
	workers := flag.Int("workers", cfg.SolverWorkers, "parallel branches per cluster (0 = GOMAXPROCS)")
	maxInterior := flag.Int("max-interior", cfg.SolverMaxInterior, "refuse clusters with more interior points (0 = no limit)")
	flag.Parse()

	labels, err := parseLabels(*order)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req := services.PlanCampaignRequest{
		Start:        *start,
		End:          *end,
		ClusterCount: *k,
		ClusterOrder: labels,
		Solver: services.SolverOptions{
			Workers:     *workers,
			MaxInterior: *maxInterior,
		},
	}
	newMetric := func(points []domain.Point) ports.Metric {
		return distance.NewMatrix(distance.GreatCircle{}, points)
	}

	rec, err := services.PlanCampaign(ctx, req, repositories.NewCSVPointRepository(*csvPath), services.NewKMeansPartitioner(), newMetric, nil, nil)
	if err != nil {
		var sf *domain.SegmentFailedError
		if errors.As(err, &sf) {
			fmt.Fprintf(os.Stderr, "cluster %d (label %d) failed: %v\n", sf.Index+1, sf.Label, sf.Err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	if err := report.WriteText(os.Stdout, rec.Itinerary); err != nil {
		log.Fatal(err)
	}
}

func parseLabels(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse -order: %q is not a cluster label: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
