package main

import (
	"campaign-route-service/internal/adapters/cache"
	"campaign-route-service/internal/adapters/distance"
	"campaign-route-service/internal/adapters/repositories"
	"campaign-route-service/internal/api"
	"campaign-route-service/internal/config"
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/platform/db"
	"campaign-route-service/internal/ports"
	"campaign-route-service/internal/services"
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, dialect, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed the point set on startup for local runs.
	if err := initAndSeed(context.Background(), conn, dialect, cfg.CSVPath); err != nil {
		log.Fatal(err)
	}

	var (
		repo  ports.PointRepository
		store ports.ItineraryStore
		ic    ports.ItineraryCache
	)
	switch dialect {
	case db.Postgres:
		repo = repositories.NewSQLPointRepository(conn)
		store = repositories.NewSQLItineraryStore(conn)
		ic = cache.NewSQLItineraryCache(conn, cfg.CacheTTL)
	default:
		repo = repositories.NewSqlitePointRepository(conn)
		store = repositories.NewSqliteItineraryStore(conn)
		ic = cache.NewSqliteItineraryCache(conn, cfg.CacheTTL)
	}

	// Redis takes over caching when configured; the table cache is the fallback.
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisItineraryCache(cfg.RedisAddr, cfg.CacheTTL)
		defer rc.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rc.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
		ic = rc
	}

	newMetric := func(points []domain.Point) ports.Metric {
		return distance.NewMatrix(distance.GreatCircle{}, points)
	}

	router := api.NewRouter(repo, services.NewKMeansPartitioner(), newMetric, ic, store, services.PlanCampaignRequest{
		Start:        cfg.StartPoint,
		End:          cfg.EndPoint,
		ClusterCount: cfg.ClusterCount,
		Solver: services.SolverOptions{
			Workers:     cfg.SolverWorkers,
			MaxInterior: cfg.SolverMaxInterior,
		},
	})

	// Exact search on a large cluster can run long; the write timeout bounds it.
	log.Printf("Server listening addr=:%s db=%s", cfg.Port, dialect)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect db.Dialect, csvPath string) error {
	if dialect == db.Postgres {
		if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		if err := repositories.SeedPostgresFromCSV(ctx, conn, csvPath); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		return nil
	}

	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedFromCSV(conn, csvPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}
