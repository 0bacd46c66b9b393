package main

import (
	"campaign-route-service/internal/adapters/repositories"
	"campaign-route-service/internal/config"
	"campaign-route-service/internal/platform/db"
	"context"
	"log"
)

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

	ctx := context.Background()

	log.Printf("Initializing database schema... db=%s", dialect)
	if dialect == db.Postgres {
		err = repositories.InitPostgresSchema(ctx, conn)
	} else {
		err = repositories.InitSchema(conn)
	}
	if err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding points from %s...", cfg.CSVPath)
	if dialect == db.Postgres {
		err = repositories.SeedPostgresFromCSV(ctx, conn, cfg.CSVPath)
	} else {
		err = repositories.SeedFromCSV(conn, cfg.CSVPath)
	}
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
