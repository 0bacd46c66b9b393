package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the server and command-line tools.
type Config struct {
	Port        string
	DatabaseURL string
	CSVPath     string
	RedisAddr   string
	CacheTTL    time.Duration

	StartPoint   string
	EndPoint     string
	ClusterCount int

	SolverWorkers     int
	SolverMaxInterior int
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, v, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration: %w", key, v, err)
	}
	return d, nil
}

// LoadDotEnv reads .env into the process environment when the file exists.
// Variables already set in the environment win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load reads configuration from the environment. Call LoadDotEnv first to
// pick up a local .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        Get("PORT", "8080"),
		DatabaseURL: Get("DATABASE_URL", Get("DB_PATH", "data/app.db")),
		CSVPath:     Get("CSV_PATH", "data/us-state-capitals.csv"),
		RedisAddr:   Get("REDIS_ADDR", ""),
		StartPoint:  Get("START_POINT", "Iowa"),
		EndPoint:    Get("END_POINT", "DC"),
	}

	var errs []error
	var err error

	if cfg.CacheTTL, err = GetDuration("CACHE_TTL", 24*time.Hour); err != nil {
		errs = append(errs, err)
	}
	if cfg.ClusterCount, err = GetInt("CLUSTER_COUNT", 14); err != nil {
		errs = append(errs, err)
	}
	if cfg.SolverWorkers, err = GetInt("SOLVER_WORKERS", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.SolverMaxInterior, err = GetInt("SOLVER_MAX_INTERIOR", 10); err != nil {
		errs = append(errs, err)
	}

	if cfg.ClusterCount < 1 {
		errs = append(errs, fmt.Errorf("config: CLUSTER_COUNT must be positive, got %d", cfg.ClusterCount))
	}
	if cfg.SolverWorkers < 0 || cfg.SolverMaxInterior < 0 {
		errs = append(errs, errors.New("config: SOLVER_WORKERS and SOLVER_MAX_INTERIOR must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}
