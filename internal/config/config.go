package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment leaves a knob unset.
const (
	DefaultDBType          = "sqlite"
	DefaultDBPath          = "data/phraseforge.db"
	DefaultLogLevel        = "info"
	DefaultCacheTTL        = 5 * time.Minute
	DefaultMaintenanceHour = 0 // Midnight streak rollover
)

// DatabaseConfig selects the backing store.
type DatabaseConfig struct {
	Type string // "sqlite" or "postgres"
	Path string // SQLite file path
	URL  string // Postgres connection string
}

// Config holds all runtime configuration for the application.
type Config struct {
	Database        DatabaseConfig
	LogLevel        string
	StatsCacheTTL   time.Duration
	MaintenanceHour int
}

// Load reads configuration from a .env file (if present) and the
// environment, falling back to defaults for anything unset.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment alone is enough.
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			Type: getEnv("DB_TYPE", DefaultDBType),
			Path: getEnv("DB_PATH", DefaultDBPath),
			URL:  os.Getenv("DATABASE_URL"),
		},
		LogLevel:        getEnv("LOG_LEVEL", DefaultLogLevel),
		StatsCacheTTL:   DefaultCacheTTL,
		MaintenanceHour: DefaultMaintenanceHour,
	}

	if cfg.Database.Type != "sqlite" && cfg.Database.Type != "postgres" {
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.Database.Type)
	}
	if cfg.Database.Type == "postgres" && cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when DB_TYPE is postgres")
	}

	if raw := os.Getenv("STATS_CACHE_TTL_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			return nil, fmt.Errorf("invalid STATS_CACHE_TTL_MINUTES %q", raw)
		}
		cfg.StatsCacheTTL = time.Duration(minutes) * time.Minute
	}

	if raw := os.Getenv("MAINTENANCE_HOUR"); raw != "" {
		hour, err := strconv.Atoi(raw)
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("invalid MAINTENANCE_HOUR %q", raw)
		}
		cfg.MaintenanceHour = hour
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
