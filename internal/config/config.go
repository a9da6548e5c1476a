// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Data source names accepted by DATA_SOURCE.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all configuration values for the dashboard server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8050".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// Debug forces debug-level logging. Defaults to false.
	Debug bool

	// CORSOrigins is the list of allowed cross-origin request origins for the
	// JSON API. Defaults to ["http://localhost:8050"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// DataSource selects where the datasets are loaded from: "csv" (default)
	// or "postgres".
	DataSource string

	// FeaturesPath is the CSV file of featured restaurants.
	// Defaults to "data/df_yelp.csv".
	FeaturesPath string

	// LocationsPath is the CSV file of map markers.
	// Defaults to "data/df_choropleth.csv".
	LocationsPath string

	// DatabaseURL is the Postgres connection string. Required when
	// DataSource is "postgres".
	DatabaseURL string

	// ProfilePath is an optional YAML dashboard profile. Empty means the
	// built-in profile.
	ProfilePath string

	// SessionTTL is how long an idle dashboard session is kept. Defaults to 30m.
	SessionTTL time.Duration

	// MaxBodyBytes limits request bodies. Defaults to 64 KiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first variable that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8050"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8050")),
		DataSource:    strings.ToLower(getEnv("DATA_SOURCE", SourceCSV)),
		FeaturesPath:  getEnv("FEATURES_PATH", "data/df_yelp.csv"),
		LocationsPath: getEnv("LOCATIONS_PATH", "data/df_choropleth.csv"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ProfilePath:   os.Getenv("PROFILE_PATH"),
	}

	var err error
	if cfg.Debug, err = strconv.ParseBool(getEnv("DEBUG", "false")); err != nil {
		return Config{}, fmt.Errorf("DEBUG: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "30m")); err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL: must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "65536"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES: %w", err)
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	var missing []string

	switch cfg.DataSource {
	case SourceCSV:
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("DATA_SOURCE: unknown source %q (want %q or %q)", cfg.DataSource, SourceCSV, SourcePostgres)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
