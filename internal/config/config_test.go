package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/flavortown/internal/config"
)

// clearEnv blanks every variable Load reads so tests start from defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "DEBUG", "CORS_ORIGINS", "DATA_SOURCE", "FEATURES_PATH",
		"LOCATIONS_PATH", "DATABASE_URL", "PROFILE_PATH", "SESSION_TTL", "MAX_BODY_BYTES",
	} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that every optional env var falls back to its
// default and that nothing is required for the CSV data source.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8050", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.Debug)
	require.Equal(t, []string{"http://localhost:8050"}, cfg.CORSOrigins)
	require.Equal(t, config.SourceCSV, cfg.DataSource)
	require.Equal(t, "data/df_yelp.csv", cfg.FeaturesPath)
	require.Equal(t, "data/df_choropleth.csv", cfg.LocationsPath)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, int64(65536), cfg.MaxBodyBytes)
	require.Empty(t, cfg.ProfilePath)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("DATA_SOURCE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/flavortown")
	t.Setenv("FEATURES_PATH", "/srv/features.csv")
	t.Setenv("LOCATIONS_PATH", "/srv/locations.csv")
	t.Setenv("PROFILE_PATH", "/srv/profile.yaml")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("MAX_BODY_BYTES", "1024")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, config.SourcePostgres, cfg.DataSource)
	require.Equal(t, "postgres://user:pass@db:5432/flavortown", cfg.DatabaseURL)
	require.Equal(t, "/srv/features.csv", cfg.FeaturesPath)
	require.Equal(t, "/srv/locations.csv", cfg.LocationsPath)
	require.Equal(t, "/srv/profile.yaml", cfg.ProfilePath)
	require.Equal(t, 5*time.Minute, cfg.SessionTTL)
	require.Equal(t, int64(1024), cfg.MaxBodyBytes)
}

// TestLoad_debugForcesDebugLevel verifies DEBUG=true overrides LOG_LEVEL.
func TestLoad_debugForcesDebugLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBUG", "true")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.True(t, cfg.Debug)
	require.Equal(t, "debug", cfg.LogLevel)
}

// TestLoad_postgresRequiresDatabaseURL verifies that an error naming the
// missing variable is returned when the Postgres source has no DSN.
func TestLoad_postgresRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_SOURCE", "postgres")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_invalidValues(t *testing.T) {
	tests := []struct {
		key, value, wantErr string
	}{
		{"DATA_SOURCE", "mongo", "DATA_SOURCE"},
		{"DEBUG", "maybe", "DEBUG"},
		{"SESSION_TTL", "forever", "SESSION_TTL"},
		{"SESSION_TTL", "-1m", "SESSION_TTL"},
		{"MAX_BODY_BYTES", "lots", "MAX_BODY_BYTES"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()

			require.Error(t, err)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
