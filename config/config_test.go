package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsFromEnvParse(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "http://localhost:8080", cfg.Daemon.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Daemon.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Monitor.PollInterval)
	assert.Equal(t, 3*time.Second, cfg.Monitor.MultiPollInterval)
	assert.Equal(t, 5*time.Second, cfg.Monitor.CancelTimeout)
	assert.Equal(t, "US-CAL-CISO", cfg.Carbon.DefaultZone)
	assert.Equal(t, 200.0, cfg.Carbon.MaxIntensity)
	assert.Equal(t, 4.0, cfg.Carbon.MaxDelayHours)
	assert.Equal(t, 30.0, cfg.Carbon.MinSavingsPercent)
	assert.Equal(t, 5*time.Minute, cfg.Carbon.StatusTTL)
	assert.False(t, cfg.Postgres.HistoryEnabled)
	assert.False(t, cfg.Observability.IsEnabled())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DAEMON_BASE_URL", "https://exportd.internal:8443/")
	t.Setenv("DAEMON_API_KEY", "secret")
	t.Setenv("MONITOR_POLL_INTERVAL", "10s")
	t.Setenv("CARBON_DEFAULT_ZONE", "DE")
	t.Setenv("DB_HISTORY_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	// Trailing slash is stripped so path joins stay clean.
	assert.Equal(t, "https://exportd.internal:8443", cfg.Daemon.BaseURL)
	assert.Equal(t, "secret", cfg.Daemon.APIKey)
	assert.Equal(t, 10*time.Second, cfg.Monitor.PollInterval)
	assert.Equal(t, "DE", cfg.Carbon.DefaultZone)
	assert.True(t, cfg.Postgres.HistoryEnabled)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
}

func TestSanitizeGuardrails(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		check  func(*testing.T, *AppConfig)
	}{
		{
			name:   "sub-second poll interval is floored",
			mutate: func(c *AppConfig) { c.Monitor.PollInterval = 10 * time.Millisecond },
			check: func(t *testing.T, c *AppConfig) {
				assert.Equal(t, 2*time.Second, c.Monitor.PollInterval)
			},
		},
		{
			name:   "negative carbon threshold reset",
			mutate: func(c *AppConfig) { c.Carbon.MaxIntensity = -5 },
			check: func(t *testing.T, c *AppConfig) {
				assert.Equal(t, 200.0, c.Carbon.MaxIntensity)
			},
		},
		{
			name:   "blank zone reset",
			mutate: func(c *AppConfig) { c.Carbon.DefaultZone = "   " },
			check: func(t *testing.T, c *AppConfig) {
				assert.Equal(t, "US-CAL-CISO", c.Carbon.DefaultZone)
			},
		},
		{
			name:   "metrics without address disabled",
			mutate: func(c *AppConfig) { c.Observability.MetricsEnabled = true; c.Observability.StatsdAddress = "" },
			check: func(t *testing.T, c *AppConfig) {
				assert.False(t, c.Observability.IsEnabled())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg AppConfig
			require.NoError(t, env.Parse(&cfg))
			tt.mutate(&cfg)
			cfg.Sanitize()
			tt.check(t, &cfg)
		})
	}
}

func TestDevModeFromAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}

func TestDBConfigDSN(t *testing.T) {
	cfg := DBConfig{
		Host: "db.internal", Port: 5433,
		User: "exporter", Password: "pw", Name: "history", SSLMode: "require",
	}
	assert.Equal(t, "postgres://exporter:pw@db.internal:5433/history?sslmode=require", cfg.DSN())
}
