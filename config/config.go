// Package config defines the environment-driven configuration for the export
// orchestration CLI.
package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - daemon.go: Export daemon connection configuration
//   - monitor.go: Job monitor polling configuration
//   - carbon.go: Carbon-aware scheduling configuration
//   - database.go: History store and cache configuration
//   - observability.go: Metrics configuration
type AppConfig struct {
	// IsDev controls development mode behavior.
	// Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Daemon connection configuration
	Daemon DaemonConfig `envPrefix:"DAEMON_"`

	// Job monitor configuration
	Monitor MonitorConfig `envPrefix:"MONITOR_"`

	// Carbon-aware scheduling configuration
	Carbon CarbonConfig `envPrefix:"CARBON_"`

	// Local persistence configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Daemon.Sanitize()
	c.Monitor.Sanitize()
	c.Carbon.Sanitize()
	c.Observability.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and APP_ENV environment variables so either
// convention enables development behavior.
func (c *AppConfig) detectDevMode() {
	if c.IsDev {
		return
	}
	appEnv := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	c.IsDev = appEnv == "development" || appEnv == "dev"
}
