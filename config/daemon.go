package config

import (
	"strings"
	"time"
)

// DaemonConfig contains the export daemon connection settings.
type DaemonConfig struct {
	// BaseURL is the daemon's HTTP address.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	// APIKey is sent as X-API-Key on every request when set.
	APIKey string `env:"API_KEY"  envDefault:""`
	// Timeout bounds each request to the daemon.
	Timeout time.Duration `env:"TIMEOUT"  envDefault:"30s"`
}

// Sanitize normalises the daemon settings and enforces safe defaults.
func (c *DaemonConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8080"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}
