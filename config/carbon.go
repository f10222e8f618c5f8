package config

import (
	"strings"
	"time"
)

// CarbonConfig contains the carbon-aware scheduling settings.
type CarbonConfig struct {
	// DefaultZone is the grid zone used when a command does not name one.
	DefaultZone string `env:"DEFAULT_ZONE" envDefault:"US-CAL-CISO"`
	// MaxIntensity is the gCO2eq/kWh threshold above which a window counts as dirty.
	MaxIntensity float64 `env:"MAX_INTENSITY" envDefault:"200"`
	// MaxDelayHours bounds how long a carbon-aware job may be deferred.
	MaxDelayHours float64 `env:"MAX_DELAY_HOURS" envDefault:"4"`
	// MinSavingsPercent is the projected savings below which deferring is not worth it.
	MinSavingsPercent float64 `env:"MIN_SAVINGS_PERCENT" envDefault:"30"`
	// CacheEnabled turns on Redis caching of carbon statuses and zones.
	CacheEnabled bool `env:"CACHE_ENABLED" envDefault:"false"`
	// StatusTTL bounds staleness of cached carbon statuses.
	StatusTTL time.Duration `env:"STATUS_TTL" envDefault:"5m"`
	// ZonesTTL bounds staleness of the cached zone listing.
	ZonesTTL time.Duration `env:"ZONES_TTL" envDefault:"24h"`
}

// Sanitize normalises the carbon settings and enforces safe defaults.
func (c *CarbonConfig) Sanitize() {
	c.DefaultZone = strings.TrimSpace(c.DefaultZone)
	if c.DefaultZone == "" {
		c.DefaultZone = "US-CAL-CISO"
	}
	if c.MaxIntensity <= 0 {
		c.MaxIntensity = 200
	}
	if c.MaxDelayHours <= 0 {
		c.MaxDelayHours = 4
	}
	if c.MinSavingsPercent <= 0 {
		c.MinSavingsPercent = 30
	}
	if c.StatusTTL <= 0 {
		c.StatusTTL = 5 * time.Minute
	}
	if c.ZonesTTL <= 0 {
		c.ZonesTTL = 24 * time.Hour
	}
}
