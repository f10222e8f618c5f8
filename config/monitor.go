package config

import "time"

// MonitorConfig contains the job monitor polling settings.
type MonitorConfig struct {
	// PollInterval is the delay between polls when watching a single job.
	PollInterval time.Duration `env:"POLL_INTERVAL"       envDefault:"2s"`
	// MultiPollInterval is the shared tick when watching several jobs.
	MultiPollInterval time.Duration `env:"MULTI_POLL_INTERVAL" envDefault:"3s"`
	// CancelTimeout bounds the best-effort cancel issued on shutdown.
	CancelTimeout time.Duration `env:"CANCEL_TIMEOUT"      envDefault:"5s"`
}

// Sanitize enforces floors so a misconfigured environment cannot turn the
// monitor into a busy loop.
func (c *MonitorConfig) Sanitize() {
	if c.PollInterval < 250*time.Millisecond {
		c.PollInterval = 2 * time.Second
	}
	if c.MultiPollInterval < 250*time.Millisecond {
		c.MultiPollInterval = 3 * time.Second
	}
	if c.CancelTimeout <= 0 {
		c.CancelTimeout = 5 * time.Second
	}
}
