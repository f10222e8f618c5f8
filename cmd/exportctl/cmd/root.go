// Package cmd implements the exportctl command tree.
package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/hypersdk/orchestrator/config"
	"github.com/hypersdk/orchestrator/internal/apiclient"
	"github.com/hypersdk/orchestrator/internal/bootstrap"
	"github.com/hypersdk/orchestrator/internal/observability/statsd"
	"github.com/hypersdk/orchestrator/internal/service"
)

const keyringService = "exportctl"

var (
	verbose bool

	cfg     config.AppConfig
	logger  *slog.Logger
	client  *apiclient.Client
	metrics *statsd.Client

	rootCmd = &cobra.Command{
		Use:   "exportctl",
		Short: "CLI for the VM export daemon (jobs, cost, carbon-aware scheduling)",
		Long: `exportctl talks to a running VM export daemon. It submits and monitors
export jobs, prices storage destinations before exporting, and can defer
transfers to cleaner grid windows using the daemon's carbon endpoints.

Daemon connection and engine thresholds are read from the environment
(DAEMON_*, MONITOR_*, CARBON_*); a .env file in the working directory is
loaded in development.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger = bootstrap.InitLogger(verbose)
			cfg, err = bootstrap.LoadConfig()
			if err != nil {
				return err
			}

			metrics, err = statsd.NewClient(statsd.Config{
				Enabled: cfg.Observability.IsEnabled(),
				Address: cfg.Observability.StatsdAddress,
				Prefix:  cfg.Observability.StatsdPrefix,
				Logger:  logger,
			})
			if err != nil {
				logger.Warn("statsd unavailable, metrics disabled", "error", err)
				metrics = nil
			}

			client, err = apiclient.New(apiclient.Config{
				BaseURL: cfg.Daemon.BaseURL,
				APIKey:  cfg.Daemon.APIKey,
				Timeout: cfg.Daemon.Timeout,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			// Restore a session token from the keyring when one exists.
			if token, kerr := keyring.Get(keyringService, cfg.Daemon.BaseURL); kerr == nil && token != "" {
				client.SetToken(token)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if metrics != nil {
				if err := metrics.Close(); err != nil {
					logger.Debug("statsd close failed", "error", err)
				}
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newMonitor builds a job monitor over the shared client and config.
func newMonitor(sink service.EventSink, interval time.Duration) (*service.Monitor, error) {
	return service.NewMonitor(service.MonitorOptions{
		API:           client,
		Interval:      interval,
		CancelTimeout: cfg.Monitor.CancelTimeout,
		Logger:        logger,
		Metrics:       metrics,
		Sink:          sink,
	})
}

// newCarbonEngine builds the carbon decision engine, attaching the Redis
// cache when enabled.
func newCarbonEngine(cmd *cobra.Command) (*service.CarbonEngine, error) {
	opts := service.CarbonOptions{
		API:               client,
		Submitter:         client,
		DefaultZone:       cfg.Carbon.DefaultZone,
		MaxIntensity:      cfg.Carbon.MaxIntensity,
		MaxDelayHours:     cfg.Carbon.MaxDelayHours,
		MinSavingsPercent: cfg.Carbon.MinSavingsPercent,
		StatusTTL:         cfg.Carbon.StatusTTL,
		ZonesTTL:          cfg.Carbon.ZonesTTL,
		Logger:            logger,
	}
	if cfg.Carbon.CacheEnabled {
		cache, err := connectCarbonCache(cmd)
		if err != nil {
			logger.Warn("carbon cache unavailable, continuing without it", "error", err)
		} else {
			opts.Cache = cache
		}
	}
	return service.NewCarbonEngine(opts)
}

// printJSON renders a command result to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
