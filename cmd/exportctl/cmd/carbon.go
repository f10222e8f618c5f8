package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hypersdk/orchestrator/internal/domain/model"
)

var (
	carbonZone     string
	carbonSizeGB   float64
	carbonDuration float64
	carbonJobID    string
	carbonStart    string
	carbonEnd      string

	carbonCmd = &cobra.Command{
		Use:   "carbon",
		Short: "Inspect grid carbon intensity and emissions",
	}

	carbonStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show current grid intensity for a zone",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newCarbonEngine(cmd)
			if err != nil {
				return err
			}
			status, err := engine.Status(cmd.Context(), carbonZone)
			if err != nil {
				return err
			}
			return printJSON(status)
		},
	}

	carbonZonesCmd = &cobra.Command{
		Use:   "zones",
		Short: "List supported grid zones",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newCarbonEngine(cmd)
			if err != nil {
				return err
			}
			zones, err := engine.Zones(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(zones)
		},
	}

	carbonEstimateCmd = &cobra.Command{
		Use:   "estimate",
		Short: "Compare emitting now against the best forecast window",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newCarbonEngine(cmd)
			if err != nil {
				return err
			}
			est, err := engine.EstimateSavings(cmd.Context(), model.CarbonEstimateRequest{
				Zone:          carbonZone,
				DataSizeGB:    carbonSizeGB,
				DurationHours: carbonDuration,
			})
			if err != nil {
				return err
			}
			return printJSON(est)
		},
	}

	carbonReportCmd = &cobra.Command{
		Use:   "report",
		Short: "Compute the emissions footprint of a finished export",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newCarbonEngine(cmd)
			if err != nil {
				return err
			}
			req := model.CarbonReportRequest{
				JobID:      carbonJobID,
				DataSizeGB: carbonSizeGB,
				Zone:       carbonZone,
			}
			if req.StartTime, err = parseReportTime(carbonStart); err != nil {
				return err
			}
			if req.EndTime, err = parseReportTime(carbonEnd); err != nil {
				return err
			}
			report, err := engine.Report(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
)

func parseReportTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, want RFC 3339", value)
	}
	return ts, nil
}

func init() {
	carbonCmd.PersistentFlags().StringVar(&carbonZone, "zone", "", "grid zone (default from CARBON_DEFAULT_ZONE)")

	carbonEstimateCmd.Flags().Float64Var(&carbonSizeGB, "size-gb", 0, "transfer size in GB (required)")
	_ = carbonEstimateCmd.MarkFlagRequired("size-gb")
	carbonEstimateCmd.Flags().Float64Var(&carbonDuration, "duration-hours", 0, "expected transfer duration in hours")

	carbonReportCmd.Flags().StringVar(&carbonJobID, "job-id", "", "job the report is for (required)")
	_ = carbonReportCmd.MarkFlagRequired("job-id")
	carbonReportCmd.Flags().Float64Var(&carbonSizeGB, "size-gb", 0, "data transferred in GB (required)")
	_ = carbonReportCmd.MarkFlagRequired("size-gb")
	carbonReportCmd.Flags().StringVar(&carbonStart, "start", "", "job start time, RFC 3339")
	carbonReportCmd.Flags().StringVar(&carbonEnd, "end", "", "job end time, RFC 3339")

	carbonCmd.AddCommand(carbonStatusCmd, carbonZonesCmd, carbonEstimateCmd, carbonReportCmd)
	rootCmd.AddCommand(carbonCmd)
}
