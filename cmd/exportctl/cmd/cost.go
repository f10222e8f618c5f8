package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	"github.com/hypersdk/orchestrator/internal/service"
)

var (
	costStorageGB  float64
	costTransferGB float64
	costRequests   int64
	costDays       int
	costProvider   string
	costRegion     string
	costClass      string
	costQuarterly  bool

	costDiskGB    float64
	costFormat    string
	costSnapshots bool

	costCmd = &cobra.Command{
		Use:   "cost",
		Short: "Price export storage before transferring",
	}

	costEstimateCmd = &cobra.Command{
		Use:   "estimate",
		Short: "Price one provider/region/storage-class combination",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := service.NewCostEngine(client, logger)
			if err != nil {
				return err
			}
			est, err := engine.Estimate(cmd.Context(), costRequest())
			if err != nil {
				return err
			}
			return printJSON(est)
		},
	}

	costCompareCmd = &cobra.Command{
		Use:   "compare",
		Short: "Compare providers for the same payload, cheapest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := service.NewCostEngine(client, logger)
			if err != nil {
				return err
			}
			cmp, err := engine.Compare(cmd.Context(), costRequest())
			if err != nil {
				return err
			}
			return printJSON(cmp)
		},
	}

	costProjectCmd = &cobra.Command{
		Use:   "project",
		Short: "Project a year of storage cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := service.NewCostEngine(client, logger)
			if err != nil {
				return err
			}
			proj, err := engine.ProjectYearly(cmd.Context(), costRequest())
			if err != nil {
				return err
			}
			if !costQuarterly {
				return printJSON(proj)
			}
			quarters, err := service.QuarterlyTotals(proj)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"year":       proj.Year,
				"total_cost": proj.TotalCost,
				"quarters":   quarters,
			})
		},
	}

	costSizeCmd = &cobra.Command{
		Use:   "size",
		Short: "Predict an export's output size before running it",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := service.NewCostEngine(client, logger)
			if err != nil {
				return err
			}
			est, err := engine.EstimateSize(cmd.Context(), model.SizeEstimateRequest{
				DiskSizeGB:       costDiskGB,
				Format:           model.ExportFormat(costFormat),
				IncludeSnapshots: costSnapshots,
			})
			if err != nil {
				return err
			}
			return printJSON(est)
		},
	}
)

// costRequest shapes the shared pricing request from the command flags.
func costRequest() model.CostEstimateRequest {
	return model.CostEstimateRequest{
		Provider:     costProvider,
		Region:       costRegion,
		StorageClass: costClass,
		StorageGB:    costStorageGB,
		TransferGB:   costTransferGB,
		Requests:     costRequests,
		DurationDays: costDays,
	}
}

func init() {
	for _, c := range []*cobra.Command{costEstimateCmd, costCompareCmd, costProjectCmd} {
		c.Flags().Float64Var(&costStorageGB, "storage-gb", 0, "amount of data stored in GB (required)")
		_ = c.MarkFlagRequired("storage-gb")
		c.Flags().Float64Var(&costTransferGB, "transfer-gb", 0, "data transferred out in GB")
		c.Flags().Int64Var(&costRequests, "requests", 0, "number of API requests")
		c.Flags().IntVar(&costDays, "days", 0, "storage duration in days")
		c.Flags().StringVar(&costRegion, "region", "", "provider region")
		c.Flags().StringVar(&costClass, "storage-class", "", "storage class")
	}
	costEstimateCmd.Flags().StringVar(&costProvider, "provider", "", "storage provider (required)")
	_ = costEstimateCmd.MarkFlagRequired("provider")
	costProjectCmd.Flags().StringVar(&costProvider, "provider", "", "storage provider (required)")
	_ = costProjectCmd.MarkFlagRequired("provider")
	costProjectCmd.Flags().BoolVar(&costQuarterly, "quarterly", false, "print quarterly totals instead of monthly lines")

	costSizeCmd.Flags().Float64Var(&costDiskGB, "disk-gb", 0, "total disk size in GB (required)")
	_ = costSizeCmd.MarkFlagRequired("disk-gb")
	costSizeCmd.Flags().StringVar(&costFormat, "format", "", "export format")
	costSizeCmd.Flags().BoolVar(&costSnapshots, "include-snapshots", false, "include snapshot data in the estimate")

	costCmd.AddCommand(costEstimateCmd, costCompareCmd, costProjectCmd, costSizeCmd)
	rootCmd.AddCommand(costCmd)
}
