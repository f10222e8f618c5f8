package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	"github.com/hypersdk/orchestrator/internal/service"
)

var (
	submitVMPath    string
	submitName      string
	submitOutputDir string
	submitFormat    string
	submitCompress  bool
	submitThin      bool
	submitZone      string
	submitSizeGB    float64
	submitCarbon    bool
	submitAdvise    bool
	submitWatch     bool

	submitCmd = &cobra.Command{
		Use:   "submit",
		Short: "Submit a VM export job",
		Long: `Submit an export job to the daemon.

With --carbon-aware the carbon decision engine consults grid intensity and
either submits immediately or attaches deferral hints for a cleaner window.
With --advise the command first prints a storage cost comparison and the
current carbon status (fetched concurrently) before submitting.`,
		RunE: runSubmit,
	}
)

// advice is the pre-submission report printed by --advise.
type advice struct {
	Cost   *model.CostComparison `json:"cost,omitempty"`
	Carbon *model.CarbonStatus   `json:"carbon,omitempty"`
}

func gatherAdvice(ctx context.Context, engine *service.CarbonEngine, sizeGB float64, zone string) (*advice, error) {
	costEngine, err := service.NewCostEngine(client, logger)
	if err != nil {
		return nil, err
	}

	var report advice
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cmp, cerr := costEngine.Compare(gctx, model.CostEstimateRequest{StorageGB: sizeGB, TransferGB: sizeGB})
		if cerr != nil {
			return cerr
		}
		report.Cost = cmp
		return nil
	})
	g.Go(func() error {
		status, serr := engine.Status(gctx, zone)
		if serr != nil {
			return serr
		}
		report.Carbon = status
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &report, nil
}

func runSubmit(cmd *cobra.Command, args []string) error {
	def := model.JobDefinition{
		Name:      submitName,
		VMPath:    submitVMPath,
		OutputDir: submitOutputDir,
		Format:    model.ExportFormat(submitFormat),
		Compress:  submitCompress,
		Thin:      submitThin,
	}
	if err := def.Validate(); err != nil {
		return err
	}

	engine, err := newCarbonEngine(cmd)
	if err != nil {
		return err
	}

	if submitAdvise {
		if submitSizeGB <= 0 {
			return fmt.Errorf("--advise requires --size-gb")
		}
		report, aerr := gatherAdvice(cmd.Context(), engine, submitSizeGB, submitZone)
		if aerr != nil {
			logger.Warn("advice unavailable, continuing", "error", aerr)
		} else if perr := printJSON(report); perr != nil {
			return perr
		}
	}

	var jobID string
	if submitCarbon {
		plan, perr := engine.SubmitWithPolicy(cmd.Context(), def, submitZone, submitSizeGB)
		if perr != nil {
			return perr
		}
		jobID = plan.JobID
		fmt.Printf("Submitted job %s (%s)\n", plan.JobID, plan.Reasoning)
		if plan.CarbonAware {
			def = annotatedForHistory(def)
		}
	} else {
		jobID, err = client.SubmitJob(cmd.Context(), def)
		if err != nil {
			return err
		}
		fmt.Printf("Submitted job %s\n", jobID)
	}
	def.ID = jobID
	maybeRecordSubmission(cmd, def, jobID)

	if !submitWatch {
		return nil
	}
	return watchJob(cmd, jobID)
}

// annotatedForHistory mirrors the carbon-aware flag onto the definition the
// history store records.
func annotatedForHistory(def model.JobDefinition) model.JobDefinition {
	out := def.Normalized()
	if out.Metadata == nil {
		out.Metadata = map[string]any{}
	}
	out.Metadata[model.MetaCarbonAware] = true
	return out
}

func init() {
	submitCmd.Flags().StringVar(&submitVMPath, "vm-path", "", "inventory path of the VM to export (required)")
	submitCmd.Flags().StringVar(&submitName, "name", "", "display name for the job")
	submitCmd.Flags().StringVarP(&submitOutputDir, "output-dir", "o", "", "directory the daemon writes the export to (required)")
	submitCmd.Flags().StringVarP(&submitFormat, "format", "f", "", "export format: raw, qcow2, vmdk, ova, ovf (default ovf)")
	submitCmd.Flags().BoolVar(&submitCompress, "compress", false, "compress exported disks")
	submitCmd.Flags().BoolVar(&submitThin, "thin", false, "export thin-provisioned disks")
	submitCmd.Flags().StringVar(&submitZone, "zone", "", "grid zone for carbon decisions (default from CARBON_DEFAULT_ZONE)")
	submitCmd.Flags().Float64Var(&submitSizeGB, "size-gb", 0, "estimated transfer size for advice and carbon estimates")
	submitCmd.Flags().BoolVar(&submitCarbon, "carbon-aware", false, "apply the carbon decision policy before submitting")
	submitCmd.Flags().BoolVar(&submitAdvise, "advise", false, "print cost and carbon advice before submitting")
	submitCmd.Flags().BoolVarP(&submitWatch, "watch", "w", false, "monitor the job until it finishes")
	_ = submitCmd.MarkFlagRequired("vm-path")
	rootCmd.AddCommand(submitCmd)
}
