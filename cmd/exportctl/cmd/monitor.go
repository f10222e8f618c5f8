package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	"github.com/hypersdk/orchestrator/internal/service"
	"github.com/hypersdk/orchestrator/internal/util"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor <job-id> [job-id...]",
	Short: "Watch jobs until they finish",
	Long: `Poll the daemon and print each lifecycle change until the jobs reach a
terminal state. Interrupting the watch (Ctrl-C) asks the daemon to cancel
the job when a single job is being watched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return watchJob(cmd, args[0])
		}
		return watchJobs(cmd, args)
	},
}

// watchJob follows one job, printing events as they happen.
func watchJob(cmd *cobra.Command, jobID string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor, err := newMonitor(service.EventFunc(func(_ context.Context, ev service.Event) {
		switch ev.Kind {
		case service.TransitionProgress:
			phase := ""
			if ev.Job.Progress != nil {
				phase = ev.Job.Progress.Phase
			}
			fmt.Printf("%s  %5.1f%%  %s\n", ev.Job.Status, ev.Job.ProgressPercent(), phase)
		default:
			fmt.Printf("%s\n", ev.Job.Status)
		}
	}), cfg.Monitor.PollInterval)
	if err != nil {
		return err
	}

	job, err := monitor.Run(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return nil
	}
	maybeRecordOutcome(cmd, job)

	if job.Result != nil {
		fmt.Printf("transferred %s in %s\n",
			util.FormatBytes(job.Result.TotalSize),
			util.FormatTransferDuration(job.Result.Duration))
		if perr := printJSON(job.Result); perr != nil {
			return perr
		}
	}
	if job.Status == model.StatusFailed {
		return fmt.Errorf("job %s failed: %s", jobID, job.Error)
	}
	return nil
}

// watchJobs follows several jobs on a shared tick, redrawing a table.
func watchJobs(cmd *cobra.Command, jobIDs []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor, err := newMonitor(nil, cfg.Monitor.MultiPollInterval)
	if err != nil {
		return err
	}

	final, err := monitor.RunAll(ctx, jobIDs, func(jobs []model.Job) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "JOB\tSTATUS\tPROGRESS")
		for _, job := range jobs {
			fmt.Fprintf(w, "%s\t%s\t%.1f%%\n", job.ID(), job.Status, job.ProgressPercent())
		}
		if ferr := w.Flush(); ferr != nil {
			logger.Debug("render failed", "error", ferr)
		}
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, job := range final {
		job := job
		maybeRecordOutcome(cmd, &job)
		if job.Status == model.StatusFailed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d job(s) failed", failed)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
