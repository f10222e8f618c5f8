package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	"github.com/hypersdk/orchestrator/internal/service"
)

var (
	jobsAll    bool
	jobsStatus []string
	jobsLimit  int
	jobsQuery  string

	jobsCmd = &cobra.Command{
		Use:   "jobs",
		Short: "List and manage export jobs",
	}

	jobsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List jobs known to the daemon",
		Long: `List jobs, optionally filtered by status or a JMESPath expression.

The --query expression runs over the jobs' JSON form, e.g.:

  exportctl jobs list --query "[?status=='running'].definition.id"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.QueryRequest{All: jobsAll, Limit: jobsLimit}
			for _, s := range jobsStatus {
				status := model.JobStatus(s)
				if !status.Valid() {
					return fmt.Errorf("unknown status %q", s)
				}
				req.Status = append(req.Status, status)
			}

			jobs, err := client.QueryJobs(cmd.Context(), req)
			if err != nil {
				return err
			}
			result, err := service.FilterJobs(jobs, jobsQuery)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	jobsGetCmd = &cobra.Command{
		Use:   "get <job-id>",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := client.GetJob(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(job)
		},
	}

	jobsCancelCmd = &cobra.Command{
		Use:   "cancel <job-id> [job-id...]",
		Short: "Cancel jobs",
		Long: `Request cancellation of one or more jobs. Jobs that already finished are
reported as not cancelled; this is not an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.CancelJobs(cmd.Context(), args)
			if err != nil {
				return err
			}
			for _, id := range resp.Cancelled {
				fmt.Printf("cancelled %s\n", id)
			}
			for _, id := range resp.Failed {
				reason := resp.Errors[id]
				if reason == "" {
					reason = "not cancellable"
				}
				fmt.Printf("not cancelled %s: %s\n", id, reason)
			}
			return nil
		},
	}
)

func init() {
	jobsListCmd.Flags().BoolVar(&jobsAll, "all", false, "include terminal jobs")
	jobsListCmd.Flags().StringSliceVar(&jobsStatus, "status", nil, "filter by status (repeatable)")
	jobsListCmd.Flags().IntVar(&jobsLimit, "limit", 0, "maximum number of jobs to return")
	jobsListCmd.Flags().StringVarP(&jobsQuery, "query", "q", "", "JMESPath expression applied to the job list")
	jobsCmd.AddCommand(jobsListCmd, jobsGetCmd, jobsCancelCmd)
	rootCmd.AddCommand(jobsCmd)
}
