package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon health and job counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.Health(cmd.Context()); err != nil {
			return fmt.Errorf("daemon unhealthy: %w", err)
		}
		status, err := client.Status(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(status)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
