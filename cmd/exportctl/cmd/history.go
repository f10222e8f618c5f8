package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Inspect the local export history store",
		Long: `Read the local Postgres history of submitted exports. Requires
DB_HISTORY_ENABLED=true and a reachable history database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			if !cfg.Postgres.HistoryEnabled {
				return fmt.Errorf("history store is disabled; set DB_HISTORY_ENABLED=true")
			}
			return nil
		},
	}

	historyListCmd = &cobra.Command{
		Use:   "list",
		Short: "List recent exports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := connectHistory(cmd)
			if err != nil {
				return err
			}
			entries, err := repo.Recent(cmd.Context(), historyLimit)
			if err != nil {
				return err
			}
			return printJSON(entries)
		},
	}

	historyStatsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Summarize recorded export outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := connectHistory(cmd)
			if err != nil {
				return err
			}
			stats, err := repo.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	}
)

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum rows to return")
	historyCmd.AddCommand(historyListCmd, historyStatsCmd)
	rootCmd.AddCommand(historyCmd)
}
