package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hypersdk/orchestrator/internal/bootstrap"
	"github.com/hypersdk/orchestrator/internal/data"
	"github.com/hypersdk/orchestrator/internal/domain/model"
	"github.com/hypersdk/orchestrator/internal/service"
)

// connectCarbonCache dials Redis for the carbon cache. The client is closed
// when the command finishes.
func connectCarbonCache(cmd *cobra.Command) (service.CacheRepository, error) {
	redisClient, err := bootstrap.ConnectRedis(cmd.Context(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	cobra.OnFinalize(func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.Debug("redis close failed", "error", cerr)
		}
	})
	return data.NewRedisCacheRepo(redisClient), nil
}

// connectHistory opens the export-history store and ensures its schema. The
// pool is closed when the command finishes.
func connectHistory(cmd *cobra.Command) (*data.ExportHistoryRepo, error) {
	db, err := bootstrap.ConnectDB(cmd.Context(), cfg.Postgres)
	if err != nil {
		return nil, err
	}
	cobra.OnFinalize(func() {
		if cerr := db.Close(); cerr != nil {
			logger.Debug("history db close failed", "error", cerr)
		}
	})

	repo := data.NewExportHistoryRepo(db)
	if err := repo.EnsureSchema(cmd.Context()); err != nil {
		return nil, err
	}
	return repo, nil
}

// maybeRecordSubmission writes a history row when the history store is
// enabled. History failures are logged, never fatal for the submission path.
func maybeRecordSubmission(cmd *cobra.Command, def model.JobDefinition, jobID string) {
	if !cfg.Postgres.HistoryEnabled {
		return
	}
	repo, err := connectHistory(cmd)
	if err != nil {
		logger.Warn("history store unavailable, submission not recorded", "error", err)
		return
	}
	if err := repo.RecordSubmission(cmd.Context(), def, jobID); err != nil {
		logger.Warn("failed to record submission", "job_id", jobID, "error", err)
	}
}

// maybeRecordOutcome updates the history row for a terminal job.
func maybeRecordOutcome(cmd *cobra.Command, job *model.Job) {
	if !cfg.Postgres.HistoryEnabled || job == nil || !job.Terminal() {
		return
	}
	repo, err := connectHistory(cmd)
	if err != nil {
		logger.Warn("history store unavailable, outcome not recorded", "error", err)
		return
	}
	if err := repo.RecordOutcome(cmd.Context(), job); err != nil {
		logger.Warn("failed to record outcome", "job_id", job.ID(), "error", err)
	}
}
