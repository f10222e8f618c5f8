package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hypersdk/orchestrator/internal/data/pgxutil"
	"github.com/hypersdk/orchestrator/internal/domain/model"
	apperrors "github.com/hypersdk/orchestrator/internal/errors"
)

// ExportHistoryRepo records submitted exports and their outcomes in Postgres
// so operators can audit past runs after daemon-side jobs have been pruned.
type ExportHistoryRepo struct {
	DB *sql.DB
}

// NewExportHistoryRepo creates a repo over an existing pool.
func NewExportHistoryRepo(db *sql.DB) *ExportHistoryRepo {
	return &ExportHistoryRepo{DB: db}
}

const historySchema = `
CREATE TABLE IF NOT EXISTS export_history (
	id            UUID PRIMARY KEY,
	job_id        TEXT NOT NULL UNIQUE,
	vm_path       TEXT NOT NULL,
	format        TEXT NOT NULL,
	carbon_aware  BOOLEAN NOT NULL DEFAULT FALSE,
	status        TEXT NOT NULL DEFAULT 'pending',
	total_size    BIGINT NOT NULL DEFAULT 0,
	duration_ns   BIGINT NOT NULL DEFAULT 0,
	error         TEXT NOT NULL DEFAULT '',
	submitted_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at  TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS export_history_submitted_at_idx ON export_history (submitted_at DESC);
`

// EnsureSchema creates the history table when it does not exist.
func (r *ExportHistoryRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, historySchema)
	return apperrors.MapDBError(err)
}

// HistoryEntry is one row of export history.
type HistoryEntry struct {
	ID          uuid.UUID  `db:"id"`
	JobID       string     `db:"job_id"`
	VMPath      string     `db:"vm_path"`
	Format      string     `db:"format"`
	CarbonAware bool       `db:"carbon_aware"`
	Status      string     `db:"status"`
	TotalSize   int64      `db:"total_size"`
	DurationNS  int64      `db:"duration_ns"`
	Error       string     `db:"error"`
	SubmittedAt time.Time  `db:"submitted_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

// Duration returns the recorded transfer duration.
func (e HistoryEntry) Duration() time.Duration {
	return time.Duration(e.DurationNS)
}

// RecordSubmission writes a history row for a freshly submitted job.
func (r *ExportHistoryRepo) RecordSubmission(ctx context.Context, def model.JobDefinition, jobID string) error {
	if jobID == "" {
		return apperrors.ValidationField("job_id", "job ID is required")
	}
	carbonAware := false
	if def.Metadata != nil {
		if v, ok := def.Metadata[model.MetaCarbonAware].(bool); ok {
			carbonAware = v
		}
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO export_history (id, job_id, vm_path, format, carbon_aware, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), jobID, def.VMPath, string(def.Normalized().Format), carbonAware, string(model.StatusPending),
	)
	return apperrors.MapDBError(err)
}

// RecordOutcome updates a history row once the monitor observed a terminal
// state. Jobs never recorded at submission time are ignored.
func (r *ExportHistoryRepo) RecordOutcome(ctx context.Context, job *model.Job) error {
	if job == nil || job.ID() == "" {
		return apperrors.ValidationField("job_id", "job ID is required")
	}

	var totalSize, durationNS int64
	if job.Result != nil {
		totalSize = job.Result.TotalSize
		durationNS = int64(job.Result.Duration)
	}

	_, err := r.DB.ExecContext(ctx, `
		UPDATE export_history
		SET status = $2, total_size = $3, duration_ns = $4, error = $5, completed_at = now()
		WHERE job_id = $1`,
		job.ID(), string(job.Status), totalSize, durationNS, job.Error,
	)
	return apperrors.MapDBError(err)
}

// Recent returns the newest history rows, most recent first.
func (r *ExportHistoryRepo) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []HistoryEntry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, job_id, vm_path, format, carbon_aware, status,
			       total_size, duration_ns, error, submitted_at, completed_at
			FROM export_history
			ORDER BY submitted_at DESC
			LIMIT $1`, limit)
		if err != nil {
			return err
		}
		entries, err = pgx.CollectRows(rows, pgx.RowToStructByName[HistoryEntry])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return entries, nil
}

// HistoryStats aggregates the recorded outcomes.
type HistoryStats struct {
	Total       int64 `db:"total"`
	Completed   int64 `db:"completed"`
	Failed      int64 `db:"failed"`
	Cancelled   int64 `db:"cancelled"`
	CarbonAware int64 `db:"carbon_aware"`
	TotalBytes  int64 `db:"total_bytes"`
}

// Stats summarizes the full history table.
func (r *ExportHistoryRepo) Stats(ctx context.Context) (*HistoryStats, error) {
	var stats HistoryStats
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT count(*)                                              AS total,
			       count(*) FILTER (WHERE status = 'completed')          AS completed,
			       count(*) FILTER (WHERE status = 'failed')             AS failed,
			       count(*) FILTER (WHERE status = 'cancelled')          AS cancelled,
			       count(*) FILTER (WHERE carbon_aware)                  AS carbon_aware,
			       coalesce(sum(total_size), 0)::bigint                  AS total_bytes
			FROM export_history`)
		if err != nil {
			return err
		}
		stats, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[HistoryStats])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &stats, nil
}
