package apiclient

import (
	"context"
	"net/http"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	apperrors "github.com/hypersdk/orchestrator/internal/errors"
)

type submitRequest struct {
	Jobs []model.JobDefinition `json:"jobs"`
}

// SubmitJob validates and submits a single job definition, returning the
// daemon-assigned job ID. A definition the daemon rejects outright surfaces
// as an API error carrying the daemon's first reported reason.
func (c *Client) SubmitJob(ctx context.Context, def model.JobDefinition) (string, error) {
	resp, err := c.SubmitJobs(ctx, []model.JobDefinition{def})
	if err != nil {
		return "", err
	}
	if len(resp.JobIDs) == 0 {
		return "", apperrors.Validation("daemon accepted the job but returned no job ID")
	}
	return resp.JobIDs[0], nil
}

// SubmitJobs submits a batch of job definitions. Each definition is validated
// and normalized before anything crosses the wire; a batch the daemon accepts
// nothing from is treated as a failure.
func (c *Client) SubmitJobs(ctx context.Context, defs []model.JobDefinition) (*model.SubmitResponse, error) {
	if len(defs) == 0 {
		return nil, apperrors.Validation("at least one job definition is required")
	}
	normalized := make([]model.JobDefinition, 0, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		normalized = append(normalized, def.Normalized())
	}

	var resp model.SubmitResponse
	if err := c.do(ctx, http.MethodPost, "/jobs/submit", submitRequest{Jobs: normalized}, &resp); err != nil {
		return nil, err
	}
	if resp.Accepted == 0 {
		msg := "daemon rejected all submitted jobs"
		if len(resp.Errors) > 0 {
			msg = resp.Errors[0]
		}
		return nil, apperrors.API(http.StatusOK, msg, nil)
	}
	c.logger.Debug("submitted jobs", "accepted", resp.Accepted, "rejected", len(resp.Errors))
	return &resp, nil
}

// GetJob fetches one job by ID. A job the daemon does not know returns a
// NotFound error.
func (c *Client) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	if jobID == "" {
		return nil, apperrors.ValidationField("job_id", "job ID is required")
	}
	var job model.Job
	if err := c.do(ctx, http.MethodGet, "/jobs/"+jobID, nil, &job); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundf("job %s not found", jobID)
		}
		return nil, err
	}
	return &job, nil
}

// QueryJobs lists jobs matching the request filters.
func (c *Client) QueryJobs(ctx context.Context, req model.QueryRequest) ([]model.Job, error) {
	var resp model.QueryResponse
	if err := c.do(ctx, http.MethodPost, "/jobs/query", req, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// CancelJob requests cancellation of one job. It returns true when the daemon
// cancelled the job, and false with a nil error when the job was already
// terminal or unknown: cancelling a finished job is a no-op, not a failure.
func (c *Client) CancelJob(ctx context.Context, jobID string) (bool, error) {
	if jobID == "" {
		return false, apperrors.ValidationField("job_id", "job ID is required")
	}
	resp, err := c.CancelJobs(ctx, []string{jobID})
	if err != nil {
		return false, err
	}
	for _, id := range resp.Cancelled {
		if id == jobID {
			return true, nil
		}
	}
	return false, nil
}

// CancelJobs requests cancellation of a batch of jobs.
func (c *Client) CancelJobs(ctx context.Context, jobIDs []string) (*model.CancelResponse, error) {
	if len(jobIDs) == 0 {
		return nil, apperrors.Validation("at least one job ID is required")
	}
	var resp model.CancelResponse
	if err := c.do(ctx, http.MethodPost, "/jobs/cancel", model.CancelRequest{JobIDs: jobIDs}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
