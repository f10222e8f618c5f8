package apiclient

import (
	"context"
	"net/http"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	apperrors "github.com/hypersdk/orchestrator/internal/errors"
)

// CarbonStatus fetches the current grid status for a zone. Threshold is the
// intensity below which a window counts as clean; zero lets the daemon apply
// its default.
func (c *Client) CarbonStatus(ctx context.Context, zone string, threshold float64) (*model.CarbonStatus, error) {
	if zone == "" {
		return nil, apperrors.ValidationField("zone", "zone is required")
	}
	req := model.CarbonStatusRequest{Zone: zone, Threshold: threshold}
	var status model.CarbonStatus
	if err := c.do(ctx, http.MethodPost, "/carbon/status", req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// EstimateCarbon compares emitting now against the best window in the
// forecast for a transfer of the given size and duration.
func (c *Client) EstimateCarbon(ctx context.Context, req model.CarbonEstimateRequest) (*model.CarbonEstimate, error) {
	if req.Zone == "" {
		return nil, apperrors.ValidationField("zone", "zone is required")
	}
	if req.DataSizeGB <= 0 {
		return nil, apperrors.ValidationField("data_size_gb", "size must be greater than zero")
	}
	if req.DurationHours <= 0 {
		return nil, apperrors.ValidationField("duration_hours", "duration must be greater than zero")
	}
	var est model.CarbonEstimate
	if err := c.do(ctx, http.MethodPost, "/carbon/estimate", req, &est); err != nil {
		return nil, err
	}
	return &est, nil
}

// CarbonReport computes the emissions footprint of one export.
func (c *Client) CarbonReport(ctx context.Context, req model.CarbonReportRequest) (*model.CarbonReport, error) {
	if req.JobID == "" {
		return nil, apperrors.ValidationField("job_id", "job ID is required")
	}
	if req.DataSizeGB <= 0 {
		return nil, apperrors.ValidationField("data_size_gb", "size must be greater than zero")
	}
	if req.Zone == "" {
		return nil, apperrors.ValidationField("zone", "zone is required")
	}
	var report model.CarbonReport
	if err := c.do(ctx, http.MethodPost, "/carbon/report", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// CarbonZones lists the grid zones the daemon can answer for.
func (c *Client) CarbonZones(ctx context.Context) ([]model.CarbonZone, error) {
	var resp struct {
		Zones []model.CarbonZone `json:"zones"`
		Total int                `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, "/carbon/zones", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Zones, nil
}
