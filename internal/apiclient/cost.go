package apiclient

import (
	"context"
	"net/http"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	apperrors "github.com/hypersdk/orchestrator/internal/errors"
)

// EstimateCost prices a single storage destination.
func (c *Client) EstimateCost(ctx context.Context, req model.CostEstimateRequest) (*model.CostEstimate, error) {
	if req.StorageGB <= 0 {
		return nil, apperrors.ValidationField("storage_gb", "size must be greater than zero")
	}
	if req.Provider == "" {
		return nil, apperrors.ValidationField("provider", "provider is required")
	}
	var est model.CostEstimate
	if err := c.do(ctx, http.MethodPost, "/cost/estimate", req, &est); err != nil {
		return nil, err
	}
	return &est, nil
}

// CompareCosts prices every provider the daemon knows for the same payload.
// Provider on the request is ignored by the daemon.
func (c *Client) CompareCosts(ctx context.Context, req model.CostEstimateRequest) (*model.CostComparison, error) {
	if req.StorageGB <= 0 {
		return nil, apperrors.ValidationField("storage_gb", "size must be greater than zero")
	}
	var cmp model.CostComparison
	if err := c.do(ctx, http.MethodPost, "/cost/compare", req, &cmp); err != nil {
		return nil, err
	}
	return &cmp, nil
}

// ProjectCosts projects a year of storage cost for one destination.
func (c *Client) ProjectCosts(ctx context.Context, req model.CostEstimateRequest) (*model.YearlyProjection, error) {
	if req.StorageGB <= 0 {
		return nil, apperrors.ValidationField("storage_gb", "size must be greater than zero")
	}
	if req.Provider == "" {
		return nil, apperrors.ValidationField("provider", "provider is required")
	}
	var proj model.YearlyProjection
	if err := c.do(ctx, http.MethodPost, "/cost/project", req, &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

// EstimateSize predicts an export's output size before running it.
func (c *Client) EstimateSize(ctx context.Context, req model.SizeEstimateRequest) (*model.SizeEstimate, error) {
	if req.DiskSizeGB <= 0 {
		return nil, apperrors.ValidationField("disk_size_gb", "disk size must be greater than zero")
	}
	var est model.SizeEstimate
	if err := c.do(ctx, http.MethodPost, "/cost/estimate-size", req, &est); err != nil {
		return nil, err
	}
	return &est, nil
}
