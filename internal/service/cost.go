package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	apperrors "github.com/hypersdk/orchestrator/internal/errors"
)

// CostAPI is the slice of the daemon client the cost engine needs.
type CostAPI interface {
	EstimateCost(ctx context.Context, req model.CostEstimateRequest) (*model.CostEstimate, error)
	CompareCosts(ctx context.Context, req model.CostEstimateRequest) (*model.CostComparison, error)
	ProjectCosts(ctx context.Context, req model.CostEstimateRequest) (*model.YearlyProjection, error)
	EstimateSize(ctx context.Context, req model.SizeEstimateRequest) (*model.SizeEstimate, error)
}

// CostEngine wraps the daemon's pricing endpoints and enforces the ordering
// and arithmetic invariants consumers rely on, regardless of what the daemon
// returned.
type CostEngine struct {
	api    CostAPI
	logger *slog.Logger
}

// NewCostEngine builds a CostEngine. API is required.
func NewCostEngine(api CostAPI, logger *slog.Logger) (*CostEngine, error) {
	if api == nil {
		return nil, apperrors.Validation("cost engine requires a cost API")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CostEngine{api: api, logger: logger}, nil
}

// Estimate prices a single destination.
func (e *CostEngine) Estimate(ctx context.Context, req model.CostEstimateRequest) (*model.CostEstimate, error) {
	return e.api.EstimateCost(ctx, req)
}

// EstimateSize predicts an export's size before running it.
func (e *CostEngine) EstimateSize(ctx context.Context, req model.SizeEstimateRequest) (*model.SizeEstimate, error) {
	return e.api.EstimateSize(ctx, req)
}

// Compare prices several providers and normalizes the comparison: estimates
// sorted cheapest first, Cheapest set to the provider with the lowest total,
// and SavingsVsExpensive recomputed as the exact spread between the most and
// least expensive estimates.
func (e *CostEngine) Compare(ctx context.Context, req model.CostEstimateRequest) (*model.CostComparison, error) {
	cmp, err := e.api.CompareCosts(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(cmp.Estimates) == 0 {
		return nil, apperrors.Validation("comparison returned no estimates")
	}

	sort.SliceStable(cmp.Estimates, func(i, j int) bool {
		return cmp.Estimates[i].TotalCost < cmp.Estimates[j].TotalCost
	})
	cheapest := cmp.Estimates[0]
	expensive := cmp.Estimates[len(cmp.Estimates)-1]
	cmp.Cheapest = cheapest.Provider
	cmp.SavingsVsExpensive = expensive.TotalCost - cheapest.TotalCost
	if cmp.Recommended == "" {
		cmp.Recommended = cheapest.Provider
	}
	return cmp, nil
}

// ProjectYearly projects a year of storage cost. The daemon must return
// exactly twelve monthly entries; anything else is a malformed response.
func (e *CostEngine) ProjectYearly(ctx context.Context, req model.CostEstimateRequest) (*model.YearlyProjection, error) {
	proj, err := e.api.ProjectCosts(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(proj.MonthlyBreakdown) != 12 {
		return nil, apperrors.Validationf("projection returned %d monthly entries, want 12", len(proj.MonthlyBreakdown))
	}
	return proj, nil
}

// QuarterlyTotals folds a yearly projection into four quarterly sums.
func QuarterlyTotals(proj *model.YearlyProjection) ([4]float64, error) {
	var quarters [4]float64
	if proj == nil || len(proj.MonthlyBreakdown) != 12 {
		return quarters, apperrors.Validation("quarterly totals need a full twelve-month projection")
	}
	for i, month := range proj.MonthlyBreakdown {
		quarters[i/3] += month.TotalCost
	}
	return quarters, nil
}
