// Package mocks provides mock implementations for testing the orchestration layer.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the service port interfaces. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockAPI := mocks.NewMockJobAPI(ctrl)
//	mockAPI.EXPECT().GetJob(gomock.Any(), "job-1").Return(job, nil)
package mocks

// Generate mock for JobAPI interface from internal/service package.
// This creates MockJobAPI with methods for all JobAPI interface methods:
// GetJob, QueryJobs, CancelJob
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_api_mock.go github.com/hypersdk/orchestrator/internal/service JobAPI

// Generate mock for CostAPI interface from internal/service package.
// This creates MockCostAPI with methods for all CostAPI interface methods:
// EstimateCost, CompareCosts, ProjectCosts, EstimateSize
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cost_api_mock.go github.com/hypersdk/orchestrator/internal/service CostAPI

// Generate mock for CarbonAPI interface from internal/service package.
// This creates MockCarbonAPI with methods for all CarbonAPI interface methods:
// CarbonStatus, EstimateCarbon, CarbonReport, CarbonZones
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=carbon_api_mock.go github.com/hypersdk/orchestrator/internal/service CarbonAPI
