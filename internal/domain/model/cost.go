package model

import "time"

// CostBreakdown itemizes the cost components of storing an export.
type CostBreakdown struct {
	StorageCost     float64 `json:"storage_cost"`
	TransferCost    float64 `json:"transfer_cost"`
	RequestCost     float64 `json:"request_cost"`
	RetrievalCost   float64 `json:"retrieval_cost"`
	EarlyDeleteCost float64 `json:"early_delete_cost"`
}

// Total sums the breakdown components.
func (b CostBreakdown) Total() float64 {
	return b.StorageCost + b.TransferCost + b.RequestCost + b.RetrievalCost + b.EarlyDeleteCost
}

// CostEstimateRequest shapes the pricing input the daemon expects. The same
// request body drives POST /cost/estimate, /cost/compare, and /cost/project;
// compare ignores Provider and prices every provider it knows.
type CostEstimateRequest struct {
	Provider     string  `json:"provider"`
	Region       string  `json:"region,omitempty"`
	StorageClass string  `json:"storage_class,omitempty"`
	StorageGB    float64 `json:"storage_gb"`
	TransferGB   float64 `json:"transfer_gb,omitempty"`
	Requests     int64   `json:"requests,omitempty"`
	DurationDays int     `json:"duration_days,omitempty"`
}

// CostEstimate prices a single provider/region/storage-class combination,
// returned by POST /cost/estimate.
type CostEstimate struct {
	Provider       string        `json:"provider"`
	Region         string        `json:"region,omitempty"`
	StorageClass   string        `json:"storage_class,omitempty"`
	Breakdown      CostBreakdown `json:"breakdown"`
	TotalCost      float64       `json:"total_cost"`
	Currency       string        `json:"currency,omitempty"`
	EstimatedAt    time.Time     `json:"estimated_at"`
	PricingVersion string        `json:"pricing_version,omitempty"`
}

// CostComparison is the daemon's reply to POST /cost/compare. Estimates are
// ordered cheapest first; Cheapest names the provider with the lowest total.
type CostComparison struct {
	Request            *CostEstimateRequest `json:"request,omitempty"`
	Estimates          []CostEstimate       `json:"estimates"`
	Cheapest           string               `json:"cheapest"`
	Recommended        string               `json:"recommended,omitempty"`
	SavingsVsExpensive float64              `json:"savings_vs_expensive"`
}

// MonthlyCost is one month's line in a yearly projection.
type MonthlyCost struct {
	Month     int            `json:"month"`
	TotalCost float64        `json:"total_cost"`
	Breakdown *CostBreakdown `json:"breakdown,omitempty"`
}

// YearlyProjection is the daemon's reply to POST /cost/project. The monthly
// breakdown always holds twelve entries, one per month of the projection
// window.
type YearlyProjection struct {
	Year             int           `json:"year"`
	TotalCost        float64       `json:"total_cost"`
	MonthlyAverage   float64       `json:"monthly_average"`
	MonthlyBreakdown []MonthlyCost `json:"monthly_breakdown"`
}

// SizeEstimateRequest asks the daemon to predict an export's size before
// running it, for POST /cost/estimate-size.
type SizeEstimateRequest struct {
	DiskSizeGB       float64      `json:"disk_size_gb"`
	Format           ExportFormat `json:"format,omitempty"`
	IncludeSnapshots bool         `json:"include_snapshots,omitempty"`
}

// SizeEstimate is the daemon's reply to POST /cost/estimate-size.
type SizeEstimate struct {
	VMID              string  `json:"vm_id,omitempty"`
	VMName            string  `json:"vm_name,omitempty"`
	TotalDiskSizeGB   float64 `json:"total_disk_size_gb"`
	EstimatedExportGB float64 `json:"estimated_export_gb"`
	CompressionRatio  float64 `json:"compression_ratio"`
	Format            string  `json:"format,omitempty"`
	IncludeSnapshots  bool    `json:"include_snapshots,omitempty"`
}
