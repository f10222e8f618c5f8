package model

import "time"

// GridForecastPoint is one step of the grid forecast attached to a status
// reading. Intensity is measured in gCO2eq/kWh.
type GridForecastPoint struct {
	Time            time.Time `json:"time"`
	CarbonIntensity float64   `json:"carbonIntensity"`
	Confidence      float64   `json:"confidence,omitempty"`
}

// ForecastPoint is one step of the simplified forecast attached to a carbon
// estimate, with the daemon's quality label.
type ForecastPoint struct {
	Time      time.Time `json:"time"`
	Intensity float64   `json:"intensity_gco2_kwh"`
	Quality   string    `json:"quality,omitempty"`
}

// CarbonStatusRequest asks the daemon for the current grid status, for
// POST /carbon/status. Threshold is the gCO2eq/kWh intensity below which a
// window counts as clean; the daemon defaults it when omitted.
type CarbonStatusRequest struct {
	Zone      string  `json:"zone"`
	Threshold float64 `json:"threshold,omitempty"`
}

// CarbonStatus reports the current grid carbon intensity for a zone.
type CarbonStatus struct {
	Zone             string              `json:"zone"`
	CurrentIntensity float64             `json:"current_intensity"`
	RenewablePercent float64             `json:"renewable_percent,omitempty"`
	OptimalForBackup bool                `json:"optimal_for_backup"`
	NextOptimalTime  *time.Time          `json:"next_optimal_time,omitempty"`
	Forecast         []GridForecastPoint `json:"forecast_next_4h,omitempty"`
	Reasoning        string              `json:"reasoning,omitempty"`
	Timestamp        time.Time           `json:"timestamp"`
	Quality          string              `json:"quality,omitempty"`
}

// CarbonEstimateRequest asks the daemon to compare running a transfer now
// against the best window in the forecast, for POST /carbon/estimate. All
// three fields are required by the daemon.
type CarbonEstimateRequest struct {
	Zone          string  `json:"zone"`
	DataSizeGB    float64 `json:"data_size_gb"`
	DurationHours float64 `json:"duration_hours"`
}

// CarbonEstimate is the daemon's reply to POST /carbon/estimate. Savings
// compare emitting now against emitting in the best forecast window.
type CarbonEstimate struct {
	CurrentIntensity   float64         `json:"current_intensity_gco2_kwh"`
	CurrentEmissionsKg float64         `json:"current_emissions_kg_co2"`
	BestIntensity      float64         `json:"best_intensity_gco2_kwh,omitempty"`
	BestEmissionsKg    float64         `json:"best_emissions_kg_co2,omitempty"`
	BestTime           *time.Time      `json:"best_time,omitempty"`
	SavingsKgCO2       float64         `json:"savings_kg_co2"`
	SavingsPercent     float64         `json:"savings_percent"`
	Recommendation     string          `json:"recommendation,omitempty"`
	DelayMinutes       float64         `json:"delay_minutes,omitempty"`
	Forecast           []ForecastPoint `json:"forecast,omitempty"`
}

// CarbonZone describes a supported grid zone, returned by GET /carbon/zones.
type CarbonZone struct {
	ID               string  `json:"id"`
	Name             string  `json:"name,omitempty"`
	Region           string  `json:"region,omitempty"`
	Description      string  `json:"description,omitempty"`
	TypicalIntensity float64 `json:"typical_intensity,omitempty"`
}

// CarbonReportRequest scopes a per-job emissions report for
// POST /carbon/report. JobID, DataSizeGB, and Zone are required by the
// daemon.
type CarbonReportRequest struct {
	JobID      string    `json:"job_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	DataSizeGB float64   `json:"data_size_gb"`
	Zone       string    `json:"zone"`
}

// CarbonReport is the emissions footprint of one export, returned by
// POST /carbon/report.
type CarbonReport struct {
	OperationID       string    `json:"operation_id"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	DurationHours     float64   `json:"duration_hours"`
	DataSizeGB        float64   `json:"data_size_gb"`
	EnergyKWh         float64   `json:"energy_kwh"`
	CarbonIntensity   float64   `json:"carbon_intensity_gco2_kwh"`
	CarbonEmissionsKg float64   `json:"carbon_emissions_kg_co2"`
	SavingsVsWorstKg  float64   `json:"savings_vs_worst_kg_co2"`
	RenewablePercent  float64   `json:"renewable_percent,omitempty"`
	Equivalent        string    `json:"equivalent,omitempty"`
}
