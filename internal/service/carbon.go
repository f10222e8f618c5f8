package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	apperrors "github.com/hypersdk/orchestrator/internal/errors"
)

// CarbonAPI is the slice of the daemon client the carbon engine needs.
type CarbonAPI interface {
	CarbonStatus(ctx context.Context, zone string, threshold float64) (*model.CarbonStatus, error)
	EstimateCarbon(ctx context.Context, req model.CarbonEstimateRequest) (*model.CarbonEstimate, error)
	CarbonReport(ctx context.Context, req model.CarbonReportRequest) (*model.CarbonReport, error)
	CarbonZones(ctx context.Context) ([]model.CarbonZone, error)
}

// JobSubmitter is the slice of the daemon client the carbon engine uses to
// place jobs.
type JobSubmitter interface {
	SubmitJob(ctx context.Context, def model.JobDefinition) (string, error)
}

// CacheRepository caches slow-moving carbon data. Implementations return
// (nil, nil) on a miss.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

const (
	cacheKeyZones      = "carbon:zones"
	cacheKeyStatusBase = "carbon:status:"

	// defaultTransferHours is assumed when a caller does not know how long the
	// transfer will take. The daemon requires a positive duration.
	defaultTransferHours = 2.0
)

// CarbonOptions configures a CarbonEngine.
type CarbonOptions struct {
	API       CarbonAPI
	Submitter JobSubmitter
	// Cache is optional; when nil every call goes to the daemon.
	Cache CacheRepository
	// DefaultZone is used when a caller passes an empty zone.
	DefaultZone string
	// MaxIntensity is the gCO2eq/kWh threshold above which a window is
	// considered dirty. Defaults to 200.
	MaxIntensity float64
	// MaxDelayHours bounds how long a carbon-aware job may be deferred.
	// Defaults to 4 hours.
	MaxDelayHours float64
	// MinSavingsPercent is the projected savings below which deferring is not
	// worth the wait. Defaults to 30.
	MinSavingsPercent float64
	// StatusTTL and ZonesTTL bound cache staleness.
	StatusTTL time.Duration
	ZonesTTL  time.Duration
	Logger    *slog.Logger
}

// CarbonEngine decides when exports should run based on grid carbon
// intensity, and attaches the scheduling hints the daemon's scheduler acts
// on.
type CarbonEngine struct {
	api               CarbonAPI
	submitter         JobSubmitter
	cache             CacheRepository
	defaultZone       string
	maxIntensity      float64
	maxDelayHours     float64
	minSavingsPercent float64
	statusTTL         time.Duration
	zonesTTL          time.Duration
	logger            *slog.Logger
}

// NewCarbonEngine builds a CarbonEngine. API and Submitter are required.
func NewCarbonEngine(opts CarbonOptions) (*CarbonEngine, error) {
	if opts.API == nil {
		return nil, apperrors.Validation("carbon engine requires a carbon API")
	}
	if opts.Submitter == nil {
		return nil, apperrors.Validation("carbon engine requires a job submitter")
	}
	engine := &CarbonEngine{
		api:               opts.API,
		submitter:         opts.Submitter,
		cache:             opts.Cache,
		defaultZone:       opts.DefaultZone,
		maxIntensity:      opts.MaxIntensity,
		maxDelayHours:     opts.MaxDelayHours,
		minSavingsPercent: opts.MinSavingsPercent,
		statusTTL:         opts.StatusTTL,
		zonesTTL:          opts.ZonesTTL,
		logger:            opts.Logger,
	}
	if engine.defaultZone == "" {
		engine.defaultZone = "US-CAL-CISO"
	}
	if engine.maxIntensity <= 0 {
		engine.maxIntensity = 200
	}
	if engine.maxDelayHours <= 0 {
		engine.maxDelayHours = 4
	}
	if engine.minSavingsPercent <= 0 {
		engine.minSavingsPercent = 30
	}
	if engine.statusTTL <= 0 {
		engine.statusTTL = 5 * time.Minute
	}
	if engine.zonesTTL <= 0 {
		engine.zonesTTL = 24 * time.Hour
	}
	if engine.logger == nil {
		engine.logger = slog.Default()
	}
	return engine, nil
}

// Status reports the grid intensity for a zone, consulting the cache first.
// Cache failures degrade to a daemon call, never to an error.
func (e *CarbonEngine) Status(ctx context.Context, zone string) (*model.CarbonStatus, error) {
	if zone == "" {
		zone = e.defaultZone
	}
	key := cacheKeyStatusBase + zone

	if cached, ok := e.cacheGet(ctx, key); ok {
		var status model.CarbonStatus
		if err := json.Unmarshal(cached, &status); err == nil {
			return &status, nil
		}
	}

	status, err := e.api.CarbonStatus(ctx, zone, e.maxIntensity)
	if err != nil {
		return nil, err
	}
	e.cachePut(ctx, key, status, e.statusTTL)
	return status, nil
}

// Zones lists the supported grid zones, consulting the cache first.
func (e *CarbonEngine) Zones(ctx context.Context) ([]model.CarbonZone, error) {
	if cached, ok := e.cacheGet(ctx, cacheKeyZones); ok {
		var zones []model.CarbonZone
		if err := json.Unmarshal(cached, &zones); err == nil {
			return zones, nil
		}
	}

	zones, err := e.api.CarbonZones(ctx)
	if err != nil {
		return nil, err
	}
	e.cachePut(ctx, cacheKeyZones, zones, e.zonesTTL)
	return zones, nil
}

// EstimateSavings compares emitting now against the best forecast window.
// The savings percentage is recomputed from the emission figures so a daemon
// reporting zero current emissions can never yield a division artifact.
func (e *CarbonEngine) EstimateSavings(ctx context.Context, req model.CarbonEstimateRequest) (*model.CarbonEstimate, error) {
	if req.Zone == "" {
		req.Zone = e.defaultZone
	}
	if req.DurationHours <= 0 {
		req.DurationHours = defaultTransferHours
	}
	est, err := e.api.EstimateCarbon(ctx, req)
	if err != nil {
		return nil, err
	}
	if est.CurrentEmissionsKg > 0 {
		est.SavingsKgCO2 = est.CurrentEmissionsKg - est.BestEmissionsKg
		est.SavingsPercent = est.SavingsKgCO2 / est.CurrentEmissionsKg * 100
	} else {
		est.SavingsKgCO2 = 0
		est.SavingsPercent = 0
	}
	return est, nil
}

// Report computes the emissions footprint of one finished export.
func (e *CarbonEngine) Report(ctx context.Context, req model.CarbonReportRequest) (*model.CarbonReport, error) {
	if req.Zone == "" {
		req.Zone = e.defaultZone
	}
	return e.api.CarbonReport(ctx, req)
}

// SubmitCarbonAware submits a job with the carbon scheduling hints attached.
// The definition's metadata is cloned before annotation, and the maximum
// delay crosses the wire as whole nanoseconds.
func (e *CarbonEngine) SubmitCarbonAware(ctx context.Context, def model.JobDefinition, zone string) (string, error) {
	if zone == "" {
		zone = e.defaultZone
	}
	annotated := def.Normalized()
	if annotated.Metadata == nil {
		annotated.Metadata = make(map[string]any, 4)
	}
	annotated.Metadata[model.MetaCarbonAware] = true
	annotated.Metadata[model.MetaCarbonZone] = zone
	annotated.Metadata[model.MetaCarbonMaxIntensity] = e.maxIntensity
	annotated.Metadata[model.MetaCarbonMaxDelay] = int64(e.maxDelayHours * float64(time.Hour))
	return e.submitter.SubmitJob(ctx, annotated)
}

// SubmissionPlan records how a policy decision played out.
type SubmissionPlan struct {
	JobID       string
	CarbonAware bool
	Zone        string
	// Reasoning is a human-readable account of the decision.
	Reasoning string
	Status    *model.CarbonStatus
}

// SubmitWithPolicy applies the carbon decision rule: submit immediately when
// the grid is already clean, defer via carbon hints when the projected
// savings clear the threshold, and otherwise submit immediately rather than
// wait for marginal gains. A carbon backend outage falls back to immediate
// submission so exports are never blocked on the advisory path.
func (e *CarbonEngine) SubmitWithPolicy(ctx context.Context, def model.JobDefinition, zone string, sizeGB float64) (*SubmissionPlan, error) {
	if zone == "" {
		zone = e.defaultZone
	}

	status, err := e.Status(ctx, zone)
	if err != nil {
		e.logger.Warn("carbon status unavailable, submitting immediately", "zone", zone, "error", err)
		jobID, submitErr := e.submitter.SubmitJob(ctx, def)
		if submitErr != nil {
			return nil, submitErr
		}
		return &SubmissionPlan{
			JobID:     jobID,
			Zone:      zone,
			Reasoning: "carbon data unavailable, submitted immediately",
		}, nil
	}

	if status.OptimalForBackup {
		jobID, submitErr := e.submitter.SubmitJob(ctx, def)
		if submitErr != nil {
			return nil, submitErr
		}
		return &SubmissionPlan{
			JobID:     jobID,
			Zone:      zone,
			Reasoning: "grid is already clean, submitted immediately",
			Status:    status,
		}, nil
	}

	est, err := e.EstimateSavings(ctx, model.CarbonEstimateRequest{DataSizeGB: sizeGB, Zone: zone})
	if err == nil && est.SavingsPercent > e.minSavingsPercent {
		jobID, submitErr := e.SubmitCarbonAware(ctx, def, zone)
		if submitErr != nil {
			return nil, submitErr
		}
		return &SubmissionPlan{
			JobID:       jobID,
			CarbonAware: true,
			Zone:        zone,
			Reasoning:   "deferred for cleaner grid window",
			Status:      status,
		}, nil
	}

	jobID, submitErr := e.submitter.SubmitJob(ctx, def)
	if submitErr != nil {
		return nil, submitErr
	}
	return &SubmissionPlan{
		JobID:     jobID,
		Zone:      zone,
		Reasoning: "projected savings below threshold, submitted immediately",
		Status:    status,
	}, nil
}

func (e *CarbonEngine) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if e.cache == nil {
		return nil, false
	}
	data, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Debug("carbon cache read failed", "key", key, "error", err)
		return nil, false
	}
	return data, data != nil
}

func (e *CarbonEngine) cachePut(ctx context.Context, key string, value any, ttl time.Duration) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, key, data, ttl); err != nil {
		e.logger.Debug("carbon cache write failed", "key", key, "error", err)
	}
}
