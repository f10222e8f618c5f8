// Package model defines the wire-level data types exchanged with the export daemon.
package model

import (
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/hypersdk/orchestrator/internal/errors"
)

// ExportFormat represents the on-disk format of an exported VM.
type ExportFormat string

// JobStatus represents the current status of an export job.
type JobStatus string

const (
	// FormatRaw represents a raw disk image export.
	FormatRaw ExportFormat = "raw"
	// FormatQCOW2 represents a qcow2 disk image export.
	FormatQCOW2 ExportFormat = "qcow2"
	// FormatVMDK represents a vmdk disk image export.
	FormatVMDK ExportFormat = "vmdk"
	// FormatOVA represents a single-file OVA archive export.
	FormatOVA ExportFormat = "ova"
	// FormatOVF represents an OVF directory export. This is the default format.
	FormatOVF ExportFormat = "ovf"

	// StatusPending indicates a job is waiting to be processed.
	StatusPending JobStatus = "pending"
	// StatusRunning indicates a job is currently being processed.
	StatusRunning JobStatus = "running"
	// StatusCompleted indicates a job has finished successfully.
	StatusCompleted JobStatus = "completed"
	// StatusFailed indicates a job has failed.
	StatusFailed JobStatus = "failed"
	// StatusCancelled indicates a job was cancelled before completing.
	StatusCancelled JobStatus = "cancelled"
)

// Metadata keys carrying carbon-aware scheduling hints on a job definition.
// The daemon's scheduler reads these verbatim, so the key strings are a wire
// contract.
const (
	MetaCarbonAware        = "carbon_aware"
	MetaCarbonZone         = "carbon_zone"
	MetaCarbonMaxIntensity = "carbon_max_intensity"
	MetaCarbonMaxDelay     = "carbon_max_delay"
)

// Valid returns true if the ExportFormat is one of the supported formats.
func (f ExportFormat) Valid() bool {
	switch f {
	case FormatRaw, FormatQCOW2, FormatVMDK, FormatOVA, FormatOVF:
		return true
	default:
		return false
	}
}

// UnmarshalJSON validates the format against the supported enumeration.
// Unknown values fail decoding rather than coercing to a default.
func (f *ExportFormat) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return apperrors.Decoding("format", "export format must be a string")
	}
	ef := ExportFormat(strings.ToLower(v))
	if v != "" && !ef.Valid() {
		return apperrors.Decodingf("format", "unknown export format %q", v)
	}
	*f = ef
	return nil
}

// Valid returns true if the JobStatus is one of the defined states.
func (s JobStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal returns true for states from which a job never transitions again.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// UnmarshalJSON validates the status against the defined enumeration.
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return apperrors.Decoding("status", "job status must be a string")
	}
	js := JobStatus(strings.ToLower(v))
	if !js.Valid() {
		return apperrors.Decodingf("status", "unknown job status %q", v)
	}
	*s = js
	return nil
}

// VCenterConfig holds vCenter connection credentials for a job definition.
type VCenterConfig struct {
	Server   string `json:"server"`
	Username string `json:"username"`
	Password string `json:"password"`
	Insecure bool   `json:"insecure,omitempty"`
}

// JobDefinition is the immutable intent of an export job. VMPath and an output
// location are always required; Format defaults to OVF when unspecified.
type JobDefinition struct {
	ID         string         `json:"id,omitempty"`
	Name       string         `json:"name,omitempty"`
	VMPath     string         `json:"vm_path"`
	OutputDir  string         `json:"output_dir,omitempty"`
	OutputPath string         `json:"output_path,omitempty"`
	VCenter    *VCenterConfig `json:"vcenter,omitempty"`
	Datacenter string         `json:"datacenter,omitempty"`
	Format     ExportFormat   `json:"format,omitempty"`
	Compress   bool           `json:"compress,omitempty"`
	Thin       bool           `json:"thin,omitempty"`
	// Metadata carries free-form scheduling hints (string → scalar), including
	// the carbon-aware keys above.
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
}

// Validate checks the definition's required-field invariants.
func (d *JobDefinition) Validate() error {
	if strings.TrimSpace(d.VMPath) == "" {
		return apperrors.ValidationField("vm_path", "vm path is required")
	}
	if strings.TrimSpace(d.OutputDir) == "" && strings.TrimSpace(d.OutputPath) == "" {
		return apperrors.ValidationField("output_dir", "an output location is required")
	}
	if d.Format != "" && !d.Format.Valid() {
		return apperrors.ValidationField("format", "unknown export format")
	}
	return nil
}

// Normalized returns a copy with defaults applied. The receiver is not mutated:
// definitions are treated as immutable intent once handed to the client.
func (d JobDefinition) Normalized() JobDefinition {
	if d.Format == "" {
		d.Format = FormatOVF
	}
	if d.Metadata != nil {
		meta := make(map[string]any, len(d.Metadata))
		for k, v := range d.Metadata {
			meta[k] = v
		}
		d.Metadata = meta
	}
	return d
}

// JobProgress is a point-in-time snapshot of a running job. Percent is
// non-decreasing under well-behaved servers, but consumers must tolerate
// regressions. TotalBytes may be zero when the total is unknown.
type JobProgress struct {
	Phase              string  `json:"phase"`
	PercentComplete    float64 `json:"percent_complete"`
	CurrentFile        string  `json:"current_file,omitempty"`
	BytesTransferred   int64   `json:"bytes_transferred,omitempty"`
	TotalBytes         int64   `json:"total_bytes,omitempty"`
	EstimatedRemaining string  `json:"estimated_remaining,omitempty"`
}

// JobResult is produced only for completed or failed jobs. Duration crosses
// the wire as a nanosecond integer.
type JobResult struct {
	VMName    string        `json:"vm_name,omitempty"`
	OutputDir string        `json:"output_dir,omitempty"`
	Files     []string      `json:"files,omitempty"`
	TotalSize int64         `json:"total_size"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// Job aggregates a definition with the server-owned lifecycle state. The
// server is the source of truth: clients replace their local copy wholesale
// on each poll and never mutate a Job in place.
type Job struct {
	Definition  JobDefinition `json:"definition"`
	Status      JobStatus     `json:"status"`
	Progress    *JobProgress  `json:"progress,omitempty"`
	Result      *JobResult    `json:"result,omitempty"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   *time.Time    `json:"created_at,omitempty"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty"`
}

// ID returns the job's identifier from its definition.
func (j *Job) ID() string {
	return j.Definition.ID
}

// Terminal reports whether the job reached a terminal state.
func (j *Job) Terminal() bool {
	return j.Status.Terminal()
}

// ProgressPercent returns the progress percentage, or zero when no progress
// snapshot is attached.
func (j *Job) ProgressPercent() float64 {
	if j.Progress == nil {
		return 0
	}
	return j.Progress.PercentComplete
}

// SubmitResponse is the daemon's reply to POST /jobs/submit.
type SubmitResponse struct {
	Accepted int      `json:"accepted"`
	JobIDs   []string `json:"job_ids"`
	Errors   []string `json:"errors,omitempty"`
}

// QueryRequest filters jobs for POST /jobs/query.
type QueryRequest struct {
	JobIDs []string    `json:"job_ids,omitempty"`
	Status []JobStatus `json:"status,omitempty"`
	All    bool        `json:"all,omitempty"`
	Limit  int         `json:"limit,omitempty"`
}

// QueryResponse is the daemon's reply to POST /jobs/query.
type QueryResponse struct {
	Jobs []Job `json:"jobs"`
}

// CancelRequest identifies jobs for POST /jobs/cancel.
type CancelRequest struct {
	JobIDs []string `json:"job_ids"`
}

// CancelResponse is the daemon's reply to POST /jobs/cancel. Errors maps a
// job ID to the reason it could not be cancelled.
type CancelResponse struct {
	Cancelled []string          `json:"cancelled"`
	Failed    []string          `json:"failed"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// DaemonStatus summarizes the daemon's job counts, returned by GET /status.
type DaemonStatus struct {
	Version       string    `json:"version"`
	Uptime        string    `json:"uptime"`
	TotalJobs     int       `json:"total_jobs"`
	RunningJobs   int       `json:"running_jobs"`
	CompletedJobs int       `json:"completed_jobs"`
	FailedJobs    int       `json:"failed_jobs"`
	CancelledJobs int       `json:"cancelled_jobs"`
	Timestamp     time.Time `json:"timestamp"`
}
