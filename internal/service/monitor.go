// Package service holds the client-side orchestration logic: the job monitor
// state machine and the cost and carbon decision engines. Each engine depends
// on a narrow port interface rather than the concrete daemon client.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	apperrors "github.com/hypersdk/orchestrator/internal/errors"
	"github.com/hypersdk/orchestrator/internal/observability/metrics"
	"github.com/hypersdk/orchestrator/internal/observability/statsd"
)

// JobAPI is the slice of the daemon client the monitor needs.
type JobAPI interface {
	GetJob(ctx context.Context, jobID string) (*model.Job, error)
	QueryJobs(ctx context.Context, req model.QueryRequest) ([]model.Job, error)
	CancelJob(ctx context.Context, jobID string) (bool, error)
}

// TransitionKind classifies a monitor event.
type TransitionKind string

const (
	// TransitionObserved fires on the first snapshot of a job and on status
	// changes that are not progress updates or terminal transitions.
	TransitionObserved TransitionKind = "observed"
	// TransitionProgress fires when a running job reports a new percentage.
	TransitionProgress TransitionKind = "progress"
	// TransitionCompleted fires once when a job completes.
	TransitionCompleted TransitionKind = "completed"
	// TransitionFailed fires once when a job fails.
	TransitionFailed TransitionKind = "failed"
	// TransitionCancelled fires once when a job is cancelled.
	TransitionCancelled TransitionKind = "cancelled"
)

// Event is one observed change in a monitored job's lifecycle.
type Event struct {
	Kind TransitionKind
	Job  model.Job
}

// EventSink consumes monitor events.
type EventSink interface {
	HandleEvent(ctx context.Context, ev Event)
}

// EventFunc adapts a function to the EventSink interface.
type EventFunc func(ctx context.Context, ev Event)

// HandleEvent implements EventSink.
func (f EventFunc) HandleEvent(ctx context.Context, ev Event) {
	f(ctx, ev)
}

const (
	defaultPollInterval  = 2 * time.Second
	defaultCancelTimeout = 5 * time.Second
)

// MonitorOptions configures a Monitor.
type MonitorOptions struct {
	API JobAPI
	// Interval between polls. Defaults to 2s.
	Interval time.Duration
	// CancelTimeout bounds the best-effort cancel issued when the monitor's
	// context is cancelled mid-job. Defaults to 5s.
	CancelTimeout time.Duration
	Logger        *slog.Logger
	Metrics       statsd.Sink
	Sink          EventSink
}

// Monitor polls the daemon for job state and emits deduplicated lifecycle
// events. The daemon is the source of truth: the monitor keeps only the last
// observed (status, percent) pair per job and emits an event when it changes.
type Monitor struct {
	api           JobAPI
	interval      time.Duration
	cancelTimeout time.Duration
	logger        *slog.Logger
	metrics       statsd.Sink
	sink          EventSink
}

// NewMonitor builds a Monitor from the options. API is required.
func NewMonitor(opts MonitorOptions) (*Monitor, error) {
	if opts.API == nil {
		return nil, apperrors.Validation("monitor requires a job API")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	cancelTimeout := opts.CancelTimeout
	if cancelTimeout <= 0 {
		cancelTimeout = defaultCancelTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		api:           opts.API,
		interval:      interval,
		cancelTimeout: cancelTimeout,
		logger:        logger,
		metrics:       opts.Metrics,
		sink:          opts.Sink,
	}, nil
}

// jobCursor is the monitor's memory of one job between polls. New jobs start
// from the pending state at zero percent, so the first poll of an
// already-running job still produces an event.
type jobCursor struct {
	status  model.JobStatus
	percent float64
}

func newCursor() jobCursor {
	return jobCursor{status: model.StatusPending, percent: 0}
}

// observe folds one snapshot into the cursor and returns the event to emit,
// if any. Identical consecutive snapshots are suppressed.
func (c *jobCursor) observe(job *model.Job) (Event, bool) {
	status := job.Status
	percent := job.ProgressPercent()
	if status == c.status && percent == c.percent {
		return Event{}, false
	}
	c.status = status
	c.percent = percent

	kind := TransitionObserved
	switch {
	case status == model.StatusCompleted:
		kind = TransitionCompleted
	case status == model.StatusFailed:
		kind = TransitionFailed
	case status == model.StatusCancelled:
		kind = TransitionCancelled
	case status == model.StatusRunning:
		kind = TransitionProgress
	}
	return Event{Kind: kind, Job: *job}, true
}

// Run monitors one job until it reaches a terminal state, emitting events to
// the sink as the job progresses. Transient poll failures are logged and
// retried on the next tick. Cancelling the context issues one best-effort
// cancel to the daemon and returns the last observed snapshot with a nil
// error.
func (m *Monitor) Run(ctx context.Context, jobID string) (*model.Job, error) {
	if jobID == "" {
		return nil, apperrors.ValidationField("job_id", "job ID is required")
	}

	cursor := newCursor()
	var last *model.Job

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		job, err := m.api.GetJob(ctx, jobID)
		switch {
		case err == nil:
			last = job
			if ev, ok := cursor.observe(job); ok {
				m.emit(ctx, ev)
			}
			if job.Terminal() {
				return job, nil
			}
		case apperrors.IsNotFound(err) || apperrors.IsAuthentication(err):
			return last, err
		case ctx.Err() != nil:
			// Poll failed because the context went away, handled below.
		default:
			m.logger.Warn("job poll failed, will retry", "job_id", jobID, "error", err)
			metrics.EmitJobLifecycle(m.metrics, metrics.JobMetric{
				Transition: "poll",
				Result:     metrics.ResultError,
				Err:        err,
			})
		}

		select {
		case <-ctx.Done():
			m.cancelOnShutdown(jobID)
			return last, nil
		case <-ticker.C:
		}
	}
}

// cancelOnShutdown issues one cancel request on a fresh context so the
// daemon-side job does not keep running after the operator walked away.
func (m *Monitor) cancelOnShutdown(jobID string) {
	ctx, cancel := context.WithTimeout(context.Background(), m.cancelTimeout)
	defer cancel()

	ok, err := m.api.CancelJob(ctx, jobID)
	if err != nil {
		m.logger.Warn("shutdown cancel failed", "job_id", jobID, "error", err)
		return
	}
	if ok {
		m.logger.Info("cancelled job on shutdown", "job_id", jobID)
		m.count("monitor.shutdown_cancels", nil)
	}
}

func (m *Monitor) emit(ctx context.Context, ev Event) {
	m.count("monitor.events", map[string]string{"kind": string(ev.Kind)})
	if ev.Job.Terminal() {
		result := metrics.ResultSuccess
		if ev.Kind == TransitionFailed {
			result = metrics.ResultError
		}
		var duration time.Duration
		if ev.Job.Result != nil {
			duration = ev.Job.Result.Duration
		}
		metrics.EmitJobLifecycle(m.metrics, metrics.JobMetric{
			Transition: string(ev.Kind),
			Result:     result,
			Duration:   duration,
		})
	}
	if m.sink != nil {
		m.sink.HandleEvent(ctx, ev)
	}
}

func (m *Monitor) count(name string, tags map[string]string) {
	if m.metrics != nil {
		m.metrics.Count(name, 1, tags)
	}
}

// Render draws a snapshot of several jobs, e.g. a terminal table.
type Render func(jobs []model.Job)

// RunAll monitors a set of jobs on a shared tick until every one is terminal,
// invoking render with the running jobs after each poll. It returns the final
// snapshots keyed by job ID.
func (m *Monitor) RunAll(ctx context.Context, jobIDs []string, render Render) (map[string]model.Job, error) {
	if len(jobIDs) == 0 {
		return nil, apperrors.Validation("at least one job ID is required")
	}

	final := make(map[string]model.Job, len(jobIDs))
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		jobs, err := m.api.QueryJobs(ctx, model.QueryRequest{JobIDs: jobIDs})
		if err != nil {
			if ctx.Err() != nil {
				return final, nil
			}
			m.logger.Warn("job query failed, will retry", "error", err)
			m.count("monitor.poll_errors", nil)
		} else {
			pending := 0
			running := make([]model.Job, 0, len(jobs))
			for _, job := range jobs {
				final[job.ID()] = job
				if !job.Terminal() {
					pending++
				}
				if job.Status == model.StatusRunning {
					running = append(running, job)
				}
			}
			if render != nil {
				render(running)
			}
			if pending == 0 {
				return final, nil
			}
		}

		select {
		case <-ctx.Done():
			return final, nil
		case <-ticker.C:
		}
	}
}
