package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	apperrors "github.com/hypersdk/orchestrator/internal/errors"
	"github.com/hypersdk/orchestrator/internal/mocks"
)

// scriptedJobAPI replays a fixed sequence of snapshots, one per poll.
type scriptedJobAPI struct {
	mu        sync.Mutex
	script    []pollStep
	pos       int
	cancelled []string
}

type pollStep struct {
	job *model.Job
	err error
}

func (s *scriptedJobAPI) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.script) {
		return nil, errors.New("polled past end of script")
	}
	step := s.script[s.pos]
	s.pos++
	return step.job, step.err
}

func (s *scriptedJobAPI) QueryJobs(ctx context.Context, req model.QueryRequest) ([]model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.script) {
		return nil, errors.New("polled past end of script")
	}
	step := s.script[s.pos]
	s.pos++
	if step.err != nil {
		return nil, step.err
	}
	return []model.Job{*step.job}, nil
}

func (s *scriptedJobAPI) CancelJob(ctx context.Context, jobID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = append(s.cancelled, jobID)
	return true, nil
}

func (s *scriptedJobAPI) polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func snapshot(status model.JobStatus, percent float64) *model.Job {
	job := &model.Job{
		Definition: model.JobDefinition{ID: "job-1", VMPath: "/DC0/vm/web-01", OutputDir: "/exports"},
		Status:     status,
	}
	if status == model.StatusRunning {
		job.Progress = &model.JobProgress{Phase: "transfer", PercentComplete: percent}
	}
	if status.Terminal() {
		job.Result = &model.JobResult{Success: status == model.StatusCompleted, Duration: time.Minute}
	}
	return job
}

func newTestMonitor(t *testing.T, api JobAPI, sink EventSink) *Monitor {
	t.Helper()
	m, err := NewMonitor(MonitorOptions{
		API:      api,
		Interval: time.Millisecond,
		Sink:     sink,
	})
	require.NoError(t, err)
	return m
}

func collectEvents(events *[]Event, mu *sync.Mutex) EventSink {
	return EventFunc(func(ctx context.Context, ev Event) {
		mu.Lock()
		defer mu.Unlock()
		*events = append(*events, ev)
	})
}

func TestMonitorDeduplicatesUnchangedSnapshots(t *testing.T) {
	t.Parallel()

	api := &scriptedJobAPI{script: []pollStep{
		{job: snapshot(model.StatusPending, 0)},
		{job: snapshot(model.StatusRunning, 10)},
		{job: snapshot(model.StatusRunning, 10)},
		{job: snapshot(model.StatusRunning, 55)},
		{job: snapshot(model.StatusCompleted, 100)},
	}}

	var mu sync.Mutex
	var events []Event
	monitor := newTestMonitor(t, api, collectEvents(&events, &mu))

	job, err := monitor.Run(context.Background(), "job-1")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, model.StatusCompleted, job.Status)

	// Five polls: the initial pending snapshot matches the baseline and the
	// repeated running/10 snapshot matches its predecessor, leaving three
	// observable changes.
	require.Len(t, events, 3)
	assert.Equal(t, TransitionProgress, events[0].Kind)
	assert.Equal(t, 10.0, events[0].Job.ProgressPercent())
	assert.Equal(t, TransitionProgress, events[1].Kind)
	assert.Equal(t, 55.0, events[1].Job.ProgressPercent())
	assert.Equal(t, TransitionCompleted, events[2].Kind)
}

func TestMonitorStopsPollingAfterTerminal(t *testing.T) {
	t.Parallel()

	api := &scriptedJobAPI{script: []pollStep{
		{job: snapshot(model.StatusRunning, 50)},
		{job: snapshot(model.StatusFailed, 50)},
	}}
	monitor := newTestMonitor(t, api, nil)

	job, err := monitor.Run(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, job.Status)
	assert.Equal(t, 2, api.polls())
}

func TestMonitorRetriesTransientPollErrors(t *testing.T) {
	t.Parallel()

	api := &scriptedJobAPI{script: []pollStep{
		{job: snapshot(model.StatusRunning, 20)},
		{err: apperrors.APITransport(errors.New("connection refused"), "request failed")},
		{job: snapshot(model.StatusCompleted, 100)},
	}}

	var mu sync.Mutex
	var events []Event
	monitor := newTestMonitor(t, api, collectEvents(&events, &mu))

	job, err := monitor.Run(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, job.Status)
	require.Len(t, events, 2)
}

func TestMonitorSurfacesNotFound(t *testing.T) {
	t.Parallel()

	api := &scriptedJobAPI{script: []pollStep{
		{err: apperrors.NotFound("job job-1 not found")},
	}}
	monitor := newTestMonitor(t, api, nil)

	_, err := monitor.Run(context.Background(), "job-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMonitorTerminalWithoutResultDoesNotPanic(t *testing.T) {
	t.Parallel()

	terminal := snapshot(model.StatusCancelled, 0)
	terminal.Result = nil
	api := &scriptedJobAPI{script: []pollStep{{job: terminal}}}

	var mu sync.Mutex
	var events []Event
	monitor := newTestMonitor(t, api, collectEvents(&events, &mu))

	job, err := monitor.Run(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, job.Status)
	require.Len(t, events, 1)
	assert.Equal(t, TransitionCancelled, events[0].Kind)
}

func TestMonitorCancelsJobOnContextCancellation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	api := mocks.NewMockJobAPI(ctrl)
	api.EXPECT().GetJob(gomock.Any(), "job-1").Return(snapshot(model.StatusRunning, 30), nil).MinTimes(1)
	api.EXPECT().CancelJob(gomock.Any(), "job-1").Return(true, nil).Times(1)

	monitor, err := NewMonitor(MonitorOptions{API: api, Interval: time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	job, runErr := monitor.Run(ctx, "job-1")
	require.NoError(t, runErr)
	require.NotNil(t, job)
	assert.Equal(t, model.StatusRunning, job.Status)
}

func TestMonitorRunAllExitsWhenAllTerminal(t *testing.T) {
	t.Parallel()

	api := &scriptedJobAPI{script: []pollStep{
		{job: snapshot(model.StatusRunning, 40)},
		{job: snapshot(model.StatusCompleted, 100)},
	}}
	monitor := newTestMonitor(t, api, nil)

	var renders int
	final, err := monitor.RunAll(context.Background(), []string{"job-1"}, func(jobs []model.Job) {
		renders++
	})
	require.NoError(t, err)
	require.Contains(t, final, "job-1")
	assert.Equal(t, model.StatusCompleted, final["job-1"].Status)
	assert.Equal(t, 2, renders)
}

// queryScriptAPI replays fixed multi-job snapshots, one set per poll.
type queryScriptAPI struct {
	mu     sync.Mutex
	script [][]model.Job
	pos    int
}

func (s *queryScriptAPI) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	return nil, errors.New("not used")
}

func (s *queryScriptAPI) QueryJobs(ctx context.Context, req model.QueryRequest) ([]model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.script) {
		return nil, errors.New("polled past end of script")
	}
	jobs := s.script[s.pos]
	s.pos++
	return jobs, nil
}

func (s *queryScriptAPI) CancelJob(ctx context.Context, jobID string) (bool, error) {
	return false, nil
}

func multiSnapshot(id string, status model.JobStatus, percent float64) model.Job {
	job := snapshot(status, percent)
	job.Definition.ID = id
	return *job
}

func TestMonitorRunAllRendersOnlyRunningJobs(t *testing.T) {
	t.Parallel()

	api := &queryScriptAPI{script: [][]model.Job{
		{
			multiSnapshot("job-1", model.StatusRunning, 20),
			multiSnapshot("job-2", model.StatusPending, 0),
			multiSnapshot("job-3", model.StatusCompleted, 100),
		},
		{
			multiSnapshot("job-1", model.StatusCompleted, 100),
			multiSnapshot("job-2", model.StatusCancelled, 0),
			multiSnapshot("job-3", model.StatusCompleted, 100),
		},
	}}
	monitor := newTestMonitor(t, api, nil)

	var rendered [][]string
	final, err := monitor.RunAll(context.Background(), []string{"job-1", "job-2", "job-3"}, func(jobs []model.Job) {
		ids := make([]string, 0, len(jobs))
		for _, job := range jobs {
			ids = append(ids, job.ID())
		}
		rendered = append(rendered, ids)
	})
	require.NoError(t, err)
	require.Len(t, final, 3)

	require.Len(t, rendered, 2)
	assert.Equal(t, []string{"job-1"}, rendered[0])
	assert.Empty(t, rendered[1])
}

func TestMonitorRequiresJobID(t *testing.T) {
	t.Parallel()

	monitor := newTestMonitor(t, &scriptedJobAPI{}, nil)
	_, err := monitor.Run(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
