package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	apperrors "github.com/hypersdk/orchestrator/internal/errors"
)

func validDefinition() model.JobDefinition {
	return model.JobDefinition{
		VMPath:    "/DC0/vm/web-01",
		OutputDir: "/exports",
	}
}

func TestSubmitJobNormalizesBeforeSending(t *testing.T) {
	t.Parallel()

	var got struct {
		Jobs []model.JobDefinition `json:"jobs"`
	}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/jobs/submit", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"accepted":1,"job_ids":["job-1"]}`))
	}))

	id, err := client.SubmitJob(context.Background(), validDefinition())
	require.NoError(t, err)
	assert.Equal(t, "job-1", id)

	require.Len(t, got.Jobs, 1)
	assert.Equal(t, model.FormatOVF, got.Jobs[0].Format)
}

func TestSubmitJobRejectsInvalidDefinitionLocally(t *testing.T) {
	t.Parallel()

	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.SubmitJob(context.Background(), model.JobDefinition{OutputDir: "/exports"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.False(t, called, "invalid definitions must not reach the daemon")
}

func TestSubmitJobsNothingAcceptedIsAnError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"accepted":0,"job_ids":[],"errors":["vm not found: /DC0/vm/web-01"]}`))
	}))

	_, err := client.SubmitJobs(context.Background(), []model.JobDefinition{validDefinition()})
	require.Error(t, err)
	assert.True(t, apperrors.IsAPI(err))
	assert.Contains(t, err.Error(), "vm not found")
}

func TestSubmitJobsEmptyBatch(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.NotFoundHandler())

	_, err := client.SubmitJobs(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetJobDecodesLifecycleState(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/jobs/job-1", r.URL.Path)
		w.Write([]byte(`{
			"definition": {"id":"job-1","vm_path":"/DC0/vm/web-01","output_dir":"/exports","format":"ovf"},
			"status": "running",
			"progress": {"phase":"transfer","percent_complete":55}
		}`))
	}))

	job, err := client.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID())
	assert.Equal(t, model.StatusRunning, job.Status)
	assert.Equal(t, 55.0, job.ProgressPercent())
	assert.False(t, job.Terminal())
}

func TestGetJobUnknownStatusFailsDecoding(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"definition":{"vm_path":"/a"},"status":"paused"}`))
	}))

	_, err := client.GetJob(context.Background(), "job-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsDecoding(err))
	assert.Equal(t, "status", apperrors.GetField(err))
}

func TestQueryJobsSendsFilters(t *testing.T) {
	t.Parallel()

	var got model.QueryRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/jobs/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"jobs":[{"definition":{"id":"job-1","vm_path":"/a"},"status":"running"}]}`))
	}))

	jobs, err := client.QueryJobs(context.Background(), model.QueryRequest{
		Status: []model.JobStatus{model.StatusRunning},
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, []model.JobStatus{model.StatusRunning}, got.Status)
	assert.Equal(t, 10, got.Limit)
}

func TestCancelJobReportsCancelled(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/jobs/cancel", r.URL.Path)
		w.Write([]byte(`{"cancelled":["job-1"],"failed":[]}`))
	}))

	ok, err := client.CancelJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCancelJobOnTerminalJobIsFalseNotError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cancelled":[],"failed":["job-1"],"errors":{"job-1":"job already completed"}}`))
	}))

	ok, err := client.CancelJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCancelJobAbsentFromBothListsIsFalse(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cancelled":[],"failed":[]}`))
	}))

	ok, err := client.CancelJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCancelJobsEmptyBatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, cancelErr := client.CancelJobs(context.Background(), nil)
	require.Error(t, cancelErr)
	assert.True(t, apperrors.IsValidation(cancelErr))
}
