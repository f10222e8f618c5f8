package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hypersdk/orchestrator/internal/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL, APIKey: "test-key"})
	require.NoError(t, err)
	return client
}

func TestNewRequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRequestSendsAPIKeyHeader(t *testing.T) {
	t.Parallel()

	var gotKey string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.Health(context.Background()))
	assert.Equal(t, "test-key", gotKey)
}

func TestNotFoundStatusMapsToNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such job"}`, http.StatusNotFound)
	}))

	_, err := client.GetJob(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, apperrors.IsAPI(err))
}

func TestUnauthorizedStatusMapsToAuthentication(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	err := client.Health(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthentication(err))
}

func TestServerErrorCarriesStatusAndMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"scheduler overloaded"}`))
	}))

	err := client.Health(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsAPI(err))
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.StatusCode(err))
	assert.Contains(t, err.Error(), "scheduler overloaded")
}

func TestNonJSONErrorBodyFallsBackToRawText(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream proxy choked", http.StatusBadGateway)
	}))

	err := client.Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusCode(err))
	assert.Contains(t, err.Error(), "upstream proxy choked")
}

func TestTransportFailureIsAPIWithoutStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client, err := New(Config{BaseURL: addr})
	require.NoError(t, err)

	healthErr := client.Health(context.Background())
	require.Error(t, healthErr)
	assert.True(t, apperrors.IsAPI(healthErr))
	assert.False(t, apperrors.IsNotFound(healthErr))
	assert.False(t, apperrors.IsAuthentication(healthErr))
	assert.Zero(t, apperrors.StatusCode(healthErr))
}

func TestLoginStoresTokenAndSendsBearer(t *testing.T) {
	t.Parallel()

	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			w.Write([]byte(`{"token":"session-abc"}`))
		case "/health":
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}
	}))

	require.NoError(t, client.Login(context.Background(), "operator", "hunter2"))
	assert.Equal(t, "session-abc", client.Token())

	require.NoError(t, client.Health(context.Background()))
	assert.Equal(t, "Bearer session-abc", gotAuth)
}

func TestLogoutForgetsTokenEvenOnRemoteFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	client.SetToken("session-abc")

	err := client.Logout(context.Background())
	require.Error(t, err)
	assert.Empty(t, client.Token())
}

func TestStatusDecodesCounters(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":"1.4.0","total_jobs":7,"running_jobs":2,"timestamp":"2026-08-30T10:00:00Z"}`))
	}))

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", status.Version)
	assert.Equal(t, 7, status.TotalJobs)
	assert.Equal(t, 2, status.RunningJobs)
}
