// Package apiclient implements the HTTP client for the export daemon's REST
// API. All methods take a context, perform exactly one round trip, and
// translate daemon failures into the shared error taxonomy.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	apperrors "github.com/hypersdk/orchestrator/internal/errors"
)

const defaultTimeout = 30 * time.Second

// Config holds the settings for a daemon Client.
type Config struct {
	// BaseURL is the daemon's address, e.g. http://localhost:8080.
	BaseURL string
	// APIKey is sent as X-API-Key on every request when set.
	APIKey string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
	// Client overrides the HTTP client (used by tests).
	Client *http.Client
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Client talks to the export daemon. It is safe for concurrent use; the only
// mutable state is the session token, written by Login and Logout.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
	token   string
}

// New creates a Client from the config. BaseURL is required.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, apperrors.ValidationField("base_url", "daemon base URL is required")
	}
	httpClient := cfg.Client
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
		logger:  logger,
	}, nil
}

type errorBody struct {
	Error string `json:"error"`
}

// do performs one request against the daemon and decodes the response into
// out when out is non-nil. Status handling is uniform across endpoints:
// 404 → NotFound, 401 → Authentication, any other non-2xx → API with the
// status and payload attached. Transport failures become API errors with no
// status so they are never mistaken for a missing resource.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.APITransport(err, fmt.Sprintf("request to %s failed", path))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.APITransport(err, fmt.Sprintf("reading response from %s failed", path))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFoundf("resource not found: %s", path)
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.Authentication("daemon rejected credentials")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apperrors.API(resp.StatusCode, apiMessage(data, resp.StatusCode), data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		if apperrors.IsDecoding(err) {
			return err
		}
		return apperrors.Wrapf(err, apperrors.ErrCodeValidation, "malformed response from %s", path)
	}
	return nil
}

// apiMessage extracts the daemon's error message from a response payload,
// falling back to the raw body and finally the status text.
func apiMessage(data []byte, status int) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return msg
	}
	return http.StatusText(status)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token. The token is attached to
// subsequent requests as a bearer credential.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return apperrors.Validation("login response did not include a token")
	}
	c.token = resp.Token
	c.logger.Debug("logged in to export daemon", "user", username)
	return nil
}

// Logout invalidates the session token on the daemon and forgets it locally
// even when the remote call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
	c.token = ""
	return err
}

// SetToken installs a previously issued session token, e.g. one restored
// from the system keyring.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the active session token, empty when not logged in.
func (c *Client) Token() string {
	return c.token
}

// Health checks the daemon's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Status fetches the daemon's job counters.
func (c *Client) Status(ctx context.Context) (*model.DaemonStatus, error) {
	var status model.DaemonStatus
	if err := c.do(ctx, http.MethodGet, "/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
