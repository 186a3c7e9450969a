// ABOUTME: HTTP client for the Orchestra platform API
// ABOUTME: Attaches the bearer credential and classifies failures for the UI

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrUnauthorized is returned when the backend rejects the credential.
// A rejected credential is never retried.
var ErrUnauthorized = errors.New("unauthorized")

// CredentialSource supplies the current bearer token, if any.
// The session manager is the only writer of the credential; the client
// only reads it through this interface.
type CredentialSource interface {
	Token() string
}

// StaticToken is a fixed-token CredentialSource for non-interactive use.
type StaticToken string

// Token implements CredentialSource.
func (t StaticToken) Token() string { return string(t) }

// Client is the API client for the Orchestra backend.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	creds          CredentialSource
	onUnauthorized func()
}

// New creates a new API client with the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetCredentialSource sets the source of the bearer token attached to
// every request.
func (c *Client) SetCredentialSource(src CredentialSource) {
	c.creds = src
}

// SetUnauthorizedHandler registers the callback invoked when the backend
// rejects the credential. It runs exactly once per rejected request,
// before the error is returned, so no data from a rejected response is
// ever applied to application state.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// errorResponse is the structured error body the backend returns.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do builds a request, executes it, and decodes the response into out.
// in may be nil for bodyless requests; out may be nil when the caller
// discards the response body.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts transport errors to user-facing messages.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse extracts a message from a non-2xx response.
// Fallback chain: structured message field, structured error field,
// raw body text, generic status line. The chain is user-visible.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	text, _ := io.ReadAll(resp.Body)

	var errResp errorResponse
	if err := json.Unmarshal(text, &errResp); err == nil {
		if errResp.Message != "" {
			return errors.New(errResp.Message)
		}
		if errResp.Error != "" {
			return errors.New(errResp.Error)
		}
	}
	if len(bytes.TrimSpace(text)) > 0 {
		return errors.New(string(bytes.TrimSpace(text)))
	}
	return fmt.Errorf("Request failed: %d", resp.StatusCode)
}

// Login exchanges credentials for a bearer token and principal.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := loginRequest{Email: email, Password: password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me verifies the current credential and returns the principal.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile patches the current principal's profile.
func (c *Client) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, "/auth/me", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Clusters lists clusters for the picker.
func (c *Client) Clusters(ctx context.Context) ([]Cluster, error) {
	var resp clusterList
	if err := c.do(ctx, http.MethodGet, "/clusters", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Clusters, nil
}

// Servers lists registered machines.
func (c *Client) Servers(ctx context.Context) ([]Server, error) {
	var resp serverList
	if err := c.do(ctx, http.MethodGet, "/servers", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Servers, nil
}

// RegisterServer registers a machine for provisioning.
func (c *Client) RegisterServer(ctx context.Context, req *RegisterServerRequest) (*RegisterServerResponse, error) {
	var resp RegisterServerResponse
	if err := c.do(ctx, http.MethodPost, "/servers/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Applications lists deployed applications, optionally scoped to a cluster.
func (c *Client) Applications(ctx context.Context, clusterID uint) ([]Application, error) {
	path := "/applications"
	if clusterID != 0 {
		path += "?cluster_id=" + url.QueryEscape(strconv.FormatUint(uint64(clusterID), 10))
	}
	var resp applicationList
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Applications, nil
}

// CreateApplication submits an assembled deployment payload.
func (c *Client) CreateApplication(ctx context.Context, req *CreateApplicationRequest) (*Application, error) {
	var app Application
	if err := c.do(ctx, http.MethodPost, "/applications", req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// RedeployApplication triggers a redeploy of an existing application.
func (c *Client) RedeployApplication(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/applications/%d/redeploy", id), nil, nil)
}

// Deployments lists deployment records.
func (c *Client) Deployments(ctx context.Context) ([]Deployment, error) {
	var deployments []Deployment
	if err := c.do(ctx, http.MethodGet, "/deployments", nil, &deployments); err != nil {
		return nil, err
	}
	return deployments, nil
}

// Frameworks fetches the framework catalog grouped by application type.
func (c *Client) Frameworks(ctx context.Context) ([]AppType, error) {
	var types []AppType
	if err := c.do(ctx, http.MethodGet, "/metadata/frameworks", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// MonitoringOverview fetches the platform-wide metric summary.
func (c *Client) MonitoringOverview(ctx context.Context) ([]Metric, error) {
	var resp monitoringOverview
	if err := c.do(ctx, http.MethodGet, "/monitoring/overview", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Metrics, nil
}

// MonitoringStatus fetches per-component health.
func (c *Client) MonitoringStatus(ctx context.Context) ([]Component, error) {
	var resp monitoringStatus
	if err := c.do(ctx, http.MethodGet, "/monitoring/status", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Components, nil
}

// Activities lists recent platform activity.
func (c *Client) Activities(ctx context.Context) ([]Activity, error) {
	var resp activityList
	if err := c.do(ctx, http.MethodGet, "/activities", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Activities, nil
}
