// File: internal/hydra/client.go
package hydra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultTimeout covers client CRUD calls against the admin API.
	DefaultTimeout = 30 * time.Second
	// healthTimeout keeps readiness probes short.
	healthTimeout = 5 * time.Second
)

// IntegrationError is returned for every failed call against the Hydra admin
// API: non-2xx responses carry the HTTP status and body, transport failures
// wrap the underlying error. No retries happen at this layer.
type IntegrationError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *IntegrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hydra: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("hydra: %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *IntegrationError) Unwrap() error { return e.Err }

// Client 封裝 Hydra admin API，只持有 base URL 與 timeout，無其他狀態。
type Client struct {
	baseURL    string
	httpClient *http.Client
	healthHTTP *http.Client
}

// New builds a shared client for the given admin base URL. timeout <= 0
// falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		healthHTTP: &http.Client{Timeout: healthTimeout},
	}
}

// do issues one JSON request. out may be nil for calls whose body is ignored.
// wantStatus lists the acceptable status codes; anything else becomes an
// IntegrationError.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any, wantStatus ...int) (int, error) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return 0, &IntegrationError{Op: op, Err: err}
		}
		body = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, &IntegrationError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &IntegrationError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	for _, s := range wantStatus {
		if resp.StatusCode == s {
			if out != nil && len(raw) > 0 {
				if err := json.Unmarshal(raw, out); err != nil {
					return resp.StatusCode, &IntegrationError{Op: op, Err: err}
				}
			}
			return resp.StatusCode, nil
		}
	}
	return resp.StatusCode, &IntegrationError{Op: op, StatusCode: resp.StatusCode, Body: string(raw)}
}

// CreateClient registers a new OAuth2 client.
func (c *Client) CreateClient(ctx context.Context, client *OAuthClient) (*OAuthClient, error) {
	var created OAuthClient
	if _, err := c.do(ctx, "create client", http.MethodPost, "/admin/clients", nil, client, &created, http.StatusCreated, http.StatusOK); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetClient fetches one client. A remote 404 is absence, not an error.
func (c *Client) GetClient(ctx context.Context, clientID string) (*OAuthClient, error) {
	var got OAuthClient
	status, err := c.do(ctx, "get client", http.MethodGet, "/admin/clients/"+url.PathEscape(clientID), nil, nil, &got, http.StatusOK, http.StatusNotFound)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	return &got, nil
}

// UpdateClient replaces the remote client object.
func (c *Client) UpdateClient(ctx context.Context, clientID string, client *OAuthClient) (*OAuthClient, error) {
	var updated OAuthClient
	if _, err := c.do(ctx, "update client", http.MethodPut, "/admin/clients/"+url.PathEscape(clientID), nil, client, &updated, http.StatusOK); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteClient removes the remote client. Idempotent: 404 counts as deleted.
func (c *Client) DeleteClient(ctx context.Context, clientID string) error {
	_, err := c.do(ctx, "delete client", http.MethodDelete, "/admin/clients/"+url.PathEscape(clientID), nil, nil, nil, http.StatusNoContent, http.StatusOK, http.StatusNotFound)
	return err
}

// ListClients pages through the remote registry.
func (c *Client) ListClients(ctx context.Context, limit, offset int) ([]OAuthClient, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	var clients []OAuthClient
	if _, err := c.do(ctx, "list clients", http.MethodGet, "/admin/clients", q, nil, &clients, http.StatusOK); err != nil {
		return nil, err
	}
	return clients, nil
}

// HealthCheck reports whether the admin API answers its readiness probe.
// Failures are swallowed into false; callers only need the boolean.
func (c *Client) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health/ready", nil)
	if err != nil {
		return false
	}
	resp, err := c.healthHTTP.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
