// Package api is the HTTP client for the remote todo store.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hy4ri/todo-tui/internal/todo"
)

const (
	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultRetries is how many times a failed sync is retried.
	DefaultRetries = 2

	defaultBackoff = 500 * time.Millisecond
)

// Client talks to the remote todo store.
type Client struct {
	httpClient *http.Client
	baseURL    string
	retries    int
	backoff    time.Duration
}

// NewClient creates a client for the store at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		retries: DefaultRetries,
		backoff: defaultBackoff,
	}
}

// SetHTTPClient allows overriding the default HTTP client (useful for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetRetries sets how many times a retryable failure is retried.
func (c *Client) SetRetries(n int) {
	if n < 0 {
		n = 0
	}
	c.retries = n
}

// SetTimeout sets the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// Name identifies the syncer in logs.
func (c *Client) Name() string {
	return "http " + c.baseURL
}

// Sync uploads the whole store. It implements remote.Syncer.
func (c *Client) Sync(ctx context.Context, store *todo.Store) error {
	return c.SyncTodos(ctx, store)
}

// SyncTodos replaces the remote copy with store. Server errors, rate limits
// and transport failures are retried with linear backoff.
func (c *Client) SyncTodos(ctx context.Context, store *todo.Store) error {
	body, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to marshal todos: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("sync todos: %w (last error: %v)", ctx.Err(), lastErr)
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}

		lastErr = c.do(ctx, http.MethodPut, "/sync", body)
		if lastErr == nil || !retryable(lastErr) {
			break
		}
	}

	if lastErr != nil {
		return fmt.Errorf("failed to sync todos: %w", lastErr)
	}
	return nil
}

// do performs an HTTP request with a JSON body.
func (c *Client) do(ctx context.Context, method, path string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	return nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr.IsServerError() || apiErr.IsRateLimited()
	}
	return true
}
