package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const apiVersion = "7.0"

// APIError represents a non-2xx HTTP response from the work tracking API.
type APIError struct {
	StatusCode int
	Body       string // first 512 bytes
	retryAfter string // Retry-After header value for 429s
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Client fetches work items from an Azure DevOps organization using a
// personal access token.
type Client struct {
	orgURL     string
	token      string
	httpClient *http.Client
}

// ClientOption configures Client behavior.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a Client for the given organization URL, e.g.
// "https://dev.azure.com/myorg/myproject".
func NewClient(orgURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		orgURL: orgURL,
		token:  token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

const maxRetries = 3

// FetchWorkItem retrieves one work item and returns the raw response JSON,
// ready for the workitem handler. Retries on 429 (honoring Retry-After) and
// 5xx with exponential backoff: 1s, 2s, 4s. Max 3 retries.
func (c *Client) FetchWorkItem(ctx context.Context, id int) (string, error) {
	url := fmt.Sprintf("%s/_apis/wit/workitems/%d?api-version=%s", c.orgURL, id, apiVersion)

	var lastErr *APIError
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoffDelay(attempt, lastErr)
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return "", ctx.Err()
			case <-t.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		req.SetBasicAuth("", c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", err
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return "", err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return string(body), nil
		}

		bodyStr := string(body)
		if len(bodyStr) > 512 {
			bodyStr = bodyStr[:512]
		}

		apiErr := &APIError{StatusCode: resp.StatusCode, Body: bodyStr}

		if resp.StatusCode == http.StatusTooManyRequests {
			apiErr.retryAfter = resp.Header.Get("Retry-After")
			lastErr = apiErr
			continue
		}
		if resp.StatusCode >= 500 {
			lastErr = apiErr
			continue
		}

		return "", apiErr
	}

	return "", lastErr
}

// backoffDelay returns the wait duration before a retry attempt.
func backoffDelay(attempt int, lastErr *APIError) time.Duration {
	if lastErr != nil && lastErr.StatusCode == http.StatusTooManyRequests && lastErr.retryAfter != "" {
		if secs, err := strconv.Atoi(lastErr.retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(1<<(attempt-1)) * time.Second
}
