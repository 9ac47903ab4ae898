// Package supabase is a thin REST client for the managed platform this
// backend proxies to: GoTrue auth, PostgREST tables, and object storage.
// Every call normalizes non-2xx responses into an *APIError so callers
// branch on one error shape regardless of which platform surface failed.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is a handle to the platform scoped to a single API key. The
// application constructs two: one with the anonymous key for end-user
// auth flows, one with the service-role key for privileged calls.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the platform at baseURL authenticated with apiKey.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// BaseURL returns the platform base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a non-2xx platform response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: %s (status %d)", e.Message, e.Status)
}

// request describes one platform round-trip.
type request struct {
	method      string
	path        string // below baseURL, e.g. /auth/v1/signup
	query       url.Values
	body        []byte
	contentType string
	bearer      string            // overrides the API key as bearer when set
	headers     map[string]string // extra headers
}

// do performs the round-trip and returns the raw response body. Non-2xx
// statuses become an *APIError with the platform's message when one can
// be extracted from the body.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	bearer := r.bearer
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	return data, nil
}

// errorMessage extracts a human-readable message from a platform error body.
// The auth, table, and storage surfaces each use a different key.
func errorMessage(body []byte) string {
	var payload struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, m := range []string{payload.Msg, payload.Message, payload.ErrorDescription, payload.Error} {
			if m != "" {
				return m
			}
		}
	}
	if len(body) > 0 {
		return string(body)
	}
	return "request failed"
}
