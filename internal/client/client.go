// Package client is the JSON-over-HTTP transport used by the live backend
// provider.
package client

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

	"github.com/google/uuid"

	"grimm.is/langportal/internal/logging"
	"grimm.is/langportal/internal/normalize"
)

// UnknownErrorMessage is reported when an error response has no readable
// body.
const UnknownErrorMessage = "An unknown error occurred"

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPClient sends JSON requests to the backend and returns decoded bodies.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *logging.Logger
	requestID  func() string
}

// ClientOption configures the HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client. No timeout is set by
// default; pass a client with one to bound requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logging.Logger) ClientOption {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequestID overrides the X-Request-ID generator.
func WithRequestID(fn func() string) ClientOption {
	return func(c *HTTPClient) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// NewHTTPClient creates a new HTTPClient for the given base URL.
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logging.Discard(),
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Do performs a request and returns the decoded JSON body as produced by
// encoding/json (maps, slices, float64...). body is marshalled as JSON when
// non-nil. Non-2xx responses are returned as *Error.
func (c *HTTPClient) Do(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	id := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", id)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", id, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response body: %w", method, path, err)
	}

	c.logger.Debug("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", id,
		"duration", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody)}
	}

	v, err := normalize.Unmarshal(respBody)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return v, nil
}

// errorMessage extracts a message from an error body: "message", then
// "error". An unreadable body yields UnknownErrorMessage; a readable one
// without either field yields "API Error: <status>".
func errorMessage(status int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return UnknownErrorMessage
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("API Error: %d", status)
}
