// Package gateway builds and issues HTTP requests to the CoffreFort
// service, attaching the session token and classifying every response.
//
// Classification follows a fixed taxonomy: 401 yields
// coffrefort.ErrUnauthorized and fires the registered unauthorized hook;
// any other non-2xx yields a *coffrefort.APIError carrying the
// server-supplied detail message; a transport failure with no response
// yields a *coffrefort.ConnectivityError. Exactly one request is issued
// per call; the gateway never retries and never refreshes tokens.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
	"github.com/Azizsaidi66/CoffreFort/audit"
	"github.com/Azizsaidi66/CoffreFort/metrics"
)

// Caller is the transport surface the feature services depend on.
// Implemented by *Client; tests substitute stubs.
type Caller interface {
	// GetJSON issues a GET request and decodes the JSON response into out.
	GetJSON(ctx context.Context, path string, out any, opts ...CallOption) error

	// PostJSON issues a POST request with a JSON body.
	PostJSON(ctx context.Context, path string, body, out any, opts ...CallOption) error

	// PostForm issues a POST request with a multipart form body.
	PostForm(ctx context.Context, path string, form Form, out any, opts ...CallOption) error

	// Delete issues a DELETE request.
	Delete(ctx context.Context, path string, out any, opts ...CallOption) error
}

// Form is a multipart form payload. FileField/FileName/File describe an
// optional file part; Fields are plain text parts.
type Form struct {
	Fields    map[string]string
	FileField string
	FileName  string
	File      io.Reader
}

// callConfig holds per-call behavior toggles.
type callConfig struct {
	anonymous bool
}

// CallOption adjusts a single gateway call.
type CallOption func(*callConfig)

// Anonymous issues the call without the session token and without
// treating a 401 as session death. Used only by the login entry point,
// where a 401 means rejected credentials, not an expired session.
func Anonymous() CallOption {
	return func(c *callConfig) { c.anonymous = true }
}

// Client issues requests against the fixed service base address.
type Client struct {
	baseURL    string
	store      coffrefort.SessionStore
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
	auditLog   *audit.Logger

	mu             sync.RWMutex
	onUnauthorized func()
}

// compile-time check
var _ Caller = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. Ignored when a custom HTTP
// client is also supplied.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithAudit sets the audit logger used for request correlation.
func WithAudit(a *audit.Logger) Option {
	return func(c *Client) { c.auditLog = a }
}

// New creates a gateway client for the given base URL. The session store
// supplies the bearer token for each request; the token is re-read per
// call so the gateway always reflects the latest session.
func New(baseURL string, store coffrefort.SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: &http.Client{Timeout: coffrefort.DefaultTimeout},
		logger:     slog.Default(),
		metrics:    metrics.New(false),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetOnUnauthorized registers the hook invoked on any authenticated call
// that returns 401. The access controller registers its forced-logout
// handler here, so every feature module reacts identically.
func (c *Client) SetOnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// GetJSON issues a GET request and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out, opts)
}

// PostJSON issues a POST request with a JSON body and decodes the response.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("coffrefort/gateway: marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, http.MethodPost, path, reader, contentType, out, opts)
}

// PostForm issues a POST request with a multipart form body.
func (c *Client) PostForm(ctx context.Context, path string, form Form, out any, opts ...CallOption) error {
	body, contentType, err := encodeMultipart(form)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, body, contentType, out, opts)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", out, opts)
}

// errorBody is the service's error envelope.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// do performs exactly one HTTP request and classifies the response.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any, opts []CallOption) error {
	var cfg callConfig
	for _, o := range opts {
		o(&cfg)
	}

	url := c.baseURL + path
	requestID := audit.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("coffrefort/gateway: create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", requestID)

	if !cfg.anonymous {
		if token := c.store.Get().Token; token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	endpoint := endpointLabel(method, path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordRequest(endpoint, "connectivity", time.Since(start).Seconds())
		c.logger.Error("request failed without response",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return &coffrefort.ConnectivityError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordRequest(endpoint, "connectivity", time.Since(start).Seconds())
		return &coffrefort.ConnectivityError{Cause: err}
	}

	elapsed := time.Since(start).Seconds()

	switch {
	case resp.StatusCode == http.StatusUnauthorized && !cfg.anonymous:
		c.metrics.RecordRequest(endpoint, "auth", elapsed)
		c.metrics.RecordAuthFailure("token_rejected")
		c.logger.Warn("session rejected by service",
			"method", method,
			"path", path,
			"request_id", requestID,
		)
		c.fireUnauthorized()
		return fmt.Errorf("%s %s: %w", method, path, coffrefort.ErrUnauthorized)

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		outcome := "client_error"
		if resp.StatusCode >= 500 {
			outcome = "server_error"
		}
		c.metrics.RecordRequest(endpoint, outcome, elapsed)
		detail := parseDetail(respBody)
		c.logger.Warn("service returned error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"detail", detail,
			"request_id", requestID,
		)
		return &coffrefort.APIError{StatusCode: resp.StatusCode, Detail: detail}
	}

	c.metrics.RecordRequest(endpoint, "ok", elapsed)
	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
	)

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("coffrefort/gateway: decode response: %w", err)
		}
	}
	return nil
}

// fireUnauthorized invokes the registered hook, if any.
func (c *Client) fireUnauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// parseDetail extracts the human-readable detail message from an error
// body, falling back to a generic message when the body has none.
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && s != "" {
			return s
		}
		// Structured validation details are surfaced as-is.
		return string(eb.Detail)
	}
	return "request failed"
}

// endpointLabel is the metrics label for a call: method plus path with
// any query string stripped.
func endpointLabel(method, path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return method + " " + path
}
