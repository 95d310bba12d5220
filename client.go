// Package coffrefort provides a Go client SDK for the CoffreFort
// document-vault service.
//
// The SDK defines interfaces for session storage, document management,
// user administration and access-window grants. Concrete implementations
// are injected via Option functions, keeping the core independent of any
// specific transport. The gateway/ package provides the HTTP transport,
// the access/ package the session/access-control orchestration, and
// fake/ in-memory implementations for tests.
//
// Example usage:
//
//	store := session.NewFileStore(session.DefaultPath())
//	gw := gateway.New(cfg.BaseURL, store)
//	client, err := coffrefort.NewClient(
//	    coffrefort.Config{BaseURL: cfg.BaseURL},
//	    coffrefort.WithSessionStore(store),
//	    coffrefort.WithDocumentService(documents.New(gw)),
//	)
package coffrefort

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Client is the main entry point for CoffreFort operations.
// Service implementations are injected via Option functions.
type Client struct {
	config  Config
	logger  *slog.Logger
	store   SessionStore
	docs    DocumentService
	users   UserAdminService
	windows AccessWindowService
	nav     Navigator
}

// Config holds connection and behavior configuration.
type Config struct {
	// BaseURL is the fixed base address of the CoffreFort service,
	// e.g. "http://localhost:8001/api".
	BaseURL string

	// Timeout bounds each HTTP request. Default: 10 seconds.
	Timeout time.Duration

	// CheckTTL controls how long check-access answers are cached
	// locally. Default: 30 seconds.
	CheckTTL time.Duration
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets a structured logger for the client.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithSessionStore sets the session persistence implementation.
func WithSessionStore(s SessionStore) Option {
	return func(c *Client) { c.store = s }
}

// WithDocumentService sets the document management implementation.
func WithDocumentService(d DocumentService) Option {
	return func(c *Client) { c.docs = d }
}

// WithUserAdminService sets the user administration implementation.
func WithUserAdminService(u UserAdminService) Option {
	return func(c *Client) { c.users = u }
}

// WithAccessWindowService sets the access-window implementation.
func WithAccessWindowService(w AccessWindowService) Option {
	return func(c *Client) { c.windows = w }
}

// WithNavigator sets the redirect sink for access decisions.
func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.nav = n }
}

// DefaultTimeout is the default per-request HTTP timeout.
const DefaultTimeout = 10 * time.Second

// DefaultCheckTTL is the default duration for caching check-access answers.
const DefaultCheckTTL = 30 * time.Second

// NewClient creates a new CoffreFort client with the given configuration
// and options.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("coffrefort: BaseURL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CheckTTL == 0 {
		cfg.CheckTTL = DefaultCheckTTL
	}

	c := &Client{config: cfg}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Config returns the client configuration.
func (c *Client) Config() Config { return c.config }

// SessionStore returns the session store, or nil if not configured.
func (c *Client) SessionStore() SessionStore { return c.store }

// Documents returns the document service, or nil if not configured.
func (c *Client) Documents() DocumentService { return c.docs }

// Users returns the user administration service, or nil if not configured.
func (c *Client) Users() UserAdminService { return c.users }

// AccessWindows returns the access-window service, or nil if not configured.
func (c *Client) AccessWindows() AccessWindowService { return c.windows }

// Navigator returns the redirect sink, or nil if not configured.
func (c *Client) Navigator() Navigator { return c.nav }

// Close releases all resources held by the client.
// Any injected service that implements io.Closer will be closed.
func (c *Client) Close() error {
	closers := []interface{}{
		c.store, c.docs, c.users, c.windows,
	}
	var firstErr error
	for _, svc := range closers {
		if cl, ok := svc.(io.Closer); ok && cl != nil {
			if err := cl.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
