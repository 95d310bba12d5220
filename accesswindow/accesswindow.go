// Package accesswindow provides time-bounded access grants. Window times
// are opaque strings owned by the service; the client passes them
// through without validating ordering or overlap.
package accesswindow

import (
	"context"
	"fmt"
	"net/url"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
	"github.com/Azizsaidi66/CoffreFort/audit"
	"github.com/Azizsaidi66/CoffreFort/gateway"
)

// Service implements coffrefort.AccessWindowService over the gateway.
type Service struct {
	gw       gateway.Caller
	auditLog *audit.Logger
}

// compile-time check
var _ coffrefort.AccessWindowService = (*Service)(nil)

// Option configures the Service.
type Option func(*Service)

// WithAudit sets the audit logger.
func WithAudit(a *audit.Logger) Option {
	return func(s *Service) { s.auditLog = a }
}

// New creates an access-window service backed by the given gateway.
func New(gw gateway.Caller, opts ...Option) *Service {
	s := &Service{gw: gw}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Grant sets the access window for a user, replacing any prior one.
func (s *Service) Grant(ctx context.Context, userID, startTime, endTime string) error {
	if userID == "" {
		return fmt.Errorf("coffrefort/accesswindow: userID cannot be empty")
	}

	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("start_time", startTime)
	q.Set("end_time", endTime)

	if err := s.gw.PostJSON(ctx, "/access-windows?"+q.Encode(), nil, nil); err != nil {
		s.auditLog.Log(audit.Event{
			Action:   audit.ActionWindowGrant,
			Resource: userID,
			Result:   "failure",
			Error:    err.Error(),
		})
		return fmt.Errorf("coffrefort/accesswindow: grant: %w", err)
	}

	s.auditLog.Log(audit.Event{
		Action:   audit.ActionWindowGrant,
		Resource: userID,
		Result:   "success",
		Details:  startTime + "-" + endTime,
	})
	return nil
}

// Get returns the current window for a user. The service answers with
// the full-day default for users without an explicit window.
func (s *Service) Get(ctx context.Context, userID string) (*coffrefort.AccessWindow, error) {
	if userID == "" {
		return nil, fmt.Errorf("coffrefort/accesswindow: userID cannot be empty")
	}
	var window coffrefort.AccessWindow
	if err := s.gw.GetJSON(ctx, "/access-windows/"+url.PathEscape(userID), &window); err != nil {
		return nil, fmt.Errorf("coffrefort/accesswindow: %w", err)
	}
	return &window, nil
}
