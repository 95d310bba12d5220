// Package users provides user administration operations. Every write is
// admin-only on the server side; the client passes requests through and
// surfaces the server's decision.
package users

import (
	"context"
	"fmt"
	"net/url"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
	"github.com/Azizsaidi66/CoffreFort/audit"
	"github.com/Azizsaidi66/CoffreFort/gateway"
)

// Service implements coffrefort.UserAdminService over the gateway.
type Service struct {
	gw       gateway.Caller
	auditLog *audit.Logger
}

// compile-time check
var _ coffrefort.UserAdminService = (*Service)(nil)

// Option configures the Service.
type Option func(*Service)

// WithAudit sets the audit logger.
func WithAudit(a *audit.Logger) Option {
	return func(s *Service) { s.auditLog = a }
}

// New creates a user administration service backed by the given gateway.
func New(gw gateway.Caller, opts ...Option) *Service {
	s := &Service{gw: gw}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Current returns the account tied to the active session.
func (s *Service) Current(ctx context.Context) (*coffrefort.User, error) {
	var user coffrefort.User
	if err := s.gw.GetJSON(ctx, "/users/me", &user); err != nil {
		return nil, fmt.Errorf("coffrefort/users: %w", err)
	}
	return &user, nil
}

// List returns all accounts. Zero accounts is an empty slice.
func (s *Service) List(ctx context.Context) ([]coffrefort.User, error) {
	var users []coffrefort.User
	if err := s.gw.GetJSON(ctx, "/users", &users); err != nil {
		return nil, fmt.Errorf("coffrefort/users: %w", err)
	}
	if users == nil {
		return []coffrefort.User{}, nil
	}
	return users, nil
}

// Create registers a new account.
func (s *Service) Create(ctx context.Context, nu coffrefort.NewUser) (*coffrefort.User, error) {
	if nu.Email == "" {
		return nil, fmt.Errorf("coffrefort/users: email cannot be empty")
	}
	if nu.Password == "" {
		return nil, fmt.Errorf("coffrefort/users: password cannot be empty")
	}
	role := nu.Role
	if role == "" {
		role = coffrefort.RoleUser
	}

	form := gateway.Form{
		Fields: map[string]string{
			"email":     nu.Email,
			"password":  nu.Password,
			"full_name": nu.FullName,
			"role":      string(role),
		},
	}

	var user coffrefort.User
	if err := s.gw.PostForm(ctx, "/users", form, &user); err != nil {
		s.auditLog.Log(audit.Event{
			Action:   audit.ActionUserCreate,
			Resource: nu.Email,
			Result:   "failure",
			Error:    err.Error(),
		})
		return nil, fmt.Errorf("coffrefort/users: create: %w", err)
	}

	s.auditLog.Log(audit.Event{
		Action:   audit.ActionUserCreate,
		Resource: nu.Email,
		Result:   "success",
	})
	return &user, nil
}

// Delete removes an account by ID.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("coffrefort/users: userID cannot be empty")
	}
	if err := s.gw.Delete(ctx, "/users/"+url.PathEscape(userID), nil); err != nil {
		s.auditLog.Log(audit.Event{
			Action:   audit.ActionUserDelete,
			Resource: userID,
			Result:   "failure",
			Error:    err.Error(),
		})
		return fmt.Errorf("coffrefort/users: delete: %w", err)
	}

	s.auditLog.Log(audit.Event{
		Action:   audit.ActionUserDelete,
		Resource: userID,
		Result:   "success",
	})
	return nil
}
