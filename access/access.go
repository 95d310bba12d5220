// Package access decides, purely from locally cached session state,
// whether a page or action is permitted, and reacts to authorization
// failures by forcing re-authentication.
//
// The controller is a three-state machine over the session store:
// Unauthenticated (no token) becomes Authenticated on login, and falls
// back to Unauthenticated on logout or on any 401 observed by the
// gateway. Page gating by role is advisory only; the service remains
// the authority for every data access.
package access

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
	"github.com/Azizsaidi66/CoffreFort/audit"
	"github.com/Azizsaidi66/CoffreFort/gateway"
	"github.com/Azizsaidi66/CoffreFort/metrics"
)

// Controller orchestrates session transitions and page gating.
type Controller struct {
	gw       *gateway.Client
	store    coffrefort.SessionStore
	nav      coffrefort.Navigator
	logger   *slog.Logger
	metrics  *metrics.Metrics
	auditLog *audit.Logger

	checkTTL time.Duration
	mu       sync.RWMutex
	cached   *coffrefort.AccessStatus
	cachedAt time.Time
	sf       singleflight.Group
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithNavigator sets the redirect sink for login/logout transitions.
func WithNavigator(n coffrefort.Navigator) Option {
	return func(c *Controller) { c.nav = n }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithAudit sets the audit logger.
func WithAudit(a *audit.Logger) Option {
	return func(c *Controller) { c.auditLog = a }
}

// WithCheckTTL sets how long check-access answers are cached locally.
func WithCheckTTL(d time.Duration) Option {
	return func(c *Controller) { c.checkTTL = d }
}

// New creates a Controller and registers its forced-logout handler on
// the gateway, so a 401 from any feature module clears the session.
func New(gw *gateway.Client, store coffrefort.SessionStore, opts ...Option) *Controller {
	c := &Controller{
		gw:       gw,
		store:    store,
		logger:   slog.Default(),
		metrics:  metrics.New(false),
		checkTTL: coffrefort.DefaultCheckTTL,
	}
	for _, o := range opts {
		o(c)
	}
	gw.SetOnUnauthorized(c.ForceLogout)
	return c
}

// loginRequest is the credentials payload for the login endpoint.
type loginRequest struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     coffrefort.Role `json:"role"`
}

// loginResponse is the token payload returned on success. Role and email
// are optional; older deployments return the bare token.
type loginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	Role        coffrefort.Role `json:"role"`
	Email       string          `json:"email"`
}

// Login authenticates against the service and, on success, persists the
// session triple atomically and navigates to the dashboard. A rejected
// credential surfaces the server's detail message; it never clears an
// existing session.
func (c *Controller) Login(ctx context.Context, email, password string, role coffrefort.Role) (coffrefort.Session, error) {
	var resp loginResponse
	err := c.gw.PostJSON(ctx, "/login", loginRequest{Email: email, Password: password, Role: role}, &resp, gateway.Anonymous())
	if err != nil {
		c.metrics.RecordAuthFailure("credentials")
		c.auditLog.Log(audit.Event{
			Action: audit.ActionLogin,
			Email:  email,
			Result: "failure",
			Error:  err.Error(),
		})
		return coffrefort.Session{}, fmt.Errorf("coffrefort/access: login: %w", err)
	}
	if resp.AccessToken == "" {
		return coffrefort.Session{}, fmt.Errorf("coffrefort/access: empty access_token in login response")
	}

	sess := coffrefort.Session{
		Token: resp.AccessToken,
		Email: resp.Email,
		Role:  resp.Role,
	}
	// Deployments that return only the token carry identity in the
	// token claims instead; fall back to those, then to the submitted
	// credentials.
	if sess.Email == "" || sess.Role == "" {
		claimEmail, claimRole := identityFromToken(resp.AccessToken)
		if sess.Email == "" {
			sess.Email = claimEmail
		}
		if sess.Role == "" {
			sess.Role = claimRole
		}
	}
	if sess.Email == "" {
		sess.Email = email
	}
	if sess.Role == "" {
		sess.Role = role
	}

	if err := c.store.Set(sess); err != nil {
		return coffrefort.Session{}, fmt.Errorf("coffrefort/access: persist session: %w", err)
	}

	c.invalidateCheck()
	c.metrics.SetSessionState(true)
	c.auditLog.Log(audit.Event{
		Action: audit.ActionLogin,
		Email:  sess.Email,
		Role:   string(sess.Role),
		Result: "success",
	})
	c.logger.Info("login succeeded", "email", sess.Email, "role", sess.Role)
	c.navigate(coffrefort.RouteDashboard)
	return sess, nil
}

// Logout clears the session and navigates to the login entry point.
func (c *Controller) Logout() error {
	sess := c.store.Get()
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("coffrefort/access: clear session: %w", err)
	}
	c.invalidateCheck()
	c.metrics.SetSessionState(false)
	c.auditLog.Log(audit.Event{
		Action: audit.ActionLogout,
		Email:  sess.Email,
		Role:   string(sess.Role),
		Result: "success",
	})
	c.navigate(coffrefort.RouteLogin)
	return nil
}

// ForceLogout reacts to an authorization failure: it clears the session
// and navigates to the login entry point, identically to an explicit
// logout. Invoked by the gateway for every 401, regardless of which
// feature triggered it.
func (c *Controller) ForceLogout() {
	sess := c.store.Get()
	if err := c.store.Clear(); err != nil {
		c.logger.Error("failed to clear session after 401", "error", err)
	}
	c.invalidateCheck()
	c.metrics.SetSessionState(false)
	c.metrics.RecordForcedLogout()
	c.auditLog.Log(audit.Event{
		Action: audit.ActionForcedLogout,
		Email:  sess.Email,
		Role:   string(sess.Role),
		Result: "success",
	})
	c.logger.Warn("session invalidated by service, forcing re-authentication", "email", sess.Email)
	c.navigate(coffrefort.RouteLogin)
}

// AllowRoute is the advisory page gate. It returns whether rendering may
// proceed and, when blocked, the route to redirect to plus a message for
// the user. No data fetch may happen before this check.
func (c *Controller) AllowRoute(route coffrefort.Route) (bool, coffrefort.Route, string) {
	sess := c.store.Get()
	if route.Protected() && !sess.Authenticated() {
		return false, coffrefort.RouteLogin, ""
	}
	if route.AdminOnly() && sess.Role != coffrefort.RoleAdmin {
		return false, coffrefort.RouteDashboard, "Admin access required"
	}
	return true, route, ""
}

// Session returns the current session triple.
func (c *Controller) Session() coffrefort.Session {
	return c.store.Get()
}

// Check asks the service whether access is currently allowed for the
// session's user. Answers are cached for the configured TTL; concurrent
// callers share a single in-flight request.
func (c *Controller) Check(ctx context.Context) (*coffrefort.AccessStatus, error) {
	c.mu.RLock()
	if c.cached != nil && time.Since(c.cachedAt) < c.checkTTL {
		defer c.mu.RUnlock()
		return c.cached, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("check-access", func() (interface{}, error) {
		var status coffrefort.AccessStatus
		if err := c.gw.GetJSON(ctx, "/check-access", &status); err != nil {
			return nil, err
		}
		return &status, nil
	})
	if err != nil {
		return nil, fmt.Errorf("coffrefort/access: check access: %w", err)
	}

	status := result.(*coffrefort.AccessStatus)
	c.mu.Lock()
	c.cached = status
	c.cachedAt = time.Now()
	c.mu.Unlock()
	return status, nil
}

// invalidateCheck drops the cached check-access answer after any session
// transition.
func (c *Controller) invalidateCheck() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

func (c *Controller) navigate(route coffrefort.Route) {
	if c.nav != nil {
		c.nav.Navigate(route)
	}
}

// identityFromToken extracts email and role claims from a JWT without
// verifying its signature. The client never validates tokens; the
// service does that on every request. The claims are only a display
// fallback.
func identityFromToken(token string) (string, coffrefort.Role) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", ""
	}
	email, _ := claims["email"].(string)
	if email == "" {
		// Some deployments put the email in the subject claim.
		if sub, ok := claims["sub"].(string); ok && strings.Contains(sub, "@") {
			email = sub
		}
	}
	role, _ := claims["role"].(string)
	return email, coffrefort.Role(role)
}
