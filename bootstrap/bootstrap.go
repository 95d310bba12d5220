// Package bootstrap activates a page: it reconciles the displayed
// identity with the stored session, applies the access gate for the
// route, and fetches the listing data the page needs. Rendering stays
// with the caller; Activate returns a View for the rendering layer.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
	"github.com/Azizsaidi66/CoffreFort/access"
)

// View is the data a page renders from. When Redirect is set the page
// must not render; no data was fetched.
type View struct {
	Route coffrefort.Route

	// Identity shown in the page header.
	Email string
	Role  coffrefort.Role

	// Per-route listings. Nil when the route does not show them.
	Documents []coffrefort.Document
	Users     []coffrefort.User

	// Redirect, when non-empty, is where the caller must navigate
	// instead of rendering. Notice carries the message to surface.
	Redirect coffrefort.Route
	Notice   string
}

// Bootstrapper wires the access gate and feature services for page
// activation. The route is always passed explicitly; nothing is
// inferred from the environment.
type Bootstrapper struct {
	ctrl   *access.Controller
	docs   coffrefort.DocumentService
	users  coffrefort.UserAdminService
	logger *slog.Logger
}

// Option configures the Bootstrapper.
type Option func(*Bootstrapper)

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bootstrapper) { b.logger = l }
}

// New creates a Bootstrapper.
func New(ctrl *access.Controller, docs coffrefort.DocumentService, users coffrefort.UserAdminService, opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		ctrl:   ctrl,
		docs:   docs,
		users:  users,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Activate prepares the view for a page. The access gate runs before
// any data fetch: a protected route without a token redirects to login,
// and an admin route with a non-admin session redirects to the
// dashboard, in both cases without touching the service.
func (b *Bootstrapper) Activate(ctx context.Context, route coffrefort.Route) (*View, error) {
	view := &View{Route: route}

	allowed, target, notice := b.ctrl.AllowRoute(route)
	if !allowed {
		view.Redirect = target
		view.Notice = notice
		b.logger.Info("route blocked", "route", route, "redirect", target)
		return view, nil
	}

	sess := b.ctrl.Session()
	view.Email = sess.Email
	view.Role = sess.Role

	if route == coffrefort.RouteLogin {
		return view, nil
	}

	// Downstream fetches can see which page and session they serve.
	ctx = coffrefort.WithRoute(coffrefort.WithSession(ctx, sess), route)

	// The session file may predate email persistence; reconcile the
	// displayed identity from the service once.
	if view.Email == "" && b.users != nil {
		if me, err := b.users.Current(ctx); err == nil {
			view.Email = me.Email
			view.Role = me.Role
		}
	}

	switch route {
	case coffrefort.RouteDashboard:
		docs, err := b.docs.List(ctx)
		if err != nil {
			return view, fmt.Errorf("coffrefort/bootstrap: %w", err)
		}
		view.Documents = docs

	case coffrefort.RouteAdmin:
		users, err := b.users.List(ctx)
		if err != nil {
			return view, fmt.Errorf("coffrefort/bootstrap: %w", err)
		}
		view.Users = users

		docs, err := b.docs.List(ctx)
		if err != nil {
			return view, fmt.Errorf("coffrefort/bootstrap: %w", err)
		}
		view.Documents = docs
	}

	return view, nil
}
