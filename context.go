package coffrefort

import "context"

type ctxKey string

const (
	ctxKeySession ctxKey = "coffrefort_session"
	ctxKeyRoute   ctxKey = "coffrefort_route"
)

// WithSession stores the session in the context.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, sess)
}

// SessionFromContext extracts the session from the context.
func SessionFromContext(ctx context.Context) Session {
	v, _ := ctx.Value(ctxKeySession).(Session)
	return v
}

// WithRoute stores the active route in the context.
func WithRoute(ctx context.Context, route Route) context.Context {
	return context.WithValue(ctx, ctxKeyRoute, route)
}

// RouteFromContext extracts the active route from the context.
func RouteFromContext(ctx context.Context) Route {
	v, _ := ctx.Value(ctxKeyRoute).(Route)
	return v
}
