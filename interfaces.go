package coffrefort

import "context"

// SessionStore persists the session triple in durable storage shared
// across processes. Every read re-queries the backing store so a logout
// performed elsewhere is observed on the next access.
// Implementations: session/ (file-backed, in-memory).
type SessionStore interface {
	// Set persists all three session fields, replacing any prior session.
	Set(sess Session) error

	// Get returns the current session, or the zero Session when
	// unauthenticated or unreadable. It never fails.
	Get() Session

	// Clear removes the session. Safe to call when already empty.
	Clear() error
}

// DocumentService lists, uploads and analyzes documents.
type DocumentService interface {
	// List returns all visible documents. Zero documents is an empty
	// slice, not an error.
	List(ctx context.Context) ([]Document, error)

	// Get returns a single document by ID.
	Get(ctx context.Context, id string) (*Document, error)

	// Upload stores a new document. When no file is attached it returns
	// (nil, nil) without issuing a request.
	Upload(ctx context.Context, up DocumentUpload) (*Document, error)

	// Analyze requests an AI summary of the given text for a document.
	Analyze(ctx context.Context, id, text string) (*Analysis, error)

	// SummaryText returns the normalized summary text of a document.
	SummaryText(ctx context.Context, id string) (string, error)
}

// UserAdminService manages accounts. All writes are admin-only on the
// server; the client performs no local permission checks here.
type UserAdminService interface {
	// Current returns the account tied to the active session.
	Current(ctx context.Context) (*User, error)

	// List returns all accounts.
	List(ctx context.Context) ([]User, error)

	// Create registers a new account.
	Create(ctx context.Context, nu NewUser) (*User, error)

	// Delete removes an account by ID.
	Delete(ctx context.Context, userID string) error
}

// AccessWindowService manages time-bounded access grants.
type AccessWindowService interface {
	// Grant sets the access window for a user, replacing any prior one.
	// Times pass through unvalidated; ordering and overlap are the
	// server's concern.
	Grant(ctx context.Context, userID, startTime, endTime string) error

	// Get returns the current window for a user. A user without an
	// explicit window has the full-day default.
	Get(ctx context.Context, userID string) (*AccessWindow, error)
}

// Navigator receives redirect targets decided by the access layer.
// Implementations: CLI (prints the target), web embed (HTTP redirect).
type Navigator interface {
	Navigate(route Route)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route Route)

// Navigate calls f.
func (f NavigatorFunc) Navigate(route Route) { f(route) }
