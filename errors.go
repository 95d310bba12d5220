package coffrefort

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnauthorized is returned when the service rejects the session
	// token. The access controller reacts by forcing re-authentication.
	ErrUnauthorized = errors.New("session invalid")

	// ErrUnreachable is returned when no response was received from the
	// service at all.
	ErrUnreachable = errors.New("service unreachable")
)

// APIError is a non-2xx response carrying the server-supplied detail
// message. The detail is surfaced to the user verbatim.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Detail is the human-readable message parsed from the response
	// body, or a generic fallback when the body had none.
	Detail string
}

// Error returns a human-readable description of the failure.
func (e *APIError) Error() string {
	return fmt.Sprintf("coffrefort: server returned %d: %s", e.StatusCode, e.Detail)
}

// ConnectivityError wraps a transport-level failure where no response
// was received.
type ConnectivityError struct {
	// Cause is the underlying transport error.
	Cause error
}

// Error returns a human-readable description of the connectivity failure.
func (e *ConnectivityError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("coffrefort: service unreachable: %v", e.Cause)
	}
	return "coffrefort: service unreachable"
}

// Unwrap returns the underlying transport error.
func (e *ConnectivityError) Unwrap() error { return e.Cause }

// Is supports errors.Is(err, ErrUnreachable).
func (e *ConnectivityError) Is(target error) bool { return target == ErrUnreachable }

// Reason reduces any client error to the single message shown to the
// user. Server detail messages surface verbatim; transport diagnostics
// stay in the logs.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	if errors.Is(err, ErrUnauthorized) {
		return "Session expired, please log in again"
	}
	if errors.Is(err, ErrUnreachable) {
		return "Cannot reach the CoffreFort service"
	}
	return err.Error()
}
