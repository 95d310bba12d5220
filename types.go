package coffrefort

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Role is the access level attached to a session.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Session is the triple the client believes about the current identity.
// A zero Session means unauthenticated; the three fields are always
// written and removed together.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool { return s.Token != "" }

// ID is a server-assigned identifier. The service emits identifiers as
// JSON numbers or strings depending on the endpoint; both decode into the
// same canonical string form.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("coffrefort: invalid id %s", data)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Summary is the AI-generated summary of a document. The service returns
// it either as a plain string or as an object {"raw": ...}; both decode
// into the canonical Raw field.
type Summary struct {
	Raw string `json:"raw"`
}

// UnmarshalJSON accepts either a JSON string or an object with a "raw" field.
func (s *Summary) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Raw)
	}
	type plain Summary
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("coffrefort: invalid summary %s: %w", data, err)
	}
	*s = Summary(p)
	return nil
}

// MarshalJSON always emits the canonical object shape.
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	return json.Marshal(plain(s))
}

// Document is a read-only projection of a stored document.
type Document struct {
	ID          ID      `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Summary     Summary `json:"summary"`
	Keywords    string  `json:"keywords,omitempty"`
}

// DocumentUpload is the payload for uploading a new document.
type DocumentUpload struct {
	Title       string
	Description string
	Filename    string
	File        io.Reader
}

// Analysis is the result of an AI analysis request.
type Analysis struct {
	Summary  string `json:"summary"`
	Keywords string `json:"keywords"`
}

// User is an account visible to administrators.
type User struct {
	ID       ID     `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
	Active   bool   `json:"is_active"`
}

// NewUser is the payload for creating an account.
type NewUser struct {
	Email    string
	Password string
	FullName string
	Role     Role
}

// AccessWindow is a server-enforced time range during which a user's
// access is permitted. Times are opaque "HH:MM" strings owned by the
// service; the client passes them through unmodified.
type AccessWindow struct {
	UserID    ID     `json:"user_id,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AccessStatus is the server's answer to a check-access query.
type AccessStatus struct {
	Allowed     bool   `json:"allowed"`
	CurrentTime string `json:"current_time,omitempty"`
	WindowStart string `json:"window_start,omitempty"`
	WindowEnd   string `json:"window_end,omitempty"`
}

// Route identifies a page of the application. Routes are passed
// explicitly to the bootstrapper instead of being inferred from the
// environment.
type Route string

const (
	RouteLogin     Route = "login"
	RouteDashboard Route = "dashboard"
	RouteAdmin     Route = "admin"
)

// Protected reports whether the route requires an authenticated session.
func (r Route) Protected() bool { return r != RouteLogin }

// AdminOnly reports whether the route is designated admin-only.
func (r Route) AdminOnly() bool { return r == RouteAdmin }

func (r Route) valid() bool {
	switch r {
	case RouteLogin, RouteDashboard, RouteAdmin:
		return true
	}
	return false
}

// ParseRoute returns the Route named by s, or an error for unknown pages.
func ParseRoute(s string) (Route, error) {
	r := Route(s)
	if !r.valid() {
		return "", fmt.Errorf("coffrefort: unknown route %s", strconv.Quote(s))
	}
	return r, nil
}
