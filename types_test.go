package coffrefort

import (
	"encoding/json"
	"testing"
)

func TestID_UnmarshalNumber(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{"id":42,"label":"x"}`), &doc); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if doc.ID.String() != "42" {
		t.Errorf("expected 42, got %q", doc.ID.String())
	}
}

func TestID_UnmarshalString(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{"id":"abc-1","label":"x"}`), &doc); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if doc.ID.String() != "abc-1" {
		t.Errorf("expected abc-1, got %q", doc.ID.String())
	}
}

func TestSummary_UnmarshalString(t *testing.T) {
	var s Summary
	if err := json.Unmarshal([]byte(`"the text"`), &s); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if s.Raw != "the text" {
		t.Errorf("expected plain text, got %q", s.Raw)
	}
}

func TestSummary_UnmarshalObject(t *testing.T) {
	var s Summary
	if err := json.Unmarshal([]byte(`{"raw":"the text"}`), &s); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if s.Raw != "the text" {
		t.Errorf("expected raw field, got %q", s.Raw)
	}
}

func TestSummary_UnmarshalNull(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{"id":1,"summary":null}`), &doc); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if doc.Summary.Raw != "" {
		t.Errorf("expected empty summary, got %q", doc.Summary.Raw)
	}
}

func TestSession_Authenticated(t *testing.T) {
	if (Session{}).Authenticated() {
		t.Error("zero session must not be authenticated")
	}
	if !(Session{Token: "tok"}).Authenticated() {
		t.Error("session with token must be authenticated")
	}
}

func TestRoute_Protection(t *testing.T) {
	if RouteLogin.Protected() {
		t.Error("login route must be open")
	}
	if !RouteDashboard.Protected() || !RouteAdmin.Protected() {
		t.Error("dashboard and admin must be protected")
	}
	if RouteDashboard.AdminOnly() {
		t.Error("dashboard must not be admin-only")
	}
	if !RouteAdmin.AdminOnly() {
		t.Error("admin must be admin-only")
	}
}

func TestParseRoute(t *testing.T) {
	r, err := ParseRoute("dashboard")
	if err != nil {
		t.Fatalf("ParseRoute returned error: %v", err)
	}
	if r != RouteDashboard {
		t.Errorf("expected dashboard, got %q", r)
	}

	if _, err := ParseRoute("settings"); err == nil {
		t.Error("expected error for unknown route")
	}
}
