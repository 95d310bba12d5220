package fake

import (
	"context"
	"errors"
	"strings"
	"testing"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
)

func TestNewClient_WiresAllServices(t *testing.T) {
	c := NewClient()

	if c.SessionStore() == nil {
		t.Error("session store not wired")
	}
	if c.Documents() == nil {
		t.Error("document service not wired")
	}
	if c.Users() == nil {
		t.Error("user service not wired")
	}
	if c.AccessWindows() == nil {
		t.Error("access-window service not wired")
	}
}

func TestDocuments_SeededAndUploaded(t *testing.T) {
	c := NewClient(WithDocument("d1", "Invoice", "Paid in full"))
	ctx := context.Background()

	docs, err := c.Documents().List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(docs) != 1 || docs[0].Label != "Invoice" {
		t.Errorf("unexpected documents: %+v", docs)
	}

	doc, err := c.Documents().Upload(ctx, coffrefort.DocumentUpload{
		Filename: "contract.pdf",
		File:     strings.NewReader("content"),
	})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if doc.Label != "contract.pdf" {
		t.Errorf("expected filename as label, got %q", doc.Label)
	}

	docs, _ = c.Documents().List(ctx)
	if len(docs) != 2 {
		t.Errorf("expected 2 documents after upload, got %d", len(docs))
	}
}

func TestDocuments_UploadWithoutFileIsNoOp(t *testing.T) {
	c := NewClient()

	doc, err := c.Documents().Upload(context.Background(), coffrefort.DocumentUpload{Title: "x"})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if doc != nil {
		t.Errorf("expected nil document, got %+v", doc)
	}
}

func TestDocuments_GetUnknownIsAPIError(t *testing.T) {
	c := NewClient()

	_, err := c.Documents().Get(context.Background(), "missing")
	var apiErr *coffrefort.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
}

func TestDocuments_AnalyzeUpdatesSummary(t *testing.T) {
	c := NewClient(WithDocument("d1", "Invoice", ""))
	ctx := context.Background()

	analysis, err := c.Documents().Analyze(ctx, "d1", "text to analyze")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if analysis.Summary == "" {
		t.Error("expected non-empty summary")
	}

	text, err := c.Documents().SummaryText(ctx, "d1")
	if err != nil {
		t.Fatalf("SummaryText returned error: %v", err)
	}
	if text != analysis.Summary {
		t.Errorf("summary not persisted: %q vs %q", text, analysis.Summary)
	}
}

func TestUsers_CreateAndDelete(t *testing.T) {
	c := NewClient(WithUser("u1", "admin@example.com", "Admin", coffrefort.RoleAdmin))
	ctx := context.Background()

	user, err := c.Users().Create(ctx, coffrefort.NewUser{
		Email:    "new@example.com",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.Role != coffrefort.RoleUser {
		t.Errorf("expected default user role, got %q", user.Role)
	}

	if _, err := c.Users().Create(ctx, coffrefort.NewUser{Email: "new@example.com", Password: "pw"}); err == nil {
		t.Error("expected error for duplicate email")
	}

	if err := c.Users().Delete(ctx, user.ID.String()); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := c.Users().Delete(ctx, user.ID.String()); err == nil {
		t.Error("expected error deleting unknown user")
	}
}

func TestWindows_GrantAndDefault(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	// Unknown users get the full-day default.
	w, err := c.AccessWindows().Get(ctx, "u9")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if w.StartTime != "00:00" || w.EndTime != "23:59" {
		t.Errorf("expected full-day default, got %+v", w)
	}

	if err := c.AccessWindows().Grant(ctx, "u9", "09:00", "17:00"); err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}
	w, _ = c.AccessWindows().Get(ctx, "u9")
	if w.StartTime != "09:00" || w.EndTime != "17:00" {
		t.Errorf("granted window not returned: %+v", w)
	}
}
