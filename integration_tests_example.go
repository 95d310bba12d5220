//go:build integration

package integration_test

import (
	"context"
	"os"
	"testing"
	"time"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
	"github.com/Azizsaidi66/CoffreFort/access"
	"github.com/Azizsaidi66/CoffreFort/documents"
	"github.com/Azizsaidi66/CoffreFort/gateway"
	"github.com/Azizsaidi66/CoffreFort/session"
)

// This file demonstrates integration test patterns for the CoffreFort
// client. To run these tests, use: go test -tags=integration ./...
//
// Prerequisites:
// - CoffreFort service running at COFFREFORT_API_URL
// - A test account with known credentials

// Example: full login flow against a live service
func TestLoginFlow(t *testing.T) {
	if os.Getenv("COFFREFORT_API_URL") == "" {
		t.Skip("Skipping integration test (COFFREFORT_API_URL not set)")
	}

	store := session.NewMemoryStore()
	gw := gateway.New(os.Getenv("COFFREFORT_API_URL"), store)
	ctrl := access.New(gw, store)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess, err := ctrl.Login(ctx, os.Getenv("COFFREFORT_TEST_EMAIL"), os.Getenv("COFFREFORT_TEST_PASSWORD"), coffrefort.RoleUser)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !sess.Authenticated() {
		t.Fatal("expected authenticated session")
	}
}

// Example: document list and summary retrieval
func TestDocumentListing(t *testing.T) {
	if os.Getenv("COFFREFORT_API_URL") == "" {
		t.Skip("Skipping integration test (COFFREFORT_API_URL not set)")
	}

	store := session.NewMemoryStore()
	gw := gateway.New(os.Getenv("COFFREFORT_API_URL"), store)
	svc := documents.New(gw)

	// In a real test, you would:
	// 1. Log in to obtain a session token
	// 2. Upload a document and read it back via List/Get
	// 3. Request an analysis and verify the stored summary updates

	_ = svc // Use svc in actual test
}

// Example: forced logout on server-side session invalidation
func TestForcedLogout(t *testing.T) {
	if os.Getenv("COFFREFORT_API_URL") == "" {
		t.Skip("Skipping integration test (COFFREFORT_API_URL not set)")
	}

	// In a real test, you would:
	// 1. Log in and store the token
	// 2. Invalidate the token server-side
	// 3. Issue any authenticated call
	// 4. Verify the session store is cleared and the error maps to
	//    coffrefort.ErrUnauthorized
}

// Example: access-window enforcement
func TestAccessWindowEnforcement(t *testing.T) {
	if os.Getenv("COFFREFORT_API_URL") == "" {
		t.Skip("Skipping integration test (COFFREFORT_API_URL not set)")
	}

	// In a real test, you would:
	// 1. As admin, grant a user a window excluding the current time
	// 2. Call /check-access as that user and verify allowed=false
	// 3. Widen the window and verify allowed=true
}
