package session

import (
	"testing"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	sess := coffrefort.Session{Token: "tok", Email: "a@b.c", Role: coffrefort.RoleUser}
	if err := store.Set(sess); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got := store.Get(); got != sess {
		t.Errorf("expected %+v, got %+v", sess, got)
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	store.Set(coffrefort.Session{Token: "tok"})

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if store.Get().Authenticated() {
		t.Error("expected zero session after clear")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}
