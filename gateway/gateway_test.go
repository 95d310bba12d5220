package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
)

// stubStore implements coffrefort.SessionStore for testing
type stubStore struct {
	sess coffrefort.Session
}

func (s *stubStore) Set(sess coffrefort.Session) error { s.sess = sess; return nil }
func (s *stubStore) Get() coffrefort.Session           { return s.sess }
func (s *stubStore) Clear() error                      { s.sess = coffrefort.Session{}; return nil }

func TestGetJSON_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	store := &stubStore{sess: coffrefort.Session{Token: "tok-123"}}
	c := New(srv.URL, store)

	var out map[string]bool
	if err := c.GetJSON(context.Background(), "/documents", &out); err != nil {
		t.Fatalf("GetJSON returned error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected Bearer tok-123, got %q", gotAuth)
	}
	if !out["ok"] {
		t.Error("response not decoded")
	}
}

func TestGetJSON_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var hasHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, &stubStore{})
	if err := c.GetJSON(context.Background(), "/documents", nil); err != nil {
		t.Fatalf("GetJSON returned error: %v", err)
	}
	if hasHeader {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestGetJSON_SetsRequestID(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, &stubStore{})
	if err := c.GetJSON(context.Background(), "/documents", nil); err != nil {
		t.Fatalf("GetJSON returned error: %v", err)
	}
	if gotID == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestUnauthorized_FiresHookAndReturnsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := &stubStore{sess: coffrefort.Session{Token: "expired"}}
	c := New(srv.URL, store)

	fired := 0
	c.SetOnUnauthorized(func() { fired++ })

	err := c.GetJSON(context.Background(), "/documents", nil)
	if !errors.Is(err, coffrefort.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if fired != 1 {
		t.Errorf("expected hook fired once, got %d", fired)
	}
}

func TestUnauthorized_AnonymousCallDoesNotFireHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	}))
	defer srv.Close()

	store := &stubStore{sess: coffrefort.Session{Token: "tok"}}
	c := New(srv.URL, store)

	fired := 0
	c.SetOnUnauthorized(func() { fired++ })

	err := c.PostJSON(context.Background(), "/login", map[string]string{"email": "a@b.c"}, nil, Anonymous())
	if errors.Is(err, coffrefort.ErrUnauthorized) {
		t.Fatal("anonymous 401 must not map to ErrUnauthorized")
	}
	var apiErr *coffrefort.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Detail != "Incorrect email or password" {
		t.Errorf("expected server detail, got %q", apiErr.Detail)
	}
	if fired != 0 {
		t.Errorf("hook must not fire on anonymous calls, fired %d times", fired)
	}
}

func TestAnonymous_OmitsBearerToken(t *testing.T) {
	var hasHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := &stubStore{sess: coffrefort.Session{Token: "tok"}}
	c := New(srv.URL, store)

	if err := c.PostJSON(context.Background(), "/login", nil, nil, Anonymous()); err != nil {
		t.Fatalf("PostJSON returned error: %v", err)
	}
	if hasHeader {
		t.Error("anonymous call must not carry a token")
	}
}

func TestAPIError_StringDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Document not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, &stubStore{})
	err := c.GetJSON(context.Background(), "/documents/99", nil)

	var apiErr *coffrefort.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "Document not found" {
		t.Errorf("expected detail, got %q", apiErr.Detail)
	}
}

func TestAPIError_StructuredDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","email"],"msg":"field required"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, &stubStore{})
	err := c.GetJSON(context.Background(), "/users", nil)

	var apiErr *coffrefort.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if !strings.Contains(apiErr.Detail, "field required") {
		t.Errorf("structured detail lost: %q", apiErr.Detail)
	}
}

func TestAPIError_EmptyBodyFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, &stubStore{})
	err := c.GetJSON(context.Background(), "/documents", nil)

	var apiErr *coffrefort.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Detail != "request failed" {
		t.Errorf("expected fallback detail, got %q", apiErr.Detail)
	}
}

func TestConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := New(srv.URL, &stubStore{})
	err := c.GetJSON(context.Background(), "/documents", nil)

	if !errors.Is(err, coffrefort.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	var connErr *coffrefort.ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectivityError, got %v", err)
	}
}

func TestPostForm_EncodesMultipart(t *testing.T) {
	var gotTitle, gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not a multipart request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotTitle = r.FormValue("title")
		f, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(f)
		gotFile = string(data)
		w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL, &stubStore{sess: coffrefort.Session{Token: "tok"}})
	form := Form{
		Fields:    map[string]string{"title": "Invoice"},
		FileField: "file",
		FileName:  "invoice.pdf",
		File:      strings.NewReader("pdf-bytes"),
	}
	if err := c.PostForm(context.Background(), "/documents/upload", form, nil); err != nil {
		t.Fatalf("PostForm returned error: %v", err)
	}
	if gotTitle != "Invoice" {
		t.Errorf("expected title Invoice, got %q", gotTitle)
	}
	if gotFile != "pdf-bytes" {
		t.Errorf("expected file content, got %q", gotFile)
	}
}

func TestDelete_Success(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, &stubStore{sess: coffrefort.Session{Token: "tok"}})
	if err := c.Delete(context.Background(), "/users/7", nil); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/users/7" {
		t.Errorf("expected DELETE /users/7, got %s %s", gotMethod, gotPath)
	}
}

func TestEndpointLabel_StripsQuery(t *testing.T) {
	label := endpointLabel(http.MethodPost, "/access-windows?user_id=3&start_time=09%3A00")
	if label != "POST /access-windows" {
		t.Errorf("expected stripped label, got %q", label)
	}
}
