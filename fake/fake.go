// Package fake provides in-memory implementations of all coffrefort
// interfaces for testing.
//
// Use fake.NewClient() in unit tests to avoid network calls and external
// dependencies.
package fake

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
	"github.com/Azizsaidi66/CoffreFort/session"
)

// Option configures the fake client.
type Option func(*state)

type state struct {
	mu      sync.RWMutex
	docs    map[string]*coffrefort.Document
	users   map[string]*coffrefort.User
	windows map[string]*coffrefort.AccessWindow
	nextID  int
}

// WithDocument adds a fake document.
func WithDocument(id, label, summary string) Option {
	return func(s *state) {
		s.docs[id] = &coffrefort.Document{
			ID:      coffrefort.ID(id),
			Label:   label,
			Summary: coffrefort.Summary{Raw: summary},
		}
	}
}

// WithUser adds a fake account.
func WithUser(id, email, fullName string, role coffrefort.Role) Option {
	return func(s *state) {
		s.users[id] = &coffrefort.User{
			ID:       coffrefort.ID(id),
			Email:    email,
			FullName: fullName,
			Role:     role,
			Active:   true,
		}
	}
}

// WithWindow sets a fake access window for a user.
func WithWindow(userID, start, end string) Option {
	return func(s *state) {
		s.windows[userID] = &coffrefort.AccessWindow{
			UserID:    coffrefort.ID(userID),
			StartTime: start,
			EndTime:   end,
		}
	}
}

// NewClient creates a *coffrefort.Client with all services wired to
// in-memory fakes and an in-memory session store.
func NewClient(opts ...Option) *coffrefort.Client {
	s := &state{
		docs:    make(map[string]*coffrefort.Document),
		users:   make(map[string]*coffrefort.User),
		windows: make(map[string]*coffrefort.AccessWindow),
		nextID:  1,
	}
	for _, o := range opts {
		o(s)
	}

	c, _ := coffrefort.NewClient(
		coffrefort.Config{BaseURL: "fake://localhost"},
		coffrefort.WithSessionStore(session.NewMemoryStore()),
		coffrefort.WithDocumentService(&fakeDocuments{s: s}),
		coffrefort.WithUserAdminService(&fakeUsers{s: s}),
		coffrefort.WithAccessWindowService(&fakeWindows{s: s}),
	)
	return c
}

func (s *state) id() string {
	id := s.nextID
	s.nextID++
	return strconv.Itoa(id)
}

// --- DocumentService ---

type fakeDocuments struct{ s *state }

func (f *fakeDocuments) List(_ context.Context) ([]coffrefort.Document, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	docs := make([]coffrefort.Document, 0, len(f.s.docs))
	for _, d := range f.s.docs {
		docs = append(docs, *d)
	}
	return docs, nil
}

func (f *fakeDocuments) Get(_ context.Context, id string) (*coffrefort.Document, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	doc, ok := f.s.docs[id]
	if !ok {
		return nil, &coffrefort.APIError{StatusCode: 404, Detail: "Document not found"}
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDocuments) Upload(_ context.Context, up coffrefort.DocumentUpload) (*coffrefort.Document, error) {
	if up.File == nil || up.Filename == "" {
		return nil, nil
	}

	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	label := up.Title
	if label == "" {
		label = up.Filename
	}
	doc := &coffrefort.Document{
		ID:          coffrefort.ID(f.s.id()),
		Label:       label,
		Description: up.Description,
	}
	f.s.docs[doc.ID.String()] = doc
	copied := *doc
	return &copied, nil
}

func (f *fakeDocuments) Analyze(_ context.Context, id, text string) (*coffrefort.Analysis, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	doc, ok := f.s.docs[id]
	if !ok {
		return nil, &coffrefort.APIError{StatusCode: 404, Detail: "Document not found"}
	}

	analysis := &coffrefort.Analysis{
		Summary:  fmt.Sprintf("summary of %d bytes", len(text)),
		Keywords: "fake",
	}
	doc.Summary = coffrefort.Summary{Raw: analysis.Summary}
	doc.Keywords = analysis.Keywords
	return analysis, nil
}

func (f *fakeDocuments) SummaryText(ctx context.Context, id string) (string, error) {
	doc, err := f.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.Summary.Raw, nil
}

// --- UserAdminService ---

type fakeUsers struct{ s *state }

func (f *fakeUsers) Current(_ context.Context) (*coffrefort.User, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	for _, u := range f.s.users {
		copied := *u
		return &copied, nil
	}
	return nil, &coffrefort.APIError{StatusCode: 404, Detail: "User not found"}
}

func (f *fakeUsers) List(_ context.Context) ([]coffrefort.User, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	users := make([]coffrefort.User, 0, len(f.s.users))
	for _, u := range f.s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUsers) Create(_ context.Context, nu coffrefort.NewUser) (*coffrefort.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, u := range f.s.users {
		if u.Email == nu.Email {
			return nil, &coffrefort.APIError{StatusCode: 400, Detail: "Email already exists"}
		}
	}

	role := nu.Role
	if role == "" {
		role = coffrefort.RoleUser
	}
	user := &coffrefort.User{
		ID:       coffrefort.ID(f.s.id()),
		Email:    nu.Email,
		FullName: nu.FullName,
		Role:     role,
		Active:   true,
	}
	f.s.users[user.ID.String()] = user
	copied := *user
	return &copied, nil
}

func (f *fakeUsers) Delete(_ context.Context, userID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.users[userID]; !ok {
		return &coffrefort.APIError{StatusCode: 404, Detail: "User not found"}
	}
	delete(f.s.users, userID)
	return nil
}

// --- AccessWindowService ---

type fakeWindows struct{ s *state }

func (f *fakeWindows) Grant(_ context.Context, userID, startTime, endTime string) error {
	if userID == "" {
		return fmt.Errorf("fake: userID cannot be empty")
	}

	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	f.s.windows[userID] = &coffrefort.AccessWindow{
		UserID:    coffrefort.ID(userID),
		StartTime: startTime,
		EndTime:   endTime,
	}
	return nil
}

func (f *fakeWindows) Get(_ context.Context, userID string) (*coffrefort.AccessWindow, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	if w, ok := f.s.windows[userID]; ok {
		copied := *w
		return &copied, nil
	}
	// Users without an explicit window have the full-day default.
	return &coffrefort.AccessWindow{
		UserID:    coffrefort.ID(userID),
		StartTime: "00:00",
		EndTime:   "23:59",
	}, nil
}
