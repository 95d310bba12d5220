// Package documents provides the document feature operations: listing,
// upload, AI analysis and summary retrieval.
package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
	"github.com/Azizsaidi66/CoffreFort/audit"
	"github.com/Azizsaidi66/CoffreFort/gateway"
)

// Service implements coffrefort.DocumentService over the gateway.
type Service struct {
	gw       gateway.Caller
	auditLog *audit.Logger
}

// compile-time check
var _ coffrefort.DocumentService = (*Service)(nil)

// Option configures the Service.
type Option func(*Service)

// WithAudit sets the audit logger.
func WithAudit(a *audit.Logger) Option {
	return func(s *Service) { s.auditLog = a }
}

// New creates a document service backed by the given gateway.
func New(gw gateway.Caller, opts ...Option) *Service {
	s := &Service{gw: gw}
	for _, o := range opts {
		o(s)
	}
	return s
}

// listPayload tolerates the payload shapes the service has shipped with:
// a bare array, {"results": [...]} and {"documents": [...]}.
type listPayload struct {
	docs []coffrefort.Document
}

func (p *listPayload) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &p.docs)
	}
	var wrapped struct {
		Results   []coffrefort.Document `json:"results"`
		Documents []coffrefort.Document `json:"documents"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Results != nil {
		p.docs = wrapped.Results
	} else {
		p.docs = wrapped.Documents
	}
	return nil
}

// List returns all visible documents. A service answer with zero items
// is an empty slice, never an error.
func (s *Service) List(ctx context.Context) ([]coffrefort.Document, error) {
	var payload listPayload
	if err := s.gw.GetJSON(ctx, "/documents", &payload); err != nil {
		return nil, fmt.Errorf("coffrefort/documents: %w", err)
	}
	if payload.docs == nil {
		return []coffrefort.Document{}, nil
	}
	return payload.docs, nil
}

// Get returns a single document by ID.
func (s *Service) Get(ctx context.Context, id string) (*coffrefort.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("coffrefort/documents: id cannot be empty")
	}
	var doc coffrefort.Document
	if err := s.gw.GetJSON(ctx, "/documents/"+url.PathEscape(id), &doc); err != nil {
		return nil, fmt.Errorf("coffrefort/documents: %w", err)
	}
	return &doc, nil
}

// Upload stores a new document. A missing file is a no-op: no request is
// issued and (nil, nil) is returned.
func (s *Service) Upload(ctx context.Context, up coffrefort.DocumentUpload) (*coffrefort.Document, error) {
	if up.File == nil || up.Filename == "" {
		return nil, nil
	}

	form := gateway.Form{
		Fields: map[string]string{
			"title":       up.Title,
			"description": up.Description,
		},
		FileField: "file",
		FileName:  up.Filename,
		File:      up.File,
	}
	if up.Title == "" {
		// Title mirrors the filename when the caller supplies none.
		form.Fields["title"] = up.Filename
	}

	var doc coffrefort.Document
	if err := s.gw.PostForm(ctx, "/documents/upload", form, &doc); err != nil {
		s.auditLog.Log(audit.Event{
			Action:   audit.ActionUpload,
			Resource: up.Filename,
			Result:   "failure",
			Error:    err.Error(),
		})
		return nil, fmt.Errorf("coffrefort/documents: upload: %w", err)
	}

	s.auditLog.Log(audit.Event{
		Action:   audit.ActionUpload,
		Resource: doc.ID.String(),
		Result:   "success",
		Details:  up.Filename,
	})
	return &doc, nil
}

// Analyze requests an AI summary of the given text for a document.
func (s *Service) Analyze(ctx context.Context, id, text string) (*coffrefort.Analysis, error) {
	if id == "" {
		return nil, fmt.Errorf("coffrefort/documents: id cannot be empty")
	}

	form := gateway.Form{
		Fields: map[string]string{
			"document_id": id,
			"text":        text,
		},
	}

	var analysis coffrefort.Analysis
	if err := s.gw.PostForm(ctx, "/documents/analyze", form, &analysis); err != nil {
		s.auditLog.Log(audit.Event{
			Action:   audit.ActionAnalyze,
			Resource: id,
			Result:   "failure",
			Error:    err.Error(),
		})
		return nil, fmt.Errorf("coffrefort/documents: analyze: %w", err)
	}

	s.auditLog.Log(audit.Event{
		Action:   audit.ActionAnalyze,
		Resource: id,
		Result:   "success",
	})
	return &analysis, nil
}

// SummaryText fetches a single document and returns its normalized
// summary text. Both the plain-string and {"raw": ...} shapes the
// service emits decode into the same field.
func (s *Service) SummaryText(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.Summary.Raw, nil
}
