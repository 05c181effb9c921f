package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/filex"
)

// UploadLimits are checked before any upload request is sent.
type UploadLimits struct {
	MaxSize           int64
	AllowedExtensions []string
}

// Validate reports the first violated constraint for a file called name of
// size bytes.
func (l UploadLimits) Validate(name string, size int64) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if len(l.AllowedExtensions) > 0 && !slices.Contains(l.AllowedExtensions, ext) {
		shown := ext
		if shown == "" {
			shown = "(none)"
		}
		return client.NewValidationError("file",
			"type %q is not allowed; allowed types: %s", shown, strings.Join(l.AllowedExtensions, ", "))
	}
	if size <= 0 {
		return client.NewValidationError("file", "is empty")
	}
	if l.MaxSize > 0 && size > l.MaxSize {
		return client.NewValidationError("file",
			"size %s exceeds the maximum of %s", formatSize(size), formatSize(l.MaxSize))
	}
	return nil
}

func formatSize(n int64) string {
	const mb = 1 << 20
	if n >= mb {
		return strconv.FormatFloat(float64(n)/mb, 'f', 1, 64) + " MB"
	}
	return strconv.FormatFloat(float64(n)/1024, 'f', 1, 64) + " KB"
}

// DocumentService talks to /documents.
type DocumentService struct {
	api     client.API
	enabled bool
	limits  UploadLimits
}

func NewDocumentService(api client.API, enabled bool, limits UploadLimits) *DocumentService {
	return &DocumentService{api: api, enabled: enabled, limits: limits}
}

// Limits returns the configured upload limits.
func (s *DocumentService) Limits() UploadLimits { return s.limits }

func (s *DocumentService) List(ctx context.Context, page Page) ([]models.Document, error) {
	if err := gate(s.enabled, "documents"); err != nil {
		return nil, err
	}
	var docs []models.Document
	if err := s.api.Get(ctx, "/documents/", page.values(), &docs); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	if err := gate(s.enabled, "documents"); err != nil {
		return nil, err
	}
	if err := requireID("document_id", id); err != nil {
		return nil, err
	}
	var doc models.Document
	if err := s.api.Get(ctx, "/documents/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

// Upload validates f against the limits, then sends it as multipart with
// the given title (defaulting to the file name).
func (s *DocumentService) Upload(ctx context.Context, f *filex.File, title string) (*models.Document, error) {
	if err := gate(s.enabled, "documents"); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, client.NewValidationError("file", "is required")
	}
	if err := s.limits.Validate(f.Name, f.Size); err != nil {
		return nil, err
	}
	if f.Content == nil {
		return nil, client.NewValidationError("file", "content was not loaded")
	}
	if strings.TrimSpace(title) == "" {
		title = f.Name
	}

	var doc models.Document
	err := s.api.DoJSON(ctx, &client.Request{
		Method: http.MethodPost,
		Path:   "/documents/",
		File: &client.FilePart{
			FieldName: "file",
			FileName:  f.Name,
			Content:   f.Content,
			Fields:    map[string]string{"title": title},
		},
	}, &doc)
	if err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}
	return &doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if err := gate(s.enabled, "documents"); err != nil {
		return err
	}
	if err := requireID("document_id", id); err != nil {
		return err
	}
	if err := s.api.Delete(ctx, "/documents/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Search runs an advanced search. Missing mode and top-k get the backend
// defaults; out-of-range values are rejected locally.
func (s *DocumentService) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	if err := gate(s.enabled, "documents"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, client.NewValidationError("query", "is required")
	}
	if req.SearchMode == "" {
		req.SearchMode = models.SearchSemantic
	}
	if !slices.Contains([]string{models.SearchSemantic, models.SearchKeyword, models.SearchHybrid}, req.SearchMode) {
		return nil, client.NewValidationError("search_mode", "must be semantic, keyword or hybrid")
	}
	if req.TopK == 0 {
		req.TopK = 5
	}
	if req.TopK < 1 || req.TopK > 20 {
		return nil, client.NewValidationError("top_k", "must be between 1 and 20")
	}

	var resp models.SearchResponse
	if err := s.api.Post(ctx, "/documents/search", req, &resp); err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	return &resp.Data, nil
}

// Citations extracts references from a document. formatHint may be empty.
func (s *DocumentService) Citations(ctx context.Context, id, formatHint string) (*models.CitationsResponse, error) {
	if err := gate(s.enabled, "documents"); err != nil {
		return nil, err
	}
	if err := requireID("document_id", id); err != nil {
		return nil, err
	}
	body := map[string]any{"format_hint": nil}
	if formatHint != "" {
		body["format_hint"] = formatHint
	}
	var resp models.CitationsResponse
	if err := s.api.Post(ctx, "/documents/"+url.PathEscape(id)+"/citations", body, &resp); err != nil {
		return nil, fmt.Errorf("extract citations: %w", err)
	}
	return &resp, nil
}

// Bibliography formats a document's citations (apa, mla, ieee) sorted by
// author, year or title.
func (s *DocumentService) Bibliography(ctx context.Context, id, format, sortBy string) (*models.BibliographyResponse, error) {
	if err := gate(s.enabled, "documents"); err != nil {
		return nil, err
	}
	if err := requireID("document_id", id); err != nil {
		return nil, err
	}
	q := url.Values{}
	if format != "" {
		q.Set("format_type", format)
	}
	if sortBy != "" {
		q.Set("sort_by", sortBy)
	}
	var resp models.BibliographyResponse
	if err := s.api.Get(ctx, "/documents/"+url.PathEscape(id)+"/bibliography", q, &resp); err != nil {
		return nil, fmt.Errorf("bibliography: %w", err)
	}
	return &resp, nil
}

// Compare compares 2 to 10 documents.
func (s *DocumentService) Compare(ctx context.Context, ids, aspects []string, includeContradictions bool) (*models.CompareResponse, error) {
	if err := gate(s.enabled, "documents"); err != nil {
		return nil, err
	}
	if len(ids) < 2 || len(ids) > 10 {
		return nil, client.NewValidationError("document_ids", "between 2 and 10 documents are required")
	}
	q := url.Values{"document_ids": ids, "include_contradictions": {strconv.FormatBool(includeContradictions)}}
	if len(aspects) > 0 {
		q["comparison_aspects"] = aspects
	}
	var resp models.CompareResponse
	err := s.api.DoJSON(ctx, &client.Request{Method: http.MethodPost, Path: "/documents/compare", Query: q}, &resp)
	if err != nil {
		return nil, fmt.Errorf("compare documents: %w", err)
	}
	return &resp, nil
}
