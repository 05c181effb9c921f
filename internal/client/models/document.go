package models

import (
	"encoding/json"

	"github.com/dmitrijs2005/docmind/internal/timex"
)

// DocumentStatus is the processing state reported by the backend.
type DocumentStatus string

const (
	DocumentCompleted  DocumentStatus = "completed"
	DocumentProcessing DocumentStatus = "processing"
	DocumentFailed     DocumentStatus = "failed"
)

// Document is an uploaded file. Size is a display string such as "2.4 MB".
type Document struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Size         string         `json:"size"`
	Status       DocumentStatus `json:"status"`
	UploadedDate timex.Time     `json:"uploaded_date"`
	IsActive     bool           `json:"is_active"`
}

// Search modes accepted by POST /documents/search.
const (
	SearchSemantic = "semantic"
	SearchKeyword  = "keyword"
	SearchHybrid   = "hybrid"
)

// SearchRequest is the body of POST /documents/search.
type SearchRequest struct {
	Query       string   `json:"query"`
	DocumentIDs []string `json:"document_ids,omitempty"`
	SearchMode  string   `json:"search_mode"`
	TopK        int      `json:"top_k"`
	ExpandQuery bool     `json:"expand_query"`
}

// SearchHit is one ranked chunk.
type SearchHit struct {
	Content        string         `json:"content"`
	Metadata       map[string]any `json:"metadata"`
	Distance       *float64       `json:"distance"`
	RelevanceScore float64        `json:"relevance_score"`
}

// DocumentID returns the doc_id recorded in the chunk metadata.
func (h SearchHit) DocumentID() string {
	id, _ := h.Metadata["doc_id"].(string)
	return id
}

// SearchResult is the data part of a search response.
type SearchResult struct {
	Results       []SearchHit `json:"results"`
	OriginalQuery string      `json:"original_query"`
	ExpandedQuery *string     `json:"expanded_query"`
	SearchMode    string      `json:"search_mode"`
	TotalResults  int         `json:"total_results"`
	Error         string      `json:"error,omitempty"`
}

// SearchResponse wraps a search result.
type SearchResponse struct {
	Success bool         `json:"success"`
	Data    SearchResult `json:"data"`
}

// Citation is one extracted reference; its shape depends on the style, so
// it is kept as a generic map.
type Citation map[string]any

// CitationsResponse is returned by POST /documents/{id}/citations.
type CitationsResponse struct {
	Success        bool       `json:"success"`
	Citations      []Citation `json:"citations"`
	TotalCitations int        `json:"total_citations"`
	DocumentID     string     `json:"document_id"`
}

// BibliographyResponse is returned by GET /documents/{id}/bibliography.
type BibliographyResponse struct {
	Success        bool            `json:"success"`
	Bibliography   json.RawMessage `json:"bibliography"`
	Format         string          `json:"format"`
	TotalCitations int             `json:"total_citations"`
}

// CompareResponse is returned by POST /documents/compare.
type CompareResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}
