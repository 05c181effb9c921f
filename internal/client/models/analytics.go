package models

import "github.com/dmitrijs2005/docmind/internal/timex"

// Analytics event types accepted by POST /analytics/.
const (
	EventDocumentUpload = "document_upload"
	EventDocumentView   = "document_view"
	EventAIQuery        = "ai_query"
)

type DocumentEvent struct {
	DocumentID   string `json:"document_id"`
	DocumentName string `json:"document_name"`
	Timestamp    string `json:"timestamp"`
}

type QueryEvent struct {
	Model     string `json:"model"`
	Query     string `json:"query"`
	Timestamp string `json:"timestamp"`
	Success   bool   `json:"success"`
	Tokens    int    `json:"tokens"`
}

type TopDocument struct {
	Name       string `json:"name"`
	Views      int    `json:"views"`
	Percentage int    `json:"percentage"`
}

// Analytics is the per-user aggregate. Read-only on the client.
type Analytics struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	TotalDocuments    int             `json:"total_documents"`
	TotalQueries      int             `json:"total_queries"`
	SuccessfulQueries int             `json:"successful_queries"`
	ProductivityScore float64         `json:"productivity_score"`
	DocumentUploads   []DocumentEvent `json:"document_uploads"`
	DocumentViews     []DocumentEvent `json:"document_views"`
	QueryHistory      []QueryEvent    `json:"query_history"`
	TopDocuments      []TopDocument   `json:"top_documents"`
	CreatedAt         timex.Time      `json:"created_at"`
	UpdatedAt         timex.Time      `json:"updated_at"`
}

// AnalyticsSummary is returned by GET /analytics/summary.
type AnalyticsSummary struct {
	TotalDocuments    int     `json:"total_documents"`
	TotalQueries      int     `json:"total_queries"`
	SuccessfulQueries int     `json:"successful_queries"`
	QuerySuccessRate  float64 `json:"query_success_rate"`
	ProductivityScore float64 `json:"productivity_score"`
}

// AnalyticsEvent is the body of POST /analytics/.
type AnalyticsEvent struct {
	DocumentID *string        `json:"document_id,omitempty"`
	EventType  string         `json:"event_type"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
