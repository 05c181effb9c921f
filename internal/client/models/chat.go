package models

import (
	"strings"

	"github.com/dmitrijs2005/docmind/internal/timex"
)

// Sender of a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// TempIDPrefix marks ids of messages inserted before the server answered.
const TempIDPrefix = "temp-"

// ChatMessage is one message of the conversation.
type ChatMessage struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id,omitempty"`
	Sender    Sender     `json:"sender"`
	Content   string     `json:"content"`
	CreatedAt timex.Time `json:"created_at"`
}

// Optimistic reports whether m is a local placeholder.
func (m ChatMessage) Optimistic() bool {
	return strings.HasPrefix(m.ID, TempIDPrefix)
}

// ChatRequest is the body of POST /chat/.
type ChatRequest struct {
	Message     string   `json:"message"`
	DocumentIDs []string `json:"document_ids,omitempty"`
	ModelName   string   `json:"model_name,omitempty"`
}

// ChatOptions are the query parameters of POST /chat/.
type ChatOptions struct {
	SearchMode      string
	AutoSelectModel bool
}

// Summary types accepted by POST /chat/summarize.
const (
	SummaryShort    = "short"
	SummaryDetailed = "detailed"
	SummaryBullet   = "bullet"
	SummarySection  = "section"
)

// SummarizeRequest is the body of POST /chat/summarize.
type SummarizeRequest struct {
	DocumentIDs []string `json:"document_ids"`
	SummaryType string   `json:"summary_type"`
	ModelName   string   `json:"model_name,omitempty"`
}

// SummaryResponse is returned by POST /chat/summarize.
type SummaryResponse struct {
	Success       bool   `json:"success"`
	Summary       string `json:"summary"`
	SummaryType   string `json:"summary_type"`
	DocumentCount int    `json:"document_count"`
}

// ModelSelection is returned by POST /chat/select-model.
type ModelSelection struct {
	Success       bool     `json:"success"`
	SelectedModel string   `json:"selected_model"`
	ModelName     string   `json:"model_name"`
	Strengths     []string `json:"strengths"`
	Reason        string   `json:"reason"`
}
