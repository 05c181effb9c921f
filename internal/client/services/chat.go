package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
)

// ChatService talks to /chat.
type ChatService struct {
	api     client.API
	enabled bool
}

func NewChatService(api client.API, enabled bool) *ChatService {
	return &ChatService{api: api, enabled: enabled}
}

// Send posts a user message and returns the AI reply.
func (s *ChatService) Send(ctx context.Context, req models.ChatRequest, opts models.ChatOptions) (*models.ChatMessage, error) {
	if err := gate(s.enabled, "chat"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, client.NewValidationError("message", "is required")
	}

	q := url.Values{}
	if opts.SearchMode != "" {
		q.Set("search_mode", opts.SearchMode)
	}
	if opts.AutoSelectModel {
		q.Set("auto_select_model", strconv.FormatBool(true))
	}

	var msg models.ChatMessage
	if err := s.api.DoJSON(ctx, &client.Request{Method: http.MethodPost, Path: "/chat/", Query: q, JSON: req}, &msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return &msg, nil
}

func (s *ChatService) History(ctx context.Context, page Page) ([]models.ChatMessage, error) {
	if err := gate(s.enabled, "chat"); err != nil {
		return nil, err
	}
	var msgs []models.ChatMessage
	if err := s.api.Get(ctx, "/chat/", page.values(), &msgs); err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	return msgs, nil
}

func (s *ChatService) Get(ctx context.Context, id string) (*models.ChatMessage, error) {
	if err := gate(s.enabled, "chat"); err != nil {
		return nil, err
	}
	if err := requireID("chat_id", id); err != nil {
		return nil, err
	}
	var msg models.ChatMessage
	if err := s.api.Get(ctx, "/chat/"+url.PathEscape(id), nil, &msg); err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &msg, nil
}

func (s *ChatService) Delete(ctx context.Context, id string) error {
	if err := gate(s.enabled, "chat"); err != nil {
		return err
	}
	if err := requireID("chat_id", id); err != nil {
		return err
	}
	if err := s.api.Delete(ctx, "/chat/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// Summarize asks for a summary of at least one document.
func (s *ChatService) Summarize(ctx context.Context, req models.SummarizeRequest) (*models.SummaryResponse, error) {
	if err := gate(s.enabled, "chat"); err != nil {
		return nil, err
	}
	if len(req.DocumentIDs) == 0 {
		return nil, client.NewValidationError("document_ids", "at least one document is required")
	}
	if req.SummaryType == "" {
		req.SummaryType = models.SummaryShort
	}
	valid := []string{models.SummaryShort, models.SummaryDetailed, models.SummaryBullet, models.SummarySection}
	if !slices.Contains(valid, req.SummaryType) {
		return nil, client.NewValidationError("summary_type", "must be one of %s", strings.Join(valid, ", "))
	}

	var resp models.SummaryResponse
	if err := s.api.Post(ctx, "/chat/summarize", req, &resp); err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	return &resp, nil
}

// SelectModel asks the backend which model fits query best.
func (s *ChatService) SelectModel(ctx context.Context, query, documentContent string) (*models.ModelSelection, error) {
	if err := gate(s.enabled, "chat"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, client.NewValidationError("query", "is required")
	}
	q := url.Values{"query": {query}}
	if documentContent != "" {
		q.Set("document_content", documentContent)
	}

	var resp models.ModelSelection
	if err := s.api.DoJSON(ctx, &client.Request{Method: http.MethodPost, Path: "/chat/select-model", Query: q}, &resp); err != nil {
		return nil, fmt.Errorf("select model: %w", err)
	}
	return &resp, nil
}
