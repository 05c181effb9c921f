package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/logging"
)

// AnalyticsService talks to /analytics.
type AnalyticsService struct {
	api     client.API
	enabled bool
	logger  logging.Logger
	now     func() time.Time
}

func NewAnalyticsService(api client.API, enabled bool, logger logging.Logger) *AnalyticsService {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &AnalyticsService{api: api, enabled: enabled, logger: logger, now: time.Now}
}

func (s *AnalyticsService) Get(ctx context.Context) (*models.Analytics, error) {
	return s.get(ctx, "/analytics/")
}

// User returns the current user's aggregate from /analytics/user.
func (s *AnalyticsService) User(ctx context.Context) (*models.Analytics, error) {
	return s.get(ctx, "/analytics/user")
}

func (s *AnalyticsService) get(ctx context.Context, path string) (*models.Analytics, error) {
	if err := gate(s.enabled, "analytics"); err != nil {
		return nil, err
	}
	var a models.Analytics
	if err := s.api.Get(ctx, path, nil, &a); err != nil {
		return nil, fmt.Errorf("get analytics: %w", err)
	}
	return &a, nil
}

func (s *AnalyticsService) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	if err := gate(s.enabled, "analytics"); err != nil {
		return nil, err
	}
	var sum models.AnalyticsSummary
	if err := s.api.Get(ctx, "/analytics/summary", nil, &sum); err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}
	return &sum, nil
}

// Log records an event.
func (s *AnalyticsService) Log(ctx context.Context, ev models.AnalyticsEvent) error {
	if err := gate(s.enabled, "analytics"); err != nil {
		return err
	}
	if ev.EventType == "" {
		return client.NewValidationError("event_type", "is required")
	}
	if err := s.api.Post(ctx, "/analytics/", ev, nil); err != nil {
		return fmt.Errorf("log analytics event: %w", err)
	}
	return nil
}

// Track logs ev without disturbing the caller: failures, including a
// disabled feature, are written to the diagnostic log only.
func (s *AnalyticsService) Track(ctx context.Context, ev models.AnalyticsEvent) {
	if !s.enabled {
		return
	}
	if err := s.Log(ctx, ev); err != nil {
		s.logger.Warn(ctx, "analytics event dropped", "event", ev.EventType, "error", err)
	}
}

func (s *AnalyticsService) TrackDocumentUpload(ctx context.Context, doc models.Document) {
	s.trackDocument(ctx, models.EventDocumentUpload, doc)
}

func (s *AnalyticsService) TrackDocumentView(ctx context.Context, doc models.Document) {
	s.trackDocument(ctx, models.EventDocumentView, doc)
}

func (s *AnalyticsService) trackDocument(ctx context.Context, event string, doc models.Document) {
	id := doc.ID
	s.Track(ctx, models.AnalyticsEvent{
		DocumentID: &id,
		EventType:  event,
		Metadata: map[string]any{
			"document_name": doc.Name,
			"timestamp":     s.now().UTC().Format(time.RFC3339),
		},
	})
}

// TrackAIQuery records a chat query and whether it succeeded.
func (s *AnalyticsService) TrackAIQuery(ctx context.Context, model, query string, success bool) {
	s.Track(ctx, models.AnalyticsEvent{
		EventType: models.EventAIQuery,
		Metadata: map[string]any{
			"model":     model,
			"query":     query,
			"success":   success,
			"timestamp": s.now().UTC().Format(time.RFC3339),
		},
	})
}
