package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/common"
	"github.com/dmitrijs2005/docmind/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalytics_Reads(t *testing.T) {
	api := &fakeAPI{RespBody: `{"id":"a1","user_id":"u1","total_documents":4,"total_queries":10,"created_at":"2025-01-01","updated_at":"2025-01-02"}`}
	svc := NewAnalyticsService(api, true, nil)
	ctx := context.Background()

	a, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, a.TotalDocuments)
	assert.Equal(t, "/analytics/", api.LastRequest.Path)

	_, err = svc.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/analytics/user", api.LastRequest.Path)

	api.RespBody = `{"total_documents":4,"total_queries":10,"successful_queries":9,"query_success_rate":90.0,"productivity_score":7.5}`
	s, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, s.QuerySuccessRate, 1e-9)
}

func TestAnalytics_TrackIsFireAndForget(t *testing.T) {
	var buf bytes.Buffer
	api := &fakeAPI{Err: errors.New("backend down")}
	svc := NewAnalyticsService(api, true, logging.NewTextLogger(&buf, slog.LevelDebug))
	svc.now = func() time.Time { return time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC) }

	require.NotPanics(t, func() {
		svc.TrackDocumentUpload(context.Background(), models.Document{ID: "d1", Name: "Paper.pdf"})
	})
	assert.Equal(t, 1, api.Calls)
	assert.Contains(t, buf.String(), "analytics event dropped")

	ev := api.LastRequest.JSON.(models.AnalyticsEvent)
	assert.Equal(t, models.EventDocumentUpload, ev.EventType)
	require.NotNil(t, ev.DocumentID)
	assert.Equal(t, "d1", *ev.DocumentID)
	assert.Equal(t, "Paper.pdf", ev.Metadata["document_name"])
	assert.Equal(t, "2025-02-03T04:05:06Z", ev.Metadata["timestamp"])

	api.Err = nil
	svc.TrackAIQuery(context.Background(), "llama", "what?", true)
	ev = api.LastRequest.JSON.(models.AnalyticsEvent)
	assert.Equal(t, models.EventAIQuery, ev.EventType)
	assert.Nil(t, ev.DocumentID)
	assert.Equal(t, true, ev.Metadata["success"])
}

func TestAnalytics_DisabledSkipsTracking(t *testing.T) {
	api := &fakeAPI{}
	svc := NewAnalyticsService(api, false, nil)

	svc.TrackDocumentView(context.Background(), models.Document{ID: "d1"})
	assert.Zero(t, api.Calls)

	_, err := svc.Summary(context.Background())
	require.ErrorIs(t, err, common.ErrFeatureDisabled)

	require.Error(t, NewAnalyticsService(api, true, nil).Log(context.Background(), models.AnalyticsEvent{}))
	assert.Zero(t, api.Calls)
}
