package stores

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsStore_Fetch(t *testing.T) {
	api := &fakeAnalytics{
		Analytics:   &models.Analytics{TotalDocuments: 3},
		SummaryResp: &models.AnalyticsSummary{QuerySuccessRate: 87.5},
	}
	s := NewAnalyticsStore(api)

	require.NoError(t, s.Fetch(context.Background()))
	state := s.State()
	assert.Equal(t, 3, state.Analytics.TotalDocuments)
	assert.InDelta(t, 87.5, state.Summary.QuerySuccessRate, 1e-9)
	assert.False(t, state.Loading)
}

func TestAnalyticsStore_PartialFailureCommitsNothing(t *testing.T) {
	api := &fakeAnalytics{Analytics: &models.Analytics{TotalDocuments: 3}, SummaryErr: assert.AnError}
	s := NewAnalyticsStore(api)

	require.ErrorIs(t, s.Fetch(context.Background()), assert.AnError)
	state := s.State()
	assert.Nil(t, state.Analytics)
	assert.Nil(t, state.Summary)
	assert.NotEmpty(t, state.Error)
}
