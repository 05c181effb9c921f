package stores

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/docmind/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// AnalyticsAPI is the part of services.AnalyticsService the store needs.
type AnalyticsAPI interface {
	User(ctx context.Context) (*models.Analytics, error)
	Summary(ctx context.Context) (*models.AnalyticsSummary, error)
}

// AnalyticsState is a snapshot of the analytics store.
type AnalyticsState struct {
	Analytics *models.Analytics
	Summary   *models.AnalyticsSummary
	Loading   bool
	Error     string
}

// AnalyticsStore backs the dashboard. All data is read-only.
type AnalyticsStore struct {
	mu        sync.RWMutex
	analytics *models.Analytics
	summary   *models.AnalyticsSummary
	flags     flags

	api AnalyticsAPI
}

func NewAnalyticsStore(api AnalyticsAPI) *AnalyticsStore {
	return &AnalyticsStore{api: api}
}

func (s *AnalyticsStore) State() AnalyticsState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AnalyticsState{
		Analytics: s.analytics,
		Summary:   s.summary,
		Loading:   s.flags.loading(),
		Error:     s.flags.message,
	}
}

// Fetch loads the aggregate and the summary in parallel. Nothing is
// committed unless both succeed.
func (s *AnalyticsStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.flags.start()
	s.mu.Unlock()

	var (
		a   *models.Analytics
		sum *models.AnalyticsSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.api.User(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		sum, err = s.api.Summary(gctx)
		return err
	})
	err := settle(ctx, g.Wait())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags.finish(ctx, err)
	if err != nil {
		return err
	}
	s.analytics, s.summary = a, sum
	return nil
}
