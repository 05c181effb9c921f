package stores

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/client/services"
	"github.com/dmitrijs2005/docmind/internal/filex"
)

// DocumentAPI is the part of services.DocumentService the store needs.
type DocumentAPI interface {
	List(ctx context.Context, page services.Page) ([]models.Document, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	Upload(ctx context.Context, f *filex.File, title string) (*models.Document, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error)
}

// Tracker receives fire-and-forget usage events.
type Tracker interface {
	TrackDocumentUpload(ctx context.Context, doc models.Document)
	TrackDocumentView(ctx context.Context, doc models.Document)
	TrackAIQuery(ctx context.Context, model, query string, success bool)
}

type nopTracker struct{}

func (nopTracker) TrackDocumentUpload(context.Context, models.Document) {}
func (nopTracker) TrackDocumentView(context.Context, models.Document)   {}
func (nopTracker) TrackAIQuery(context.Context, string, string, bool)   {}

// DocumentState is a snapshot of the document store.
type DocumentState struct {
	Documents []models.Document
	Selected  *models.Document
	Search    *models.SearchResult
	Loading   bool
	Error     string
}

// DocumentStore keeps the user's document list.
type DocumentStore struct {
	mu       sync.RWMutex
	docs     []models.Document
	selected *models.Document
	search   *models.SearchResult
	flags    flags

	deletes  guard
	api      DocumentAPI
	tracker  Tracker
	pageSize int
}

func NewDocumentStore(api DocumentAPI, tracker Tracker, pageSize int) *DocumentStore {
	if tracker == nil {
		tracker = nopTracker{}
	}
	return &DocumentStore{api: api, tracker: tracker, pageSize: pageSize}
}

func (s *DocumentStore) State() DocumentState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := DocumentState{
		Documents: slices.Clone(s.docs),
		Search:    s.search,
		Loading:   s.flags.loading(),
		Error:     s.flags.message,
	}
	if s.selected != nil {
		d := *s.selected
		st.Selected = &d
	}
	return st
}

func (s *DocumentStore) run(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	s.flags.start()
	s.mu.Unlock()

	err := fn()

	s.mu.Lock()
	s.flags.finish(ctx, err)
	s.mu.Unlock()
	return err
}

// Fetch replaces the list with the first page from the server.
func (s *DocumentStore) Fetch(ctx context.Context) error {
	return s.run(ctx, func() error {
		docs, err := s.api.List(ctx, services.Page{Limit: s.pageSize})
		if err = settle(ctx, err); err != nil {
			return err
		}
		s.mu.Lock()
		s.docs = docs
		s.mu.Unlock()
		return nil
	})
}

// Upload sends f and prepends the created document. Size and type are
// checked by the service before anything is sent.
func (s *DocumentStore) Upload(ctx context.Context, f *filex.File, title string) (*models.Document, error) {
	var doc *models.Document
	err := s.run(ctx, func() error {
		d, err := s.api.Upload(ctx, f, title)
		if err = settle(ctx, err); err != nil {
			return err
		}
		s.mu.Lock()
		s.docs = append([]models.Document{*d}, s.docs...)
		s.mu.Unlock()
		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	if doc != nil {
		s.tracker.TrackDocumentUpload(ctx, *doc)
	}
	return doc, nil
}

// Delete removes the document from the list once the server confirmed.
// A concurrent delete of the same id fails with ErrInFlight.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	release, err := s.deletes.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	return s.run(ctx, func() error {
		if err := settle(ctx, s.api.Delete(ctx, id)); err != nil {
			return err
		}
		s.mu.Lock()
		s.docs = slices.DeleteFunc(s.docs, func(d models.Document) bool { return d.ID == id })
		if s.selected != nil && s.selected.ID == id {
			s.selected = nil
		}
		s.mu.Unlock()
		return nil
	})
}

// View loads one document and records a view event.
func (s *DocumentStore) View(ctx context.Context, id string) (*models.Document, error) {
	var doc *models.Document
	err := s.run(ctx, func() error {
		d, err := s.api.Get(ctx, id)
		if err = settle(ctx, err); err != nil {
			return err
		}
		s.mu.Lock()
		s.selected = d
		s.mu.Unlock()
		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	if doc != nil {
		s.tracker.TrackDocumentView(ctx, *doc)
	}
	return doc, nil
}

// Search runs req and keeps the result for display.
func (s *DocumentStore) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	var res *models.SearchResult
	err := s.run(ctx, func() error {
		r, err := s.api.Search(ctx, req)
		if err = settle(ctx, err); err != nil {
			return err
		}
		s.mu.Lock()
		s.search = r
		s.mu.Unlock()
		res = r
		return nil
	})
	return res, err
}

// Find returns the listed document with id.
func (s *DocumentStore) Find(id string) (models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.docs, func(d models.Document) bool { return d.ID == id })
	if i < 0 {
		return models.Document{}, false
	}
	return s.docs[i], true
}

func (s *DocumentStore) ClearError() {
	s.mu.Lock()
	s.flags.message = ""
	s.mu.Unlock()
}
