package stores

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/client/services"
	"github.com/dmitrijs2005/docmind/internal/common"
)

// NoteAPI is the part of services.NoteService the store needs.
type NoteAPI interface {
	List(ctx context.Context, documentID string, page services.Page) ([]models.Note, error)
	Create(ctx context.Context, in models.NoteCreate) (*models.Note, error)
	Update(ctx context.Context, id string, in models.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}

// NoteFilter narrows the visible notes locally.
type NoteFilter struct {
	Query string
	Tag   string
}

// NoteState is a snapshot of the note store.
type NoteState struct {
	Notes   []models.Note
	Filter  NoteFilter
	Loading bool
	Error   string
}

// NoteStore keeps the user's notes.
type NoteStore struct {
	mu     sync.RWMutex
	notes  []models.Note
	filter NoteFilter
	flags  flags

	busy     guard
	api      NoteAPI
	pageSize int
}

func NewNoteStore(api NoteAPI, pageSize int) *NoteStore {
	return &NoteStore{api: api, pageSize: pageSize}
}

func (s *NoteStore) State() NoteState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NoteState{
		Notes:   slices.Clone(s.notes),
		Filter:  s.filter,
		Loading: s.flags.loading(),
		Error:   s.flags.message,
	}
}

func (s *NoteStore) run(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	s.flags.start()
	s.mu.Unlock()

	err := fn()

	s.mu.Lock()
	s.flags.finish(ctx, err)
	s.mu.Unlock()
	return err
}

// Fetch replaces the list. A non-empty documentID limits it to notes
// attached to that document.
func (s *NoteStore) Fetch(ctx context.Context, documentID string) error {
	return s.run(ctx, func() error {
		notes, err := s.api.List(ctx, documentID, services.Page{Limit: s.pageSize})
		if err = settle(ctx, err); err != nil {
			return err
		}
		s.mu.Lock()
		s.notes = notes
		s.mu.Unlock()
		return nil
	})
}

// Create prepends the note returned by the server.
func (s *NoteStore) Create(ctx context.Context, in models.NoteCreate) (*models.Note, error) {
	var note *models.Note
	err := s.run(ctx, func() error {
		n, err := s.api.Create(ctx, in)
		if err = settle(ctx, err); err != nil {
			return err
		}
		s.mu.Lock()
		s.notes = append([]models.Note{*n}, s.notes...)
		s.mu.Unlock()
		note = n
		return nil
	})
	return note, err
}

// Update replaces the note with the server's version.
func (s *NoteStore) Update(ctx context.Context, id string, in models.NoteUpdate) (*models.Note, error) {
	release, err := s.busy.acquire(id)
	if err != nil {
		return nil, err
	}
	defer release()

	var note *models.Note
	err = s.run(ctx, func() error {
		n, err := s.api.Update(ctx, id, in)
		if err = settle(ctx, err); err != nil {
			return err
		}
		s.mu.Lock()
		if i := s.index(id); i >= 0 {
			s.notes[i] = *n
		}
		s.mu.Unlock()
		note = n
		return nil
	})
	return note, err
}

// TogglePin flips the pinned flag of a listed note.
func (s *NoteStore) TogglePin(ctx context.Context, id string) (*models.Note, error) {
	s.mu.RLock()
	i := s.index(id)
	var pinned bool
	if i >= 0 {
		pinned = s.notes[i].IsPinned
	}
	s.mu.RUnlock()

	if i < 0 {
		return nil, common.ErrorNotFound
	}
	next := !pinned
	return s.Update(ctx, id, models.NoteUpdate{IsPinned: &next})
}

// Delete removes the note after the server confirmed.
func (s *NoteStore) Delete(ctx context.Context, id string) error {
	release, err := s.busy.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	return s.run(ctx, func() error {
		if err := settle(ctx, s.api.Delete(ctx, id)); err != nil {
			return err
		}
		s.mu.Lock()
		s.notes = slices.DeleteFunc(s.notes, func(n models.Note) bool { return n.ID == id })
		s.mu.Unlock()
		return nil
	})
}

// index returns the position of id. Callers hold the lock.
func (s *NoteStore) index(id string) int {
	return slices.IndexFunc(s.notes, func(n models.Note) bool { return n.ID == id })
}

func (s *NoteStore) SetFilter(f NoteFilter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// Visible returns the notes passing the filter, pinned first and then by
// most recent update.
func (s *NoteStore) Visible() []models.Note {
	s.mu.RLock()
	f := s.filter
	out := make([]models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if f.Tag != "" && !n.HasTag(f.Tag) {
			continue
		}
		if !n.Matches(f.Query) {
			continue
		}
		out = append(out, n)
	}
	s.mu.RUnlock()

	models.SortNotes(out)
	return out
}

// Tags lists the distinct tags across all notes.
func (s *NoteStore) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []string
	for _, n := range s.notes {
		all = append(all, n.Tags...)
	}
	return models.NormalizeTags(all)
}
