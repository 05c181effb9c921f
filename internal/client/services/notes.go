package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
)

// NoteService talks to /notes.
type NoteService struct {
	api     client.API
	enabled bool
}

func NewNoteService(api client.API, enabled bool) *NoteService {
	return &NoteService{api: api, enabled: enabled}
}

// List returns notes, optionally only those attached to documentID.
func (s *NoteService) List(ctx context.Context, documentID string, page Page) ([]models.Note, error) {
	if err := gate(s.enabled, "notes"); err != nil {
		return nil, err
	}
	q := page.values()
	if documentID != "" {
		q.Set("document_id", documentID)
	}
	var notes []models.Note
	if err := s.api.Get(ctx, "/notes/", q, &notes); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	if err := gate(s.enabled, "notes"); err != nil {
		return nil, err
	}
	if err := requireID("note_id", id); err != nil {
		return nil, err
	}
	var note models.Note
	if err := s.api.Get(ctx, "/notes/"+url.PathEscape(id), nil, &note); err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &note, nil
}

// Create normalizes tags and creates the note.
func (s *NoteService) Create(ctx context.Context, in models.NoteCreate) (*models.Note, error) {
	if err := gate(s.enabled, "notes"); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, client.NewValidationError("title", "is required")
	}
	in.Tags = models.NormalizeTags(in.Tags)

	var note models.Note
	if err := s.api.Post(ctx, "/notes/", in, &note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &note, nil
}

// Update sends a partial update.
func (s *NoteService) Update(ctx context.Context, id string, in models.NoteUpdate) (*models.Note, error) {
	if err := gate(s.enabled, "notes"); err != nil {
		return nil, err
	}
	if err := requireID("note_id", id); err != nil {
		return nil, err
	}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, client.NewValidationError("title", "must not be empty")
		}
		in.Title = &t
	}
	if in.Tags != nil {
		in.Tags = models.NormalizeTags(in.Tags)
	}

	var note models.Note
	if err := s.api.Put(ctx, "/notes/"+url.PathEscape(id), in, &note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &note, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	if err := gate(s.enabled, "notes"); err != nil {
		return err
	}
	if err := requireID("note_id", id); err != nil {
		return err
	}
	if err := s.api.Delete(ctx, "/notes/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
