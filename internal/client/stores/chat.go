package stores

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/client/services"
	"github.com/dmitrijs2005/docmind/internal/timex"
	"github.com/facebookgo/clock"
	"github.com/google/uuid"
)

// ChatAPI is the part of services.ChatService the store needs.
type ChatAPI interface {
	Send(ctx context.Context, req models.ChatRequest, opts models.ChatOptions) (*models.ChatMessage, error)
	History(ctx context.Context, page services.Page) ([]models.ChatMessage, error)
	Delete(ctx context.Context, id string) error
}

// ChatState is a snapshot of the chat store.
type ChatState struct {
	Messages []models.ChatMessage
	Loading  bool
	Error    string
}

// ChatStore keeps the conversation in chronological order.
type ChatStore struct {
	mu       sync.RWMutex
	messages []models.ChatMessage
	flags    flags

	deletes  guard
	api      ChatAPI
	tracker  Tracker
	clock    clock.Clock
	pageSize int
}

func NewChatStore(api ChatAPI, tracker Tracker, clk clock.Clock, pageSize int) *ChatStore {
	if tracker == nil {
		tracker = nopTracker{}
	}
	if clk == nil {
		clk = clock.New()
	}
	return &ChatStore{api: api, tracker: tracker, clock: clk, pageSize: pageSize}
}

func (s *ChatStore) State() ChatState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ChatState{
		Messages: slices.Clone(s.messages),
		Loading:  s.flags.loading(),
		Error:    s.flags.message,
	}
}

// Fetch replaces the conversation with the server's history.
func (s *ChatStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.flags.start()
	s.mu.Unlock()

	msgs, err := s.api.History(ctx, services.Page{Limit: s.pageSize})
	err = settle(ctx, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags.finish(ctx, err)
	if err != nil {
		return err
	}
	slices.SortStableFunc(msgs, func(a, b models.ChatMessage) int {
		return a.CreatedAt.Compare(b.CreatedAt.Time)
	})
	s.messages = msgs
	return nil
}

// Send appends the user's message at once under a temporary id, then the
// reply. If the call fails the placeholder is removed again.
func (s *ChatStore) Send(ctx context.Context, req models.ChatRequest, opts models.ChatOptions) (*models.ChatMessage, error) {
	tempID := models.TempIDPrefix + uuid.NewString()
	pending := models.ChatMessage{
		ID:        tempID,
		Sender:    models.SenderUser,
		Content:   req.Message,
		CreatedAt: timex.Of(s.clock.Now().UTC()),
	}

	s.mu.Lock()
	s.messages = append(s.messages, pending)
	s.flags.start()
	s.mu.Unlock()

	reply, err := s.api.Send(ctx, req, opts)
	err = settle(ctx, err)

	s.mu.Lock()
	s.flags.finish(ctx, err)
	if err != nil {
		s.messages = slices.DeleteFunc(s.messages, func(m models.ChatMessage) bool { return m.ID == tempID })
	} else {
		if reply.CreatedAt.IsZero() {
			reply.CreatedAt = timex.Of(s.clock.Now().UTC())
		}
		s.messages = append(s.messages, *reply)
	}
	s.mu.Unlock()

	if !cancelled(ctx) {
		s.tracker.TrackAIQuery(ctx, req.ModelName, req.Message, err == nil)
	}
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// Delete removes a message after the server confirmed.
func (s *ChatStore) Delete(ctx context.Context, id string) error {
	release, err := s.deletes.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	s.mu.Lock()
	s.flags.start()
	s.mu.Unlock()

	err = settle(ctx, s.api.Delete(ctx, id))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags.finish(ctx, err)
	if err != nil {
		return err
	}
	s.messages = slices.DeleteFunc(s.messages, func(m models.ChatMessage) bool { return m.ID == id })
	return nil
}

// Clear empties the local conversation without touching the server.
func (s *ChatStore) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.flags.message = ""
	s.mu.Unlock()
}
