package stores

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/timex"
	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatStore_SendIsOptimistic(t *testing.T) {
	api := &fakeChat{
		Reply:       &models.ChatMessage{ID: "m2", Sender: models.SenderAI, Content: "answer"},
		SendGate:    make(chan struct{}),
		SendStarted: make(chan struct{}, 1),
	}
	tr := &fakeTracker{}
	clk := clock.NewMock()
	s := NewChatStore(api, tr, clk, 50)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), models.ChatRequest{Message: "question", ModelName: "llama"}, models.ChatOptions{SearchMode: models.SearchHybrid})
		done <- err
	}()
	<-api.SendStarted

	pending := s.State()
	require.Len(t, pending.Messages, 1)
	assert.True(t, strings.HasPrefix(pending.Messages[0].ID, models.TempIDPrefix))
	assert.True(t, pending.Messages[0].Optimistic())
	assert.Equal(t, models.SenderUser, pending.Messages[0].Sender)
	assert.Equal(t, "question", pending.Messages[0].Content)
	assert.True(t, pending.Loading)

	close(api.SendGate)
	require.NoError(t, <-done)

	state := s.State()
	require.Len(t, state.Messages, 2)
	assert.Equal(t, "m2", state.Messages[1].ID)
	assert.Equal(t, clk.Now().UTC(), state.Messages[1].CreatedAt.Time)
	assert.Equal(t, models.SearchHybrid, api.LastOptions.SearchMode)

	require.Len(t, tr.Queries, 1)
	assert.Equal(t, trackedQuery{Model: "llama", Query: "question", Success: true}, tr.Queries[0])
}

func TestChatStore_SendFailureRemovesPlaceholder(t *testing.T) {
	api := &fakeChat{SendErr: errors.New("model offline")}
	tr := &fakeTracker{}
	s := NewChatStore(api, tr, clock.NewMock(), 50)

	_, err := s.Send(context.Background(), models.ChatRequest{Message: "q"}, models.ChatOptions{})
	require.Error(t, err)

	state := s.State()
	assert.Empty(t, state.Messages)
	assert.Equal(t, "model offline", state.Error)
	require.Len(t, tr.Queries, 1)
	assert.False(t, tr.Queries[0].Success)
}

func TestChatStore_FetchSortsChronologically(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	api := &fakeChat{HistoryResult: []models.ChatMessage{
		{ID: "b", CreatedAt: timex.Of(t0.Add(time.Minute))},
		{ID: "a", CreatedAt: timex.Of(t0)},
	}}
	s := NewChatStore(api, nil, nil, 50)

	require.NoError(t, s.Fetch(context.Background()))
	msgs := s.State().Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].ID)
	assert.Equal(t, "b", msgs[1].ID)
}

func TestChatStore_DeleteRejectsSameIDWhileInFlight(t *testing.T) {
	api := &fakeChat{HistoryResult: []models.ChatMessage{{ID: "a"}, {ID: "b"}}}
	s := NewChatStore(api, nil, nil, 50)
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx))

	api.DeleteGate, api.DeleteStarted = make(chan struct{}), make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() { done <- s.Delete(ctx, "a") }()
	<-api.DeleteStarted

	require.ErrorIs(t, s.Delete(ctx, "a"), ErrInFlight)
	assert.Len(t, s.State().Messages, 2)

	close(api.DeleteGate)
	require.NoError(t, <-done)
	require.Len(t, s.State().Messages, 1)
	assert.Equal(t, "b", s.State().Messages[0].ID)
}

func TestChatStore_DeleteAndClear(t *testing.T) {
	api := &fakeChat{HistoryResult: []models.ChatMessage{{ID: "a"}, {ID: "b"}}}
	s := NewChatStore(api, nil, nil, 50)
	require.NoError(t, s.Fetch(context.Background()))

	api.DeleteErr = errors.New("denied")
	require.Error(t, s.Delete(context.Background(), "a"))
	assert.Len(t, s.State().Messages, 2)

	api.DeleteErr = nil
	require.NoError(t, s.Delete(context.Background(), "a"))
	require.Len(t, s.State().Messages, 1)
	assert.Equal(t, "b", s.State().Messages[0].ID)

	s.Clear()
	assert.Empty(t, s.State().Messages)
}
