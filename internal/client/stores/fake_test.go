package stores

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/docmind/internal/client/services"
	"github.com/dmitrijs2005/docmind/internal/client/storage"
	"github.com/dmitrijs2005/docmind/internal/filex"
)

func newStorage() *storage.Adapter {
	return storage.New(metadata.NewMemoryRepository(), nil)
}

// fakeAuth implements AuthAPI.
type fakeAuth struct {
	LoginPair    *client.TokenPair
	LoginErr     error
	RegisterUser *models.User
	RegisterErr  error
	RefreshPair  *client.TokenPair
	RefreshErr   error

	LoginCalls       int
	RegisterCalls    int
	RefreshCalls     int
	LastEmail        string
	LastPassword     string
	LastRefreshToken string
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*client.TokenPair, error) {
	f.LoginCalls++
	f.LastEmail, f.LastPassword = email, password
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.LoginPair, f.LoginErr
}

func (f *fakeAuth) Register(_ context.Context, req models.RegisterRequest) (*models.User, error) {
	f.RegisterCalls++
	f.LastEmail = req.Email
	return f.RegisterUser, f.RegisterErr
}

func (f *fakeAuth) Refresh(_ context.Context, rt string) (*client.TokenPair, error) {
	f.RefreshCalls++
	f.LastRefreshToken = rt
	return f.RefreshPair, f.RefreshErr
}

// fakeDocs implements DocumentAPI. When DeleteGate is set, Delete signals
// DeleteStarted and blocks until the gate is closed.
type fakeDocs struct {
	ListResult   []models.Document
	ListErr      error
	GetResult    *models.Document
	UploadResult *models.Document
	UploadErr    error
	DeleteErr    error
	SearchResult *models.SearchResult

	DeleteGate    chan struct{}
	DeleteStarted chan struct{}

	mu          sync.Mutex
	LastPage    services.Page
	DeleteCalls int
	UploadCalls int
}

func (f *fakeDocs) List(_ context.Context, page services.Page) ([]models.Document, error) {
	f.LastPage = page
	return f.ListResult, f.ListErr
}

func (f *fakeDocs) Get(_ context.Context, id string) (*models.Document, error) {
	return f.GetResult, nil
}

func (f *fakeDocs) Upload(_ context.Context, _ *filex.File, _ string) (*models.Document, error) {
	f.UploadCalls++
	return f.UploadResult, f.UploadErr
}

func (f *fakeDocs) Delete(_ context.Context, _ string) error {
	f.mu.Lock()
	f.DeleteCalls++
	f.mu.Unlock()
	if f.DeleteGate != nil {
		f.DeleteStarted <- struct{}{}
		<-f.DeleteGate
	}
	return f.DeleteErr
}

func (f *fakeDocs) Search(_ context.Context, _ models.SearchRequest) (*models.SearchResult, error) {
	return f.SearchResult, nil
}

type trackedQuery struct {
	Model   string
	Query   string
	Success bool
}

// fakeTracker records events.
type fakeTracker struct {
	Uploads []models.Document
	Views   []models.Document
	Queries []trackedQuery
}

func (f *fakeTracker) TrackDocumentUpload(_ context.Context, d models.Document) {
	f.Uploads = append(f.Uploads, d)
}

func (f *fakeTracker) TrackDocumentView(_ context.Context, d models.Document) {
	f.Views = append(f.Views, d)
}

func (f *fakeTracker) TrackAIQuery(_ context.Context, model, query string, success bool) {
	f.Queries = append(f.Queries, trackedQuery{model, query, success})
}

// fakeChat implements ChatAPI. When SendGate is set, Send signals
// SendStarted and blocks until the gate is closed.
type fakeChat struct {
	Reply         *models.ChatMessage
	SendErr       error
	HistoryResult []models.ChatMessage
	DeleteErr     error
	SendGate      chan struct{}
	SendStarted   chan struct{}
	DeleteGate    chan struct{}
	DeleteStarted chan struct{}

	LastRequest models.ChatRequest
	LastOptions models.ChatOptions
}

func (f *fakeChat) Send(_ context.Context, req models.ChatRequest, opts models.ChatOptions) (*models.ChatMessage, error) {
	f.LastRequest, f.LastOptions = req, opts
	if f.SendGate != nil {
		f.SendStarted <- struct{}{}
		<-f.SendGate
	}
	if f.SendErr != nil {
		return nil, f.SendErr
	}
	r := *f.Reply
	return &r, nil
}

func (f *fakeChat) History(_ context.Context, _ services.Page) ([]models.ChatMessage, error) {
	return f.HistoryResult, nil
}

func (f *fakeChat) Delete(_ context.Context, _ string) error {
	if f.DeleteGate != nil {
		f.DeleteStarted <- struct{}{}
		<-f.DeleteGate
	}
	return f.DeleteErr
}

// fakeNotes implements NoteAPI. When Gate is set, Update and Delete signal
// Started and block until the gate is closed.
type fakeNotes struct {
	ListResult   []models.Note
	CreateResult *models.Note
	UpdateResult *models.Note
	Err          error
	Gate         chan struct{}
	Started      chan struct{}

	LastDocumentID string
	LastUpdateID   string
	LastUpdate     models.NoteUpdate
	DeleteCalls    int
}

func (f *fakeNotes) List(_ context.Context, documentID string, _ services.Page) ([]models.Note, error) {
	f.LastDocumentID = documentID
	return f.ListResult, f.Err
}

func (f *fakeNotes) Create(_ context.Context, _ models.NoteCreate) (*models.Note, error) {
	return f.CreateResult, f.Err
}

func (f *fakeNotes) Update(_ context.Context, id string, in models.NoteUpdate) (*models.Note, error) {
	f.LastUpdateID, f.LastUpdate = id, in
	f.wait()
	return f.UpdateResult, f.Err
}

func (f *fakeNotes) Delete(_ context.Context, _ string) error {
	f.DeleteCalls++
	f.wait()
	return f.Err
}

func (f *fakeNotes) wait() {
	if f.Gate != nil {
		f.Started <- struct{}{}
		<-f.Gate
	}
}

// fakeAnalytics implements AnalyticsAPI.
type fakeAnalytics struct {
	Analytics   *models.Analytics
	SummaryResp *models.AnalyticsSummary
	SummaryErr  error
}

func (f *fakeAnalytics) User(context.Context) (*models.Analytics, error) {
	return f.Analytics, nil
}

func (f *fakeAnalytics) Summary(context.Context) (*models.AnalyticsSummary, error) {
	return f.SummaryResp, f.SummaryErr
}

// fakeSettings implements SettingsAPI.
type fakeSettings struct {
	Sub         *models.Subscription
	Billing     []models.BillingRecord
	UpgradeResp *models.UpgradeResponse
	UpgradeErr  error
	VerifyResp  *models.VerificationResponse
	VerifyErr   error

	mu                sync.Mutex
	SubscriptionCalls int
	LastPlan          string
	LastVerification  models.PaymentVerification
}

func (f *fakeSettings) Subscription(context.Context) (*models.Subscription, error) {
	f.mu.Lock()
	f.SubscriptionCalls++
	f.mu.Unlock()
	return f.Sub, nil
}

func (f *fakeSettings) Upgrade(_ context.Context, plan string) (*models.UpgradeResponse, error) {
	f.LastPlan = plan
	return f.UpgradeResp, f.UpgradeErr
}

func (f *fakeSettings) VerifyPayment(_ context.Context, v models.PaymentVerification) (*models.VerificationResponse, error) {
	f.LastVerification = v
	return f.VerifyResp, f.VerifyErr
}

func (f *fakeSettings) BillingHistory(context.Context) ([]models.BillingRecord, error) {
	return f.Billing, nil
}

var (
	_ AuthAPI      = (*fakeAuth)(nil)
	_ DocumentAPI  = (*fakeDocs)(nil)
	_ Tracker      = (*fakeTracker)(nil)
	_ ChatAPI      = (*fakeChat)(nil)
	_ NoteAPI      = (*fakeNotes)(nil)
	_ AnalyticsAPI = (*fakeAnalytics)(nil)
	_ SettingsAPI  = (*fakeSettings)(nil)
)
