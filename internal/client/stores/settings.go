package stores

import (
	"context"
	"net/http"
	"slices"
	"sync"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/client/storage"
	"github.com/dmitrijs2005/docmind/internal/common"
	"golang.org/x/sync/errgroup"
)

// SettingsAPI is the part of services.SettingsService the store needs.
type SettingsAPI interface {
	Subscription(ctx context.Context) (*models.Subscription, error)
	Upgrade(ctx context.Context, plan string) (*models.UpgradeResponse, error)
	VerifyPayment(ctx context.Context, v models.PaymentVerification) (*models.VerificationResponse, error)
	BillingHistory(ctx context.Context) ([]models.BillingRecord, error)
}

// SettingsState is a snapshot of the settings store.
type SettingsState struct {
	Subscription *models.Subscription
	Billing      []models.BillingRecord
	Payment      models.PaymentModalState
	UI           models.UIPreferences
	Preferences  models.Preferences
	Loading      bool
	Error        string
}

// persistedSettings is the whitelisted part of the state kept across
// restarts.
type persistedSettings struct {
	UI          models.UIPreferences `json:"ui"`
	Preferences models.Preferences   `json:"preferences"`
}

// SettingsStore holds subscription data, the checkout dialog and the local
// preferences. Subscription and billing are only ever replaced by a fetch.
type SettingsStore struct {
	mu           sync.RWMutex
	subscription *models.Subscription
	billing      []models.BillingRecord
	payment      models.PaymentModalState
	saved        persistedSettings
	flags        flags

	api      SettingsAPI
	storage  storage.Storage
	currency string
}

func NewSettingsStore(api SettingsAPI, st storage.Storage, currency string) *SettingsStore {
	return &SettingsStore{
		api:      api,
		storage:  st,
		currency: currency,
		saved: persistedSettings{
			UI:          models.UIPreferences{Theme: models.ThemeSystem},
			Preferences: models.DefaultPreferences(),
		},
	}
}

func (s *SettingsStore) State() SettingsState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SettingsState{
		Subscription: s.subscription,
		Billing:      slices.Clone(s.billing),
		Payment:      s.payment,
		UI:           s.saved.UI,
		Preferences:  s.saved.Preferences,
		Loading:      s.flags.loading(),
		Error:        s.flags.message,
	}
}

// Restore loads the persisted preferences, keeping defaults when nothing
// usable is stored.
func (s *SettingsStore) Restore(ctx context.Context) {
	var p persistedSettings
	if !storage.LoadJSON(ctx, s.storage, common.SettingsStateKey, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if validTheme(p.UI.Theme) {
		s.saved.UI = p.UI
	}
	s.saved.Preferences = p.Preferences
}

// Fetch refreshes subscription and billing history together. Either both
// are replaced or neither is.
func (s *SettingsStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.flags.start()
	s.mu.Unlock()

	err := s.fetch(ctx)

	s.mu.Lock()
	s.flags.finish(ctx, err)
	s.mu.Unlock()
	return err
}

func (s *SettingsStore) fetch(ctx context.Context) error {
	var (
		sub     *models.Subscription
		billing []models.BillingRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sub, err = s.api.Subscription(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		billing, err = s.api.BillingHistory(gctx)
		return err
	})
	if err := settle(ctx, g.Wait()); err != nil {
		return err
	}

	s.mu.Lock()
	s.subscription, s.billing = sub, billing
	s.mu.Unlock()
	return nil
}

// Upgrade requests a plan change. When payment is needed the checkout
// dialog is opened and the subscription stays untouched; otherwise the
// subscription is re-fetched.
func (s *SettingsStore) Upgrade(ctx context.Context, plan string) (*models.UpgradeResponse, error) {
	s.mu.Lock()
	s.flags.start()
	s.mu.Unlock()

	resp, err := s.api.Upgrade(ctx, plan)
	err = settle(ctx, err)
	if err == nil {
		if resp.RequiresPayment {
			s.openPayment(resp)
		} else {
			err = s.fetch(ctx)
		}
	}

	s.mu.Lock()
	s.flags.finish(ctx, err)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *SettingsStore) openPayment(resp *models.UpgradeResponse) {
	currency := resp.Currency
	if currency == "" {
		currency = s.currency
	}
	s.mu.Lock()
	s.payment = models.PaymentModalState{
		IsOpen:        true,
		PlanName:      resp.PlanName,
		OrderID:       resp.OrderID,
		Amount:        resp.Amount,
		AmountInPaise: resp.AmountInPaise,
		Currency:      currency,
		RazorpayKeyID: resp.KeyID,
		UserEmail:     resp.UserEmail,
		UserPhone:     resp.UserPhone,
	}
	s.mu.Unlock()
}

// VerifyPayment forwards the gateway's result. On success the dialog is
// closed and subscription plus billing are re-fetched; on failure the
// dialog stays open so verification can be retried.
func (s *SettingsStore) VerifyPayment(ctx context.Context, v models.PaymentVerification) (*models.VerificationResponse, error) {
	s.mu.Lock()
	s.flags.start()
	s.mu.Unlock()

	resp, err := s.api.VerifyPayment(ctx, v)
	err = settle(ctx, err)
	if err == nil && !resp.Success {
		err = &client.HTTPError{Status: http.StatusBadRequest, Message: verificationMessage(resp)}
	}
	if err == nil {
		s.ClosePayment()
		err = s.fetch(ctx)
	}

	s.mu.Lock()
	s.flags.finish(ctx, err)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func verificationMessage(resp *models.VerificationResponse) string {
	if resp.Message != "" {
		return resp.Message
	}
	return "Payment verification failed"
}

// ClosePayment dismisses the checkout dialog, e.g. when the user cancels.
func (s *SettingsStore) ClosePayment() {
	s.mu.Lock()
	s.payment = models.PaymentModalState{}
	s.mu.Unlock()
}

func validTheme(t string) bool {
	return t == models.ThemeLight || t == models.ThemeDark || t == models.ThemeSystem
}

// SetTheme changes and persists the theme.
func (s *SettingsStore) SetTheme(ctx context.Context, theme string) error {
	if !validTheme(theme) {
		return client.NewValidationError("theme", "must be one of %s, %s, %s", models.ThemeLight, models.ThemeDark, models.ThemeSystem)
	}
	s.update(ctx, func(p *persistedSettings) { p.UI.Theme = theme })
	return nil
}

// ToggleSidebar flips and persists the collapsed flag.
func (s *SettingsStore) ToggleSidebar(ctx context.Context) bool {
	var collapsed bool
	s.update(ctx, func(p *persistedSettings) {
		p.UI.SidebarCollapsed = !p.UI.SidebarCollapsed
		collapsed = p.UI.SidebarCollapsed
	})
	return collapsed
}

// SetPreferences replaces and persists the account preferences.
func (s *SettingsStore) SetPreferences(ctx context.Context, prefs models.Preferences) {
	s.update(ctx, func(p *persistedSettings) { p.Preferences = prefs })
}

func (s *SettingsStore) update(ctx context.Context, fn func(*persistedSettings)) {
	s.mu.Lock()
	fn(&s.saved)
	saved := s.saved
	s.mu.Unlock()

	storage.SaveJSON(ctx, s.storage, common.SettingsStateKey, saved)
}
