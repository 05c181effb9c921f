package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
)

// SettingsService talks to /settings.
type SettingsService struct {
	api     client.API
	enabled bool
}

func NewSettingsService(api client.API, enabled bool) *SettingsService {
	return &SettingsService{api: api, enabled: enabled}
}

func (s *SettingsService) Subscription(ctx context.Context) (*models.Subscription, error) {
	if err := gate(s.enabled, "subscription"); err != nil {
		return nil, err
	}
	var sub models.Subscription
	if err := s.api.Get(ctx, "/settings/subscription", nil, &sub); err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &sub, nil
}

// Upgrade requests a plan change. The response says whether a payment must
// follow before the plan takes effect.
func (s *SettingsService) Upgrade(ctx context.Context, plan string) (*models.UpgradeResponse, error) {
	if err := gate(s.enabled, "subscription"); err != nil {
		return nil, err
	}
	if !models.ValidPlan(plan) {
		return nil, client.NewValidationError("plan_name", "must be one of %s", strings.Join(models.Plans, ", "))
	}
	var resp models.UpgradeResponse
	if err := s.api.Post(ctx, "/settings/subscription/upgrade", map[string]string{"plan_name": plan}, &resp); err != nil {
		return nil, fmt.Errorf("upgrade subscription: %w", err)
	}
	return &resp, nil
}

// VerifyPayment forwards the gateway's result. The signature is passed
// through untouched; only the backend can check it.
func (s *SettingsService) VerifyPayment(ctx context.Context, v models.PaymentVerification) (*models.VerificationResponse, error) {
	if err := gate(s.enabled, "subscription"); err != nil {
		return nil, err
	}
	if v.OrderID == "" || v.PaymentID == "" || v.Signature == "" {
		return nil, client.NewValidationError("payment", "order id, payment id and signature are required")
	}
	var resp models.VerificationResponse
	if err := s.api.Post(ctx, "/settings/subscription/verify-payment", v, &resp); err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	return &resp, nil
}

func (s *SettingsService) BillingHistory(ctx context.Context) ([]models.BillingRecord, error) {
	if err := gate(s.enabled, "subscription"); err != nil {
		return nil, err
	}
	var recs []models.BillingRecord
	if err := s.api.Get(ctx, "/settings/billing-history", nil, &recs); err != nil {
		return nil, fmt.Errorf("billing history: %w", err)
	}
	return recs, nil
}
