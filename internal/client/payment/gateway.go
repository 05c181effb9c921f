// Package payment drives the external checkout step of a paid plan upgrade.
//
// The gateway returns a payment id and a signature for an order. Both are
// handed to the backend unchanged: the client has no signing secret and
// makes no trust decision of its own.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/docmind/internal/client/models"
)

// ErrCancelled is returned when the user abandons the checkout.
var ErrCancelled = errors.New("payment cancelled")

// CheckoutRequest is what the gateway widget is opened with. Amount is in
// the currency's minor unit.
type CheckoutRequest struct {
	KeyID    string
	OrderID  string
	Amount   int64
	Currency string
	PlanName string
	Email    string
	Phone    string
}

// CheckoutResult is the gateway's callback payload.
type CheckoutResult struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Verification converts r into the verify-payment request body.
func (r CheckoutResult) Verification() models.PaymentVerification {
	return models.PaymentVerification{OrderID: r.OrderID, PaymentID: r.PaymentID, Signature: r.Signature}
}

// Gateway runs one checkout.
type Gateway interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
}

// RequestFor builds the checkout request for an open payment dialog.
func RequestFor(m models.PaymentModalState) (CheckoutRequest, error) {
	if !m.IsOpen || m.OrderID == "" {
		return CheckoutRequest{}, errors.New("no payment pending")
	}
	amount := m.AmountInPaise
	if amount == 0 {
		amount = int64(math.Round(m.Amount * 100))
	}
	return CheckoutRequest{
		KeyID:    m.RazorpayKeyID,
		OrderID:  m.OrderID,
		Amount:   amount,
		Currency: m.Currency,
		PlanName: m.PlanName,
		Email:    m.UserEmail,
		Phone:    m.UserPhone,
	}, nil
}

// Verifier is the settings store side of the flow.
type Verifier interface {
	VerifyPayment(ctx context.Context, v models.PaymentVerification) (*models.VerificationResponse, error)
	ClosePayment()
}

// Complete runs the checkout for the open dialog and forwards the result
// for verification. Cancelling closes the dialog; any other failure leaves
// it open so verification can be retried.
func Complete(ctx context.Context, gw Gateway, m models.PaymentModalState, v Verifier) (*models.VerificationResponse, error) {
	req, err := RequestFor(m)
	if err != nil {
		return nil, err
	}

	res, err := gw.Checkout(ctx, req)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			v.ClosePayment()
		}
		return nil, fmt.Errorf("checkout: %w", err)
	}
	if res.OrderID == "" {
		res.OrderID = req.OrderID
	}

	return v.VerifyPayment(ctx, res.Verification())
}
