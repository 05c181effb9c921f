package models

import (
	"slices"

	"github.com/dmitrijs2005/docmind/internal/timex"
)

// Plans accepted by the upgrade endpoint.
const (
	PlanStarter    = "Starter"
	PlanPro        = "Pro"
	PlanEnterprise = "Enterprise"
)

// Plans lists the upgradeable plans in ascending order.
var Plans = []string{PlanStarter, PlanPro, PlanEnterprise}

// ValidPlan reports whether name is one of Plans.
func ValidPlan(name string) bool {
	return slices.Contains(Plans, name)
}

// BillingRecord is one invoice.
type BillingRecord struct {
	ID            int        `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	Date          timex.Time `json:"date"`
}

// Subscription is the user's current plan and usage. Usage counters are
// server-owned; the client only re-fetches them.
type Subscription struct {
	ID             int             `json:"id"`
	UserID         string          `json:"user_id"`
	PlanName       string          `json:"plan_name"`
	Price          float64         `json:"price"`
	Period         string          `json:"period"`
	Active         bool            `json:"active"`
	DocumentsUsed  int             `json:"documents_used"`
	DocumentsLimit int             `json:"documents_limit"`
	QueriesUsed    int             `json:"queries_used"`
	QueriesLimit   int             `json:"queries_limit"`
	StorageUsed    float64         `json:"storage_used"`
	StorageLimit   float64         `json:"storage_limit"`
	StartDate      timex.Time      `json:"start_date"`
	EndDate        *timex.Time     `json:"end_date,omitempty"`
	BillingHistory []BillingRecord `json:"billing_history"`
}

// UpgradeResponse is returned by POST /settings/subscription/upgrade. When
// RequiresPayment is set, the order fields describe the checkout to run.
type UpgradeResponse struct {
	Success         bool          `json:"success"`
	RequiresPayment bool          `json:"requires_payment"`
	Message         string        `json:"message"`
	OrderID         string        `json:"order_id,omitempty"`
	Amount          float64       `json:"amount,omitempty"`
	AmountInPaise   int64         `json:"amount_in_paise,omitempty"`
	Currency        string        `json:"currency,omitempty"`
	PlanName        string        `json:"plan_name,omitempty"`
	KeyID           string        `json:"key_id,omitempty"`
	UserEmail       string        `json:"user_email,omitempty"`
	UserPhone       string        `json:"user_phone,omitempty"`
	UserID          string        `json:"user_id,omitempty"`
	Subscription    *Subscription `json:"subscription,omitempty"`
}

// PaymentVerification is the body of the verify-payment endpoint. The
// values are the gateway's, forwarded untouched.
type PaymentVerification struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// VerificationResponse is returned by the verify-payment endpoint.
type VerificationResponse struct {
	Success       bool          `json:"success"`
	Message       string        `json:"message"`
	Subscription  *Subscription `json:"subscription,omitempty"`
	InvoiceNumber string        `json:"invoice_number,omitempty"`
	OrderID       string        `json:"order_id,omitempty"`
	PaymentID     string        `json:"payment_id,omitempty"`
}

// PaymentModalState is the transient checkout dialog. Never persisted.
type PaymentModalState struct {
	IsOpen        bool
	PlanName      string
	OrderID       string
	Amount        float64
	AmountInPaise int64
	Currency      string
	RazorpayKeyID string
	UserEmail     string
	UserPhone     string
}
