package model

import "github.com/shopspring/decimal"

// SessionRequest describes a remote checkout session for one order.
type SessionRequest struct {
	Sheet          int64
	Amount         int64
	Currency       string
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

// Checkout is the outcome of registering or re-paying an order.
type Checkout struct {
	Sheet    int64           `json:"sheet"`
	Total    decimal.Decimal `json:"total"`
	URL      string          `json:"url"`
	Advisory string          `json:"-"`
}

// PaymentEventKind classifies a verified payment gateway event.
type PaymentEventKind string

const (
	PaymentEventCompleted PaymentEventKind = "completed"
	PaymentEventPending   PaymentEventKind = "pending"
	PaymentEventFailed    PaymentEventKind = "failed"
	PaymentEventExpired   PaymentEventKind = "expired"
	PaymentEventIgnored   PaymentEventKind = "ignored"
)

// PaymentEvent is a verified gateway event reduced to what reconciliation needs.
// Sheet is zero when the event carries no order reference.
type PaymentEvent struct {
	ID            string
	Type          string
	Kind          PaymentEventKind
	Sheet         int64
	CustomerEmail string
}

// MinorUnits converts an amount to integer minor currency units, rounding
// half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
