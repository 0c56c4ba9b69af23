package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// Checkout session event types handled by reconciliation.
const (
	EventSessionCompleted      = "checkout.session.completed"
	EventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	EventAsyncPaymentFailed    = "checkout.session.async_payment_failed"
	EventSessionExpired        = "checkout.session.expired"
)

// EventVerifier authenticates Stripe webhook deliveries.
type EventVerifier struct {
	secret    string
	tolerance time.Duration
}

// NewEventVerifier creates a verifier for the endpoint signing secret.
func NewEventVerifier(secret string) (*EventVerifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("stripe: webhook secret is required")
	}
	return &EventVerifier{secret: secret, tolerance: webhook.DefaultTolerance}, nil
}

// Verify checks the Stripe-Signature header and reduces the event to what
// reconciliation needs.
func (v *EventVerifier) Verify(payload []byte, signature string) (model.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return model.PaymentEvent{}, err
	}

	result := model.PaymentEvent{ID: event.ID, Type: string(event.Type), Kind: model.PaymentEventIgnored}
	switch result.Type {
	case EventSessionCompleted, EventAsyncPaymentSucceeded, EventAsyncPaymentFailed, EventSessionExpired:
	default:
		return result, nil
	}

	if event.Data == nil {
		return model.PaymentEvent{}, fmt.Errorf("stripe: event %s carries no data", event.ID)
	}
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return model.PaymentEvent{}, fmt.Errorf("stripe: decode session: %w", err)
	}

	result.Kind = sessionKind(result.Type, session.PaymentStatus)
	result.Sheet = sheetFromMetadata(session.Metadata)
	result.CustomerEmail = session.CustomerEmail
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		result.CustomerEmail = session.CustomerDetails.Email
	}
	return result, nil
}

func sessionKind(eventType string, status stripe.CheckoutSessionPaymentStatus) model.PaymentEventKind {
	switch eventType {
	case EventSessionCompleted:
		// Delayed payment methods complete the session before the money arrives.
		if status == stripe.CheckoutSessionPaymentStatusUnpaid {
			return model.PaymentEventPending
		}
		return model.PaymentEventCompleted
	case EventAsyncPaymentSucceeded:
		return model.PaymentEventCompleted
	case EventAsyncPaymentFailed:
		return model.PaymentEventFailed
	case EventSessionExpired:
		return model.PaymentEventExpired
	}
	return model.PaymentEventIgnored
}

func sheetFromMetadata(metadata map[string]string) int64 {
	sheet, err := strconv.ParseInt(strings.TrimSpace(metadata[MetadataOrder]), 10, 64)
	if err != nil || sheet <= 0 {
		return 0
	}
	return sheet
}
