package usecase

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// CheckoutGateway mints remote checkout sessions and returns their URL.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, req model.SessionRequest) (string, error)
}

// EventVerifier authenticates a raw gateway event against its signature header.
type EventVerifier interface {
	Verify(payload []byte, signature string) (model.PaymentEvent, error)
}

// SessionCreator is the part of payments the order lifecycle depends on.
type SessionCreator interface {
	CreateSession(ctx context.Context, req model.SessionRequest) (string, error)
}

// Notifier queues e-mails for asynchronous delivery. It reports false when
// the notification was dropped.
type Notifier interface {
	Enqueue(n model.Notification) bool
}
