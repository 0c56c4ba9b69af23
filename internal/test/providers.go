package test

import (
	"context"
	"fmt"
	"sync"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// AssetStoreStub records uploads and returns a URL derived from the filename.
type AssetStoreStub struct {
	Err error

	mu      sync.Mutex
	Uploads []model.Asset
}

func (s *AssetStoreStub) Upload(ctx context.Context, asset model.Asset, category string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Uploads = append(s.Uploads, asset)
	return fmt.Sprintf("https://assets.test/%s/%s", category, asset.Filename), nil
}

// IdentityVerifierStub resolves any token to Identity unless Err is set.
type IdentityVerifierStub struct {
	Identity model.Identity
	Err      error
	Tokens   []string
}

func (s *IdentityVerifierStub) Verify(ctx context.Context, token string) (model.Identity, error) {
	s.Tokens = append(s.Tokens, token)
	if s.Err != nil {
		return model.Identity{}, s.Err
	}
	return s.Identity, nil
}

// CheckoutGatewayStub records session requests.
type CheckoutGatewayStub struct {
	Err      error
	CreateFn func(context.Context, model.SessionRequest) (string, error)

	mu       sync.Mutex
	Requests []model.SessionRequest
}

func (s *CheckoutGatewayStub) CreateSession(ctx context.Context, req model.SessionRequest) (string, error) {
	s.mu.Lock()
	s.Requests = append(s.Requests, req)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	if s.Err != nil {
		return "", s.Err
	}
	return fmt.Sprintf("https://checkout.test/%d", req.Sheet), nil
}

// Calls returns the number of recorded requests.
func (s *CheckoutGatewayStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Requests)
}

// EventVerifierStub returns Event when the signature equals Signature.
type EventVerifierStub struct {
	Signature string
	Event     model.PaymentEvent
}

func (s EventVerifierStub) Verify(payload []byte, signature string) (model.PaymentEvent, error) {
	if signature != s.Signature {
		return model.PaymentEvent{}, fmt.Errorf("signature mismatch")
	}
	return s.Event, nil
}

// NotifierStub collects queued notifications.
type NotifierStub struct {
	Drop bool

	mu   sync.Mutex
	Sent []model.Notification
}

func (s *NotifierStub) Enqueue(n model.Notification) bool {
	if s.Drop {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, n)
	return true
}

// Notifications returns a snapshot of the queued notifications.
func (s *NotifierStub) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification(nil), s.Sent...)
}

// MailSenderStub records delivered notifications.
type MailSenderStub struct {
	SendFn func(context.Context, model.Notification) bool

	mu        sync.Mutex
	Delivered []model.Notification
}

func (s *MailSenderStub) Send(ctx context.Context, n model.Notification) bool {
	if s.SendFn != nil && !s.SendFn(ctx, n) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Delivered = append(s.Delivered, n)
	return true
}

// Count returns the number of delivered notifications.
func (s *MailSenderStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Delivered)
}
