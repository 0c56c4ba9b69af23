// Package payment talks to Stripe: it creates checkout sessions and verifies
// the webhook events Stripe sends back.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// MetadataOrder is the session metadata key holding the order sheet.
const MetadataOrder = "order"

type sessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// CheckoutGateway creates Stripe Checkout sessions.
type CheckoutGateway struct {
	sessions sessionAPI
	logger   *slog.Logger
}

// NewCheckoutGateway builds a gateway backed by the Stripe API.
func NewCheckoutGateway(apiKey string, backends *stripe.Backends, logger *slog.Logger) (*CheckoutGateway, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("stripe: api key is required")
	}
	sc := client.New(apiKey, backends)
	return newCheckoutGateway(sc.CheckoutSessions, logger), nil
}

func newCheckoutGateway(sessions sessionAPI, logger *slog.Logger) *CheckoutGateway {
	return &CheckoutGateway{sessions: sessions, logger: logger}
}

// CreateSession opens a one-item payment session for the whole order amount
// and returns the hosted checkout URL.
func (g *CheckoutGateway) CreateSession(ctx context.Context, req model.SessionRequest) (string, error) {
	sheet := strconv.FormatInt(req.Sheet, 10)
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Pedido #" + sheet),
					},
				},
			},
		},
		Metadata: map[string]string{MetadataOrder: sheet},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{MetadataOrder: sheet},
		},
	}
	params.Context = ctx
	if key := strings.TrimSpace(req.IdempotencyKey); key != "" {
		params.SetIdempotencyKey(key)
	}

	session, err := g.sessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create checkout session: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("stripe: session %s has no url", session.ID)
	}

	g.logger.Info("checkout session created",
		slog.String("session", session.ID),
		slog.Int64("sheet", req.Sheet),
		slog.Int64("amount", req.Amount),
	)
	return session.URL, nil
}
