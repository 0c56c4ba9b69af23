package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/config"
	"github.com/polkiloo/orderdesk/internal/usecase"
)

// Module exposes the Stripe gateway and webhook verifier to the fx graph.
var Module = fx.Provide(newGateway, newVerifier)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (usecase.CheckoutGateway, error) {
	return NewCheckoutGateway(p.Config.StripeSecretKey, nil, p.Logger)
}

func newVerifier(cfg *config.Config) (usecase.EventVerifier, error) {
	return NewEventVerifier(cfg.StripeWebhookSecret)
}
