package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewTransitions,
		NewAuthUseCase,
		NewOrderUseCase,
		NewClientUseCase,
		NewProductUseCase,
		newPaymentUseCase,
		newCheckoutSettings,
		func(p *PaymentUseCase) SessionCreator { return p },
	),
)

type paymentParams struct {
	fx.In

	Gateway     CheckoutGateway
	Verifier    EventVerifier
	Transitions *Transitions
	Notifier    Notifier
	Config      *config.Config
	Logger      *slog.Logger
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Gateway, p.Verifier, p.Transitions, p.Notifier, p.Config.GatewayTimeout, p.Logger)
}

func newCheckoutSettings(cfg *config.Config) CheckoutSettings {
	return CheckoutSettings{
		Currency:   cfg.Currency,
		SuccessURL: cfg.CheckoutSuccessURL(),
		CancelURL:  cfg.CheckoutCancelURL(),
	}
}
