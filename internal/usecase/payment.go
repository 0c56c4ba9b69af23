package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// PaymentUseCase bridges orders and the payment gateway.
type PaymentUseCase struct {
	gateway     CheckoutGateway
	verifier    EventVerifier
	transitions *Transitions
	notifier    Notifier
	timeout     time.Duration
	logger      *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase. A zero timeout leaves gateway
// calls bounded only by the caller's context.
func NewPaymentUseCase(
	gateway CheckoutGateway,
	verifier EventVerifier,
	transitions *Transitions,
	notifier Notifier,
	timeout time.Duration,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		gateway:     gateway,
		verifier:    verifier,
		transitions: transitions,
		notifier:    notifier,
		timeout:     timeout,
		logger:      logger,
	}
}

// CreateSession opens a remote checkout session and returns its URL.
func (u *PaymentUseCase) CreateSession(ctx context.Context, req model.SessionRequest) (string, error) {
	if req.Amount < 0 {
		return "", &domainErrors.PaymentGatewayError{Sheet: req.Sheet, Err: fmt.Errorf("negative amount %d", req.Amount)}
	}
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	url, err := u.gateway.CreateSession(ctx, req)
	if err != nil {
		return "", &domainErrors.PaymentGatewayError{Sheet: req.Sheet, Err: err}
	}
	return url, nil
}

// HandleConfirmationEvent verifies a gateway event and reconciles the order
// it refers to. A nil error means the event may be acknowledged.
func (u *PaymentUseCase) HandleConfirmationEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := u.verifier.Verify(payload, signature)
	if err != nil {
		u.logger.Warn("payment event rejected", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", domainErrors.ErrInvalidSignature, err)
	}

	logger := u.logger.With(
		slog.String("event_id", event.ID),
		slog.String("event_type", event.Type),
		slog.Int64("sheet", event.Sheet),
	)

	switch event.Kind {
	case model.PaymentEventCompleted:
		return u.confirm(ctx, event, logger)
	case model.PaymentEventPending:
		logger.Info("payment pending")
	case model.PaymentEventFailed, model.PaymentEventExpired:
		logger.Warn("payment not completed, order stays payable")
	default:
		logger.Debug("payment event ignored")
	}
	return nil
}

func (u *PaymentUseCase) confirm(ctx context.Context, event model.PaymentEvent, logger *slog.Logger) error {
	if event.Sheet <= 0 {
		logger.Warn("completed payment carries no order reference")
		return nil
	}

	result, err := u.transitions.Apply(ctx, event.Sheet, model.OrderStatusPaid, nil)
	if err != nil {
		logger.Error("payment confirmation failed", slog.String("error", err.Error()))
		return err
	}
	if result.Advisory != "" {
		logger.Info("payment already confirmed", slog.String("advisory", result.Advisory))
		return nil
	}

	if event.CustomerEmail == "" {
		return nil
	}
	n, err := paymentReceivedMail(event.CustomerEmail, event.Sheet)
	if err != nil {
		logger.Error("render payment mail", slog.String("error", err.Error()))
		return nil
	}
	if !u.notifier.Enqueue(n) {
		logger.Warn("payment mail dropped")
	}
	return nil
}
