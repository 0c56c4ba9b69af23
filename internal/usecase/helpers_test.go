package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/polkiloo/orderdesk/internal/domain/model"
	pkgAuth "github.com/polkiloo/orderdesk/internal/pkg/auth"
	testhelpers "github.com/polkiloo/orderdesk/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func staffCtx() context.Context {
	return pkgAuth.WithPrincipal(context.Background(), model.Principal{Subject: "admin", Role: model.RoleStaff})
}

func clientCtx(name string) context.Context {
	return pkgAuth.WithPrincipal(context.Background(), model.Principal{Subject: name, Role: model.RoleClient})
}

var testSettings = CheckoutSettings{
	Currency:   "mxn",
	SuccessURL: "https://shop.test/checkout/success",
	CancelURL:  "https://shop.test/checkout/cancel",
}

type orderFixture struct {
	store     *testhelpers.OrderStore
	gateway   *testhelpers.CheckoutGatewayStub
	notifier  *testhelpers.NotifierStub
	orders    *OrderUseCase
	payments  *PaymentUseCase
	signature string
}

func newOrderFixture(event model.PaymentEvent) *orderFixture {
	f := &orderFixture{
		store:     testhelpers.NewOrderStore(map[string]string{"P1": "50", "P2": "12.50"}),
		gateway:   &testhelpers.CheckoutGatewayStub{},
		notifier:  &testhelpers.NotifierStub{},
		signature: "t=1,v1=valid",
	}
	logger := discardLogger()
	transitions := NewTransitions(f.store, logger)
	verifier := testhelpers.EventVerifierStub{Signature: f.signature, Event: event}
	f.payments = NewPaymentUseCase(f.gateway, verifier, transitions, f.notifier, 0, logger)
	f.orders = NewOrderUseCase(f.store, transitions, f.payments, testSettings, logger)
	return f
}
