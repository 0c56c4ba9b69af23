package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	LoginStaff(ctx context.Context, username, password string) (string, error)
	LoginClient(ctx context.Context, username, password string) (string, error)
	ParseToken(token string) (model.Principal, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	RegisterOrder(ctx context.Context, client string, items []model.LineItem, discount decimal.Decimal) (*model.Checkout, error)
	RetryCheckout(ctx context.Context, sheet int64) (*model.Checkout, error)
	UpdateOrderStatus(ctx context.Context, sheet int64, status model.OrderStatus) (model.MutationResult, error)
	CancelOrder(ctx context.Context, sheet int64) (model.MutationResult, error)
	Order(ctx context.Context, sheet int64) (model.Row, error)
	OrderDetails(ctx context.Context, sheet int64) ([]model.Row, error)
	ClientOrders(ctx context.Context, client string) ([]model.Row, error)
	FilterOrders(ctx context.Context, filter model.OrderFilter) ([]model.Row, error)
	SearchOrders(ctx context.Context, search model.OrderSearch) ([]model.Row, error)
}

// PaymentFacade consumes signed payment gateway events.
type PaymentFacade interface {
	ConfirmPayment(ctx context.Context, payload []byte, signature string) error
}

// ClientFacade manages client accounts.
type ClientFacade interface {
	RegisterClient(ctx context.Context, client model.Client) (model.MutationResult, error)
	SignInWithIdentity(ctx context.Context, client model.Client) (string, bool, error)
	Client(ctx context.Context, username string) (model.Row, error)
}

// ProductFacade manages the product catalog.
type ProductFacade interface {
	RegisterProduct(ctx context.Context, product model.Product) (model.MutationResult, error)
	Product(ctx context.Context, code string) (model.Row, error)
}

// HealthFacade reports whether the store is reachable.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// DeskFacade aggregates the full set of operations used across handlers.
type DeskFacade interface {
	AuthFacade
	OrderFacade
	PaymentFacade
	ClientFacade
	ProductFacade
	HealthFacade
}
