package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// AuthFacadeStub allows overriding login and token parsing.
type AuthFacadeStub struct {
	LoginStaffFn  func(ctx context.Context, username, password string) (string, error)
	LoginClientFn func(ctx context.Context, username, password string) (string, error)
	ParseFn       func(token string) (model.Principal, error)
}

// LoginStaff returns "staff-token" unless overridden.
func (s AuthFacadeStub) LoginStaff(ctx context.Context, username, password string) (string, error) {
	if s.LoginStaffFn != nil {
		return s.LoginStaffFn(ctx, username, password)
	}
	return "staff-token", nil
}

// LoginClient returns "client-token" unless overridden.
func (s AuthFacadeStub) LoginClient(ctx context.Context, username, password string) (string, error) {
	if s.LoginClientFn != nil {
		return s.LoginClientFn(ctx, username, password)
	}
	return "client-token", nil
}

// ParseToken maps "client" to a client principal and anything else to staff.
func (s AuthFacadeStub) ParseToken(token string) (model.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if token == "client" {
		return model.Principal{Subject: "client", Role: model.RoleClient}, nil
	}
	return model.Principal{Subject: "staff", Role: model.RoleStaff}, nil
}

// OrderFacadeStub provides configurable order behaviour.
type OrderFacadeStub struct {
	RegisterFn func(ctx context.Context, client string, items []model.LineItem, discount decimal.Decimal) (*model.Checkout, error)
	RetryFn    func(ctx context.Context, sheet int64) (*model.Checkout, error)
	UpdateFn   func(ctx context.Context, sheet int64, status model.OrderStatus) (model.MutationResult, error)
	CancelFn   func(ctx context.Context, sheet int64) (model.MutationResult, error)
	OrderFn    func(ctx context.Context, sheet int64) (model.Row, error)
	DetailsFn  func(ctx context.Context, sheet int64) ([]model.Row, error)
	ByClientFn func(ctx context.Context, client string) ([]model.Row, error)
	FilterFn   func(ctx context.Context, filter model.OrderFilter) ([]model.Row, error)
	SearchFn   func(ctx context.Context, search model.OrderSearch) ([]model.Row, error)
}

// RegisterOrder returns a checkout for sheet 1 unless overridden.
func (s OrderFacadeStub) RegisterOrder(ctx context.Context, client string, items []model.LineItem, discount decimal.Decimal) (*model.Checkout, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, client, items, discount)
	}
	return &model.Checkout{Sheet: 1, URL: "https://checkout.test/1"}, nil
}

// RetryCheckout returns a checkout for sheet unless overridden.
func (s OrderFacadeStub) RetryCheckout(ctx context.Context, sheet int64) (*model.Checkout, error) {
	if s.RetryFn != nil {
		return s.RetryFn(ctx, sheet)
	}
	return &model.Checkout{Sheet: sheet, URL: "https://checkout.test/retry"}, nil
}

// UpdateOrderStatus succeeds unless overridden.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, sheet int64, status model.OrderStatus) (model.MutationResult, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, sheet, status)
	}
	return model.MutationResult{}, nil
}

// CancelOrder succeeds unless overridden.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, sheet int64) (model.MutationResult, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, sheet)
	}
	return model.MutationResult{}, nil
}

// Order returns a row carrying the sheet unless overridden.
func (s OrderFacadeStub) Order(ctx context.Context, sheet int64) (model.Row, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, sheet)
	}
	return model.Row{"sheet": sheet}, nil
}

// OrderDetails returns no rows unless overridden.
func (s OrderFacadeStub) OrderDetails(ctx context.Context, sheet int64) ([]model.Row, error) {
	if s.DetailsFn != nil {
		return s.DetailsFn(ctx, sheet)
	}
	return nil, nil
}

// ClientOrders returns no rows unless overridden.
func (s OrderFacadeStub) ClientOrders(ctx context.Context, client string) ([]model.Row, error) {
	if s.ByClientFn != nil {
		return s.ByClientFn(ctx, client)
	}
	return nil, nil
}

// FilterOrders returns no rows unless overridden.
func (s OrderFacadeStub) FilterOrders(ctx context.Context, filter model.OrderFilter) ([]model.Row, error) {
	if s.FilterFn != nil {
		return s.FilterFn(ctx, filter)
	}
	return nil, nil
}

// SearchOrders returns no rows unless overridden.
func (s OrderFacadeStub) SearchOrders(ctx context.Context, search model.OrderSearch) ([]model.Row, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, search)
	}
	return nil, nil
}

// PaymentFacadeStub records confirmed payloads.
type PaymentFacadeStub struct {
	ConfirmFn func(ctx context.Context, payload []byte, signature string) error
}

// ConfirmPayment succeeds unless overridden.
func (s PaymentFacadeStub) ConfirmPayment(ctx context.Context, payload []byte, signature string) error {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, payload, signature)
	}
	return nil
}

// ClientFacadeStub provides configurable client behaviour.
type ClientFacadeStub struct {
	RegisterFn func(ctx context.Context, client model.Client) (model.MutationResult, error)
	SignInFn   func(ctx context.Context, client model.Client) (string, bool, error)
	ClientFn   func(ctx context.Context, username string) (model.Row, error)
}

// RegisterClient succeeds unless overridden.
func (s ClientFacadeStub) RegisterClient(ctx context.Context, client model.Client) (model.MutationResult, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, client)
	}
	return model.MutationResult{}, nil
}

// SignInWithIdentity returns an existing-account token unless overridden.
func (s ClientFacadeStub) SignInWithIdentity(ctx context.Context, client model.Client) (string, bool, error) {
	if s.SignInFn != nil {
		return s.SignInFn(ctx, client)
	}
	return "client:" + client.Username, false, nil
}

// Client returns a row carrying the username unless overridden.
func (s ClientFacadeStub) Client(ctx context.Context, username string) (model.Row, error) {
	if s.ClientFn != nil {
		return s.ClientFn(ctx, username)
	}
	return model.Row{"username": username}, nil
}

// ProductFacadeStub provides configurable catalog behaviour.
type ProductFacadeStub struct {
	RegisterFn func(ctx context.Context, product model.Product) (model.MutationResult, error)
	ProductFn  func(ctx context.Context, code string) (model.Row, error)
}

// RegisterProduct succeeds unless overridden.
func (s ProductFacadeStub) RegisterProduct(ctx context.Context, product model.Product) (model.MutationResult, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, product)
	}
	return model.MutationResult{}, nil
}

// Product returns a row carrying the code unless overridden.
func (s ProductFacadeStub) Product(ctx context.Context, code string) (model.Row, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, code)
	}
	return model.Row{"code": code}, nil
}

// HealthFacadeStub reports Err from HealthCheck.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}

// DeskFacadeStub composes individual stubs into the aggregate facade.
type DeskFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
	ClientFacadeStub
	ProductFacadeStub
	HealthFacadeStub
}
