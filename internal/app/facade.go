package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/usecase"
)

// HealthChecker reports whether the store answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DeskFacade exposes the use cases behind a single surface for transports.
type DeskFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	clients  *usecase.ClientUseCase
	products *usecase.ProductUseCase
	health   HealthChecker
}

func NewDeskFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	clients *usecase.ClientUseCase,
	products *usecase.ProductUseCase,
	health HealthChecker,
) *DeskFacade {
	return &DeskFacade{
		auth:     auth,
		orders:   orders,
		payments: payments,
		clients:  clients,
		products: products,
		health:   health,
	}
}

func (f *DeskFacade) LoginStaff(ctx context.Context, username, password string) (string, error) {
	return f.auth.LoginStaff(ctx, username, password)
}

func (f *DeskFacade) LoginClient(ctx context.Context, username, password string) (string, error) {
	return f.auth.LoginClient(ctx, username, password)
}

func (f *DeskFacade) ParseToken(token string) (model.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *DeskFacade) RegisterOrder(ctx context.Context, client string, items []model.LineItem, discount decimal.Decimal) (*model.Checkout, error) {
	return f.orders.Register(ctx, client, items, discount)
}

func (f *DeskFacade) RetryCheckout(ctx context.Context, sheet int64) (*model.Checkout, error) {
	return f.orders.RetryCheckout(ctx, sheet)
}

func (f *DeskFacade) UpdateOrderStatus(ctx context.Context, sheet int64, status model.OrderStatus) (model.MutationResult, error) {
	return f.orders.UpdateStatus(ctx, sheet, status)
}

func (f *DeskFacade) CancelOrder(ctx context.Context, sheet int64) (model.MutationResult, error) {
	return f.orders.Cancel(ctx, sheet)
}

func (f *DeskFacade) Order(ctx context.Context, sheet int64) (model.Row, error) {
	return f.orders.Get(ctx, sheet)
}

func (f *DeskFacade) OrderDetails(ctx context.Context, sheet int64) ([]model.Row, error) {
	return f.orders.Details(ctx, sheet)
}

func (f *DeskFacade) ClientOrders(ctx context.Context, client string) ([]model.Row, error) {
	return f.orders.ByClient(ctx, client)
}

func (f *DeskFacade) FilterOrders(ctx context.Context, filter model.OrderFilter) ([]model.Row, error) {
	return f.orders.Filter(ctx, filter)
}

func (f *DeskFacade) SearchOrders(ctx context.Context, search model.OrderSearch) ([]model.Row, error) {
	return f.orders.Search(ctx, search)
}

func (f *DeskFacade) ConfirmPayment(ctx context.Context, payload []byte, signature string) error {
	return f.payments.HandleConfirmationEvent(ctx, payload, signature)
}

func (f *DeskFacade) RegisterClient(ctx context.Context, client model.Client) (model.MutationResult, error) {
	return f.clients.Register(ctx, client)
}

func (f *DeskFacade) SignInWithIdentity(ctx context.Context, client model.Client) (string, bool, error) {
	return f.clients.SignInWithIdentity(ctx, client)
}

func (f *DeskFacade) Client(ctx context.Context, username string) (model.Row, error) {
	return f.clients.Get(ctx, username)
}

func (f *DeskFacade) RegisterProduct(ctx context.Context, product model.Product) (model.MutationResult, error) {
	return f.products.Register(ctx, product)
}

func (f *DeskFacade) Product(ctx context.Context, code string) (model.Row, error) {
	return f.products.Get(ctx, code)
}

func (f *DeskFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
