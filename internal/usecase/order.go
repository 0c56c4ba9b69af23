package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
	pkgAuth "github.com/polkiloo/orderdesk/internal/pkg/auth"
)

const maxPageLimit = 100

var filterColumns = map[string]struct{}{
	"sheet":      {},
	"client":     {},
	"total":      {},
	"status":     {},
	"created_at": {},
}

// CheckoutSettings are the fixed parts of every checkout session.
type CheckoutSettings struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders      repository.OrderRepository
	transitions *Transitions
	sessions    SessionCreator
	settings    CheckoutSettings
	logger      *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	transitions *Transitions,
	sessions SessionCreator,
	settings CheckoutSettings,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:      orders,
		transitions: transitions,
		sessions:    sessions,
		settings:    settings,
		logger:      logger,
	}
}

// Register persists a new order and opens a checkout session for its total.
// When the session cannot be created the order stays CREATED and the returned
// PaymentGatewayError carries its sheet.
func (u *OrderUseCase) Register(ctx context.Context, client string, items []model.LineItem, discount decimal.Decimal) (*model.Checkout, error) {
	client = strings.TrimSpace(client)
	if err := validateOrder(client, items, discount); err != nil {
		return nil, err
	}
	if err := authorizeOwner(ctx, client); err != nil {
		return nil, err
	}

	order, advisory, err := u.orders.Create(ctx, client, items, discount)
	if err != nil {
		return nil, err
	}
	u.logger.Info("order registered",
		slog.Int64("sheet", order.Sheet),
		slog.String("client", order.Client),
		slog.String("total", order.Total.StringFixed(2)),
	)

	checkout, err := u.checkout(ctx, order, fmt.Sprintf("order-%d", order.Sheet))
	if err != nil {
		return nil, err
	}
	checkout.Advisory = advisory
	return checkout, nil
}

// RetryCheckout opens a fresh checkout session for an order that is still unpaid.
func (u *OrderUseCase) RetryCheckout(ctx context.Context, sheet int64) (*model.Checkout, error) {
	order, err := u.orders.Find(ctx, sheet)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(ctx, order.Client); err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusCreated {
		return nil, fmt.Errorf("%w: order %d is %s", domainErrors.ErrInvalidTransition, sheet, order.Status)
	}
	return u.checkout(ctx, order, fmt.Sprintf("order-%d-retry-%s", order.Sheet, ulid.Make()))
}

func (u *OrderUseCase) checkout(ctx context.Context, order *model.Order, key string) (*model.Checkout, error) {
	amount := model.MinorUnits(order.Total)
	url, err := u.sessions.CreateSession(ctx, model.SessionRequest{
		Sheet:          order.Sheet,
		Amount:         amount,
		Currency:       u.settings.Currency,
		SuccessURL:     u.settings.SuccessURL,
		CancelURL:      u.settings.CancelURL,
		IdempotencyKey: fmt.Sprintf("%s-%d", key, amount),
	})
	if err != nil {
		u.logger.Error("checkout session failed",
			slog.Int64("sheet", order.Sheet),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return &model.Checkout{Sheet: order.Sheet, Total: order.Total, URL: url}, nil
}

// UpdateStatus changes the order status on behalf of staff.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, sheet int64, status model.OrderStatus) (model.MutationResult, error) {
	if err := pkgAuth.RequireStaff(ctx); err != nil {
		return model.MutationResult{}, err
	}
	return u.transitions.Apply(ctx, sheet, status, nil)
}

// Cancel cancels an unpaid order and returns its items to stock.
func (u *OrderUseCase) Cancel(ctx context.Context, sheet int64) (model.MutationResult, error) {
	return u.transitions.Apply(ctx, sheet, model.OrderStatusCancelled, func(order *model.Order) error {
		return authorizeOwner(ctx, order.Client)
	})
}

func (u *OrderUseCase) Get(ctx context.Context, sheet int64) (model.Row, error) {
	row, err := u.orders.Get(ctx, sheet)
	if err != nil {
		return nil, err
	}
	client, _ := row["client"].(string)
	if err := authorizeOwner(ctx, client); err != nil {
		return nil, err
	}
	return row, nil
}

func (u *OrderUseCase) Details(ctx context.Context, sheet int64) ([]model.Row, error) {
	order, err := u.orders.Find(ctx, sheet)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(ctx, order.Client); err != nil {
		return nil, err
	}
	return u.orders.Details(ctx, sheet)
}

func (u *OrderUseCase) ByClient(ctx context.Context, client string) ([]model.Row, error) {
	client = strings.TrimSpace(client)
	if err := authorizeOwner(ctx, client); err != nil {
		return nil, err
	}
	return u.orders.ListByClient(ctx, client)
}

// Filter lists orders sorted by a whitelisted column.
func (u *OrderUseCase) Filter(ctx context.Context, filter model.OrderFilter) ([]model.Row, error) {
	if err := pkgAuth.RequireStaff(ctx); err != nil {
		return nil, err
	}

	filter.Column = strings.ToLower(strings.TrimSpace(filter.Column))
	if _, ok := filterColumns[filter.Column]; !ok {
		return nil, fmt.Errorf("%w: column %q", domainErrors.ErrInvalidField, filter.Column)
	}
	filter.Direction = strings.ToUpper(strings.TrimSpace(filter.Direction))
	if filter.Direction != "ASC" && filter.Direction != "DESC" {
		return nil, fmt.Errorf("%w: direction %q", domainErrors.ErrInvalidField, filter.Direction)
	}
	if err := validatePage(filter.Page); err != nil {
		return nil, err
	}
	return u.orders.Filter(ctx, filter)
}

// Search matches the term against order clients and product names.
func (u *OrderUseCase) Search(ctx context.Context, search model.OrderSearch) ([]model.Row, error) {
	if err := pkgAuth.RequireStaff(ctx); err != nil {
		return nil, err
	}

	search.Term = strings.TrimSpace(search.Term)
	if search.Term == "" {
		return nil, fmt.Errorf("%w: empty search term", domainErrors.ErrInvalidField)
	}
	if err := validatePage(search.Page); err != nil {
		return nil, err
	}
	return u.orders.Search(ctx, search)
}

func validateOrder(client string, items []model.LineItem, discount decimal.Decimal) error {
	if client == "" {
		return fmt.Errorf("%w: client is required", domainErrors.ErrInvalidOrder)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: no items", domainErrors.ErrInvalidOrder)
	}
	for i, item := range items {
		if strings.TrimSpace(item.Product) == "" {
			return fmt.Errorf("%w: item %d has no product", domainErrors.ErrInvalidOrder, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", domainErrors.ErrInvalidOrder, i)
		}
	}
	if discount.IsNegative() {
		return fmt.Errorf("%w: negative discount", domainErrors.ErrInvalidOrder)
	}
	return nil
}

func validatePage(p model.Page) error {
	if p.Limit <= 0 || p.Limit > maxPageLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", domainErrors.ErrInvalidField, maxPageLimit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: negative offset", domainErrors.ErrInvalidField)
	}
	return nil
}
