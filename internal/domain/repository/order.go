package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, client string, items []model.LineItem, discount decimal.Decimal) (*model.Order, string, error)
	Find(ctx context.Context, sheet int64) (*model.Order, error)
	UpdateStatus(ctx context.Context, sheet int64, status model.OrderStatus) (model.MutationResult, error)
	Cancel(ctx context.Context, sheet int64) (model.MutationResult, error)
	Get(ctx context.Context, sheet int64) (model.Row, error)
	Details(ctx context.Context, sheet int64) ([]model.Row, error)
	ListByClient(ctx context.Context, client string) ([]model.Row, error)
	Filter(ctx context.Context, filter model.OrderFilter) ([]model.Row, error)
	Search(ctx context.Context, search model.OrderSearch) ([]model.Row, error)
}
