package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

const (
	routineRegisterOrder     = "register_order"
	routineUpdateOrderStatus = "update_order_status"
	routineCancelOrder       = "cancel_order"
	routineGetOrder          = "get_order"
	routineGetOrderDetails   = "get_order_details"
	routineOrdersByClient    = "get_orders_by_client"
	routineFilterOrders      = "filter_orders"
	routineSearchOrders      = "search_orders"
)

type orderRepository struct {
	gateway *Gateway
}

// Create registers the order; sheet and total are assigned by the store.
func (r *orderRepository) Create(ctx context.Context, client string, items []model.LineItem, discount decimal.Decimal) (*model.Order, string, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, "", fmt.Errorf("encode items: %w", err)
	}

	result, err := r.gateway.InvokeMutation(ctx, routineRegisterOrder, client, string(payload), discount, nil, nil)
	if err != nil {
		return nil, "", err
	}
	if len(result.Rows) == 0 {
		return nil, "", &domainErrors.DataAccessError{Routine: routineRegisterOrder, Message: "no sheet returned"}
	}

	row := result.Rows[0]
	sheet, err := toInt64(row["sheet"])
	if err != nil {
		return nil, "", &domainErrors.DataAccessError{Routine: routineRegisterOrder, Message: err.Error(), Err: err}
	}
	total, err := toDecimal(row["total"])
	if err != nil {
		return nil, "", &domainErrors.DataAccessError{Routine: routineRegisterOrder, Message: err.Error(), Err: err}
	}

	return &model.Order{
		Sheet:     sheet,
		Client:    client,
		Items:     items,
		Discount:  discount,
		Total:     total,
		Status:    model.OrderStatusCreated,
		CreatedAt: time.Now(),
	}, result.Advisory, nil
}

func (r *orderRepository) Find(ctx context.Context, sheet int64) (*model.Order, error) {
	row, err := r.Get(ctx, sheet)
	if err != nil {
		return nil, err
	}

	discount, err := toDecimal(row["discount"])
	if err != nil {
		return nil, &domainErrors.DataAccessError{Routine: routineGetOrder, Message: err.Error(), Err: err}
	}
	total, err := toDecimal(row["total"])
	if err != nil {
		return nil, &domainErrors.DataAccessError{Routine: routineGetOrder, Message: err.Error(), Err: err}
	}

	return &model.Order{
		Sheet:     sheet,
		Client:    toString(row["client"]),
		Discount:  discount,
		Total:     total,
		Status:    model.OrderStatus(toString(row["status"])),
		CreatedAt: toTime(row["created_at"]),
	}, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, sheet int64, status model.OrderStatus) (model.MutationResult, error) {
	return r.gateway.InvokeMutation(ctx, routineUpdateOrderStatus, sheet, string(status))
}

func (r *orderRepository) Cancel(ctx context.Context, sheet int64) (model.MutationResult, error) {
	return r.gateway.InvokeMutation(ctx, routineCancelOrder, sheet)
}

func (r *orderRepository) Get(ctx context.Context, sheet int64) (model.Row, error) {
	rows, err := r.gateway.InvokeQuery(ctx, routineGetOrder, sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return rows[0], nil
}

// Details lists line items; every registered order has at least one.
func (r *orderRepository) Details(ctx context.Context, sheet int64) ([]model.Row, error) {
	rows, err := r.gateway.InvokeQuery(ctx, routineGetOrderDetails, sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return rows, nil
}

func (r *orderRepository) ListByClient(ctx context.Context, client string) ([]model.Row, error) {
	return r.gateway.InvokeQuery(ctx, routineOrdersByClient, client)
}

func (r *orderRepository) Filter(ctx context.Context, filter model.OrderFilter) ([]model.Row, error) {
	return r.gateway.InvokeQuery(ctx, routineFilterOrders, filter.Column, filter.Direction, filter.Limit, filter.Offset)
}

func (r *orderRepository) Search(ctx context.Context, search model.OrderSearch) ([]model.Row, error) {
	return r.gateway.InvokeQuery(ctx, routineSearchOrders, search.Term, search.Limit, search.Offset)
}
