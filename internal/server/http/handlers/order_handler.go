package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/dispatch"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade     OrderFacade
	dispatcher *dispatch.Dispatcher
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, dispatcher *dispatch.Dispatcher) *OrderHandler {
	return &OrderHandler{facade: facade, dispatcher: dispatcher}
}

// Register handles POST /orders.
func (h *OrderHandler) Register() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, registerOrderCmd, h.register)
}

// UpdateStatus handles PUT /orders.
func (h *OrderHandler) UpdateStatus() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, updateOrderCmd, h.updateStatus)
}

// Cancel handles DELETE /orders/:sheet.
func (h *OrderHandler) Cancel() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, cancelOrderCmd, h.cancel)
}

// RetryCheckout handles POST /orders/:sheet/checkout.
func (h *OrderHandler) RetryCheckout() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, retryCheckoutCmd, h.retryCheckout)
}

// Get handles GET /orders/:sheet.
func (h *OrderHandler) Get() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, getOrderCmd, func(ctx context.Context, raw string) (dispatch.Envelope, error) {
		sheet, err := parseSheet(raw)
		if err != nil {
			return dispatch.Envelope{}, err
		}
		row, err := h.facade.Order(ctx, sheet)
		if err != nil {
			return dispatch.Envelope{}, err
		}
		return dispatch.Data(row), nil
	})
}

// Details handles GET /orders/details/:sheet.
func (h *OrderHandler) Details() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, getOrderDetailsCmd, func(ctx context.Context, raw string) (dispatch.Envelope, error) {
		sheet, err := parseSheet(raw)
		if err != nil {
			return dispatch.Envelope{}, err
		}
		rows, err := h.facade.OrderDetails(ctx, sheet)
		if err != nil {
			return dispatch.Envelope{}, err
		}
		return dispatch.Data(rows), nil
	})
}

// ByClient handles GET /orders/client/:client.
func (h *OrderHandler) ByClient() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, getClientOrdersCmd, func(ctx context.Context, client string) (dispatch.Envelope, error) {
		rows, err := h.facade.ClientOrders(ctx, client)
		if err != nil {
			return dispatch.Envelope{}, err
		}
		return dispatch.Data(rows), nil
	})
}

// Filter handles POST /orders/filter.
func (h *OrderHandler) Filter() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, filterOrdersCmd, h.filter)
}

// Search handles POST /orders/search.
func (h *OrderHandler) Search() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, searchOrdersCmd, h.search)
}

func (h *OrderHandler) register(ctx context.Context, f dispatch.Fields) (dispatch.Envelope, error) {
	var items []model.LineItem
	if err := f.Decode(fieldItems, &items); err != nil {
		return dispatch.Envelope{}, err
	}
	discount, err := f.Decimal(fieldDiscount)
	if err != nil {
		return dispatch.Envelope{}, err
	}

	checkout, err := h.facade.RegisterOrder(ctx, f.String(fieldClient), items, discount)
	if err != nil {
		return dispatch.Envelope{}, err
	}
	message := checkout.Advisory
	if message == "" {
		message = "order registered"
	}
	return dispatch.Message(checkout, message), nil
}

func (h *OrderHandler) retryCheckout(ctx context.Context, raw string) (dispatch.Envelope, error) {
	sheet, err := parseSheet(raw)
	if err != nil {
		return dispatch.Envelope{}, err
	}
	checkout, err := h.facade.RetryCheckout(ctx, sheet)
	if err != nil {
		return dispatch.Envelope{}, err
	}
	return dispatch.Message(checkout, "checkout session created"), nil
}

func (h *OrderHandler) updateStatus(ctx context.Context, f dispatch.Fields) (dispatch.Envelope, error) {
	sheet, err := f.Int64(fieldSheet)
	if err != nil {
		return dispatch.Envelope{}, err
	}
	status := model.OrderStatus(strings.ToUpper(f.String(fieldStatus)))

	result, err := h.facade.UpdateOrderStatus(ctx, sheet, status)
	if err != nil {
		return dispatch.Envelope{}, err
	}
	return mutation(result, "order status updated"), nil
}

func (h *OrderHandler) cancel(ctx context.Context, raw string) (dispatch.Envelope, error) {
	sheet, err := parseSheet(raw)
	if err != nil {
		return dispatch.Envelope{}, err
	}
	result, err := h.facade.CancelOrder(ctx, sheet)
	if err != nil {
		return dispatch.Envelope{}, err
	}
	return mutation(result, "order cancelled"), nil
}

func (h *OrderHandler) filter(ctx context.Context, f dispatch.Fields) (dispatch.Envelope, error) {
	page, err := pageOf(f)
	if err != nil {
		return dispatch.Envelope{}, err
	}
	rows, err := h.facade.FilterOrders(ctx, model.OrderFilter{
		Column:    f.String(fieldColumn),
		Direction: f.String(fieldDirection),
		Page:      page,
	})
	if err != nil {
		return dispatch.Envelope{}, err
	}
	return dispatch.Data(rows), nil
}

func (h *OrderHandler) search(ctx context.Context, f dispatch.Fields) (dispatch.Envelope, error) {
	page, err := pageOf(f)
	if err != nil {
		return dispatch.Envelope{}, err
	}
	rows, err := h.facade.SearchOrders(ctx, model.OrderSearch{Term: f.String(fieldTerm), Page: page})
	if err != nil {
		return dispatch.Envelope{}, err
	}
	return dispatch.Data(rows), nil
}

func pageOf(f dispatch.Fields) (model.Page, error) {
	limit, err := f.Int(fieldLimit)
	if err != nil {
		return model.Page{}, err
	}
	offset, err := f.Int(fieldOffset)
	if err != nil {
		return model.Page{}, err
	}
	return model.Page{Limit: limit, Offset: offset}, nil
}
