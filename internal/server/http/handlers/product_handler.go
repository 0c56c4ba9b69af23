package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/dispatch"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// ProductHandler manages the catalog.
type ProductHandler struct {
	facade     ProductFacade
	dispatcher *dispatch.Dispatcher
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade, dispatcher *dispatch.Dispatcher) *ProductHandler {
	return &ProductHandler{facade: facade, dispatcher: dispatcher}
}

// Register handles POST /products.
func (h *ProductHandler) Register() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, registerProductCmd, func(ctx context.Context, f dispatch.Fields) (dispatch.Envelope, error) {
		price, err := f.Decimal(fieldPrice)
		if err != nil {
			return dispatch.Envelope{}, err
		}
		quantity, err := f.Int(fieldQuantity)
		if err != nil {
			return dispatch.Envelope{}, err
		}

		result, err := h.facade.RegisterProduct(ctx, model.Product{
			Code:        f.String(fieldCode),
			Name:        f.String(fieldName),
			Description: f.String(fieldDescription),
			Price:       price,
			Quantity:    quantity,
			ImageURL:    f.String(fieldImageURL),
		})
		if err != nil {
			return dispatch.Envelope{}, err
		}
		return mutation(result, "product registered"), nil
	})
}

// Get handles GET /products/:code.
func (h *ProductHandler) Get() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, getProductCmd, func(ctx context.Context, code string) (dispatch.Envelope, error) {
		row, err := h.facade.Product(ctx, code)
		if err != nil {
			return dispatch.Envelope{}, err
		}
		return dispatch.Data(row), nil
	})
}
