package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/config"
	"github.com/polkiloo/orderdesk/internal/dispatch"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

const (
	signatureHeader = "Stripe-Signature"
	maxEventBytes   = 1 << 16
)

// PaymentHandler receives payment gateway events.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Webhook handles POST /webhook. The body is passed on unparsed because the
// signature covers its exact bytes. Any failure answers 400 so the gateway
// redelivers the event.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxEventBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, dispatch.Envelope{Message: "unreadable event body", Error: err.Error()})
		return
	}

	err = h.facade.ConfirmPayment(c.Request.Context(), payload, c.GetHeader(signatureHeader))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dispatch.Envelope{Success: true, Message: "event processed"})
	case errors.Is(err, domainErrors.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, dispatch.Envelope{Message: "invalid signature", Error: err.Error()})
	default:
		c.JSON(http.StatusBadRequest, dispatch.Envelope{Message: "event not processed", Error: err.Error()})
	}
}

// CheckoutResult handles GET /checkout/:status, where the gateway sends the
// customer back. Payment itself is only confirmed by the webhook.
func (h *PaymentHandler) CheckoutResult(c *gin.Context) {
	status := c.Param("status")
	switch status {
	case config.CheckoutSuccess:
		c.JSON(http.StatusOK, dispatch.Message(dto.CheckoutResultResponse{Status: status},
			"payment submitted, the order is marked paid once the gateway confirms it"))
	case config.CheckoutCancel:
		c.JSON(http.StatusOK, dispatch.Message(dto.CheckoutResultResponse{Status: status},
			"payment cancelled, the order can still be paid"))
	default:
		c.JSON(http.StatusNotFound, dispatch.Envelope{Message: "unknown checkout outcome"})
	}
}
