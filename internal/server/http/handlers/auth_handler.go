package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/dispatch"
	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

// AuthHandler processes staff and client logins.
type AuthHandler struct {
	facade     AuthFacade
	dispatcher *dispatch.Dispatcher
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, dispatcher *dispatch.Dispatcher) *AuthHandler {
	return &AuthHandler{facade: facade, dispatcher: dispatcher}
}

// LoginStaff handles POST /login.
func (h *AuthHandler) LoginStaff() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, loginStaffCmd, func(ctx context.Context, f dispatch.Fields) (dispatch.Envelope, error) {
		return h.login(ctx, f, h.facade.LoginStaff)
	})
}

// LoginClient handles POST /login/client.
func (h *AuthHandler) LoginClient() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, loginClientCmd, func(ctx context.Context, f dispatch.Fields) (dispatch.Envelope, error) {
		return h.login(ctx, f, h.facade.LoginClient)
	})
}

func (h *AuthHandler) login(
	ctx context.Context,
	f dispatch.Fields,
	login func(ctx context.Context, username, password string) (string, error),
) (dispatch.Envelope, error) {
	token, err := login(ctx, f.String(fieldUsername), f.String(fieldPassword))
	if err != nil {
		return dispatch.Envelope{}, err
	}
	return dispatch.Message(dto.TokenResponse{Token: token}, "login successful"), nil
}
