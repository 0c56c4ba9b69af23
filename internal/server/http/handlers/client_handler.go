package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/dispatch"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

// ClientHandler manages client accounts.
type ClientHandler struct {
	facade     ClientFacade
	dispatcher *dispatch.Dispatcher
}

// NewClientHandler constructs ClientHandler.
func NewClientHandler(facade ClientFacade, dispatcher *dispatch.Dispatcher) *ClientHandler {
	return &ClientHandler{facade: facade, dispatcher: dispatcher}
}

// Register handles POST /clients. The profile image arrives as the multipart
// file image_url.
func (h *ClientHandler) Register() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, registerClientCmd, func(ctx context.Context, f dispatch.Fields) (dispatch.Envelope, error) {
		result, err := h.facade.RegisterClient(ctx, model.Client{
			Username:      f.String(fieldUsername),
			Name:          f.String(fieldName),
			FirstSurname:  f.String(fieldFirstSurname),
			SecondSurname: f.String(fieldSecondSurname),
			Email:         f.String(fieldEmail),
			PasswordHash:  f.String(fieldPassword),
			ImageURL:      f.String(fieldImageURL),
			Phone:         f.String(fieldPhone),
			Address:       f.String(fieldAddress),
		})
		if err != nil {
			return dispatch.Envelope{}, err
		}
		return mutation(result, "client registered"), nil
	})
}

// SignInWithGoogle handles POST /clients/google.
func (h *ClientHandler) SignInWithGoogle() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, googleSignInCmd, func(ctx context.Context, f dispatch.Fields) (dispatch.Envelope, error) {
		token, created, err := h.facade.SignInWithIdentity(ctx, model.Client{
			Username:     f.String(dispatch.FieldSubject),
			Name:         f.String(dispatch.FieldGivenName),
			FirstSurname: f.String(dispatch.FieldFamilyName),
			Email:        f.String(dispatch.FieldEmail),
			PasswordHash: f.String(dispatch.FieldSecret),
			ImageURL:     f.String(dispatch.FieldPicture),
		})
		if err != nil {
			return dispatch.Envelope{}, err
		}
		message := "signed in with Google"
		if created {
			message = "account created and signed in with Google"
		}
		return dispatch.Message(dto.SignInResponse{Token: token, Created: created}, message), nil
	})
}

// Get handles GET /clients/:client.
func (h *ClientHandler) Get() gin.HandlerFunc {
	return dispatch.Handle(h.dispatcher, getClientCmd, func(ctx context.Context, username string) (dispatch.Envelope, error) {
		row, err := h.facade.Client(ctx, username)
		if err != nil {
			return dispatch.Envelope{}, err
		}
		return dispatch.Data(row), nil
	})
}
