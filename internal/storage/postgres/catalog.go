package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

type clientRepository struct {
	gateway *Gateway
}

func (r *clientRepository) Register(ctx context.Context, c model.Client) (model.MutationResult, error) {
	return r.gateway.InvokeMutation(ctx, "register_client",
		c.Username, c.Name, c.FirstSurname, c.SecondSurname,
		c.Email, c.PasswordHash, c.ImageURL, c.Phone, c.Address)
}

func (r *clientRepository) Get(ctx context.Context, username string) (model.Row, error) {
	return first(r.gateway.InvokeQuery(ctx, "get_client", username))
}

func (r *clientRepository) PasswordHash(ctx context.Context, username string) (string, error) {
	row, err := first(r.gateway.InvokeQuery(ctx, "client_credentials", username))
	if err != nil {
		return "", err
	}
	return toString(row["password_hash"]), nil
}

type productRepository struct {
	gateway *Gateway
}

func (r *productRepository) Register(ctx context.Context, p model.Product) (model.MutationResult, error) {
	return r.gateway.InvokeMutation(ctx, "register_product",
		p.Code, p.Name, p.Description, p.Price, p.Quantity, p.ImageURL)
}

func (r *productRepository) Get(ctx context.Context, code string) (model.Row, error) {
	return first(r.gateway.InvokeQuery(ctx, "get_product", code))
}

type staffRepository struct {
	gateway *Gateway
}

func (r *staffRepository) PasswordHash(ctx context.Context, username string) (string, error) {
	row, err := first(r.gateway.InvokeQuery(ctx, "staff_credentials", username))
	if err != nil {
		return "", err
	}
	return toString(row["password_hash"]), nil
}

func first(rows []model.Row, err error) (model.Row, error) {
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return rows[0], nil
}
