package repository

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// ClientRepository describes persistence operations for clients.
type ClientRepository interface {
	Register(ctx context.Context, client model.Client) (model.MutationResult, error)
	Get(ctx context.Context, username string) (model.Row, error)
	PasswordHash(ctx context.Context, username string) (string, error)
}

// ProductRepository describes persistence operations for catalog products.
type ProductRepository interface {
	Register(ctx context.Context, product model.Product) (model.MutationResult, error)
	Get(ctx context.Context, code string) (model.Row, error)
}

// StaffRepository resolves staff credentials.
type StaffRepository interface {
	PasswordHash(ctx context.Context, username string) (string, error)
}
