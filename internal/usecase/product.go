package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
	pkgAuth "github.com/polkiloo/orderdesk/internal/pkg/auth"
)

// ProductUseCase manages the catalog.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

func (u *ProductUseCase) Register(ctx context.Context, product model.Product) (model.MutationResult, error) {
	if err := pkgAuth.RequireStaff(ctx); err != nil {
		return model.MutationResult{}, err
	}
	switch {
	case strings.TrimSpace(product.Code) == "":
		return model.MutationResult{}, fmt.Errorf("%w: code is required", domainErrors.ErrInvalidField)
	case strings.TrimSpace(product.Name) == "":
		return model.MutationResult{}, fmt.Errorf("%w: name is required", domainErrors.ErrInvalidField)
	case product.Price.IsNegative():
		return model.MutationResult{}, fmt.Errorf("%w: negative price", domainErrors.ErrInvalidField)
	case product.Quantity < 0:
		return model.MutationResult{}, fmt.Errorf("%w: negative quantity", domainErrors.ErrInvalidField)
	}
	return u.products.Register(ctx, product)
}

func (u *ProductUseCase) Get(ctx context.Context, code string) (model.Row, error) {
	return u.products.Get(ctx, strings.TrimSpace(code))
}
