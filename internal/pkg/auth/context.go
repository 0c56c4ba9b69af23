package auth

import (
	"context"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

type principalKey struct{}

// WithPrincipal stores the authenticated caller in ctx.
func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the caller stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(model.Principal)
	return p, ok
}

// RequireStaff fails with ErrForbidden unless the caller is staff.
func RequireStaff(ctx context.Context) error {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return domainErrors.ErrUnauthorized
	}
	if !p.IsStaff() {
		return domainErrors.ErrForbidden
	}
	return nil
}
