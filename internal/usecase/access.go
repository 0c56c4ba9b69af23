package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	pkgAuth "github.com/polkiloo/orderdesk/internal/pkg/auth"
)

// authorizeOwner lets staff through and clients only for their own records.
func authorizeOwner(ctx context.Context, owner string) error {
	principal, ok := pkgAuth.PrincipalFromContext(ctx)
	if !ok {
		return domainErrors.ErrUnauthorized
	}
	if principal.IsStaff() || principal.Subject == owner {
		return nil
	}
	return domainErrors.ErrForbidden
}
