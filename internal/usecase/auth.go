package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
	pkgAuth "github.com/polkiloo/orderdesk/internal/pkg/auth"
)

// AuthUseCase verifies credentials and manages tokens.
type AuthUseCase struct {
	staff   repository.StaffRepository
	clients repository.ClientRepository
	hasher  pkgAuth.SecretHasher
	tokens  pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	staff repository.StaffRepository,
	clients repository.ClientRepository,
	hasher pkgAuth.SecretHasher,
	strategy pkgAuth.Strategy,
) *AuthUseCase {
	return &AuthUseCase{staff: staff, clients: clients, hasher: hasher, tokens: strategy}
}

// LoginStaff validates staff credentials and returns a staff token.
func (u *AuthUseCase) LoginStaff(ctx context.Context, username, password string) (string, error) {
	return u.login(ctx, u.staff.PasswordHash, model.RoleStaff, username, password)
}

// LoginClient validates client credentials and returns a client token.
func (u *AuthUseCase) LoginClient(ctx context.Context, username, password string) (string, error) {
	return u.login(ctx, u.clients.PasswordHash, model.RoleClient, username, password)
}

func (u *AuthUseCase) login(
	ctx context.Context,
	lookup func(context.Context, string) (string, error),
	role model.Role,
	username, password string,
) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}

	hash, err := lookup(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", err
	}
	if hash == "" {
		return "", domainErrors.ErrInvalidCredentials
	}

	if err := u.hasher.Compare(hash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}

	return u.IssueToken(model.Principal{Subject: username, Role: role})
}

// IssueToken signs a token for an already authenticated principal.
func (u *AuthUseCase) IssueToken(principal model.Principal) (string, error) {
	return u.tokens.IssueToken(principal)
}

// ParseToken extracts the principal from the provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Principal, error) {
	if token == "" {
		return model.Principal{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
