package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
)

// ClientUseCase manages client accounts.
type ClientUseCase struct {
	clients  repository.ClientRepository
	auth     *AuthUseCase
	notifier Notifier
	logger   *slog.Logger
}

// NewClientUseCase constructs ClientUseCase.
func NewClientUseCase(clients repository.ClientRepository, auth *AuthUseCase, notifier Notifier, logger *slog.Logger) *ClientUseCase {
	return &ClientUseCase{clients: clients, auth: auth, notifier: notifier, logger: logger}
}

// Register stores a client whose password is already hashed. A duplicate
// username or e-mail is reported through the advisory, not as an error.
func (u *ClientUseCase) Register(ctx context.Context, client model.Client) (model.MutationResult, error) {
	if err := validateClient(client); err != nil {
		return model.MutationResult{}, err
	}

	result, err := u.clients.Register(ctx, client)
	if err != nil {
		return model.MutationResult{}, err
	}
	if result.Advisory == "" {
		u.welcome(client)
	}
	return result, nil
}

// SignInWithIdentity returns a client token for a verified external identity,
// registering the client on first sign-in.
func (u *ClientUseCase) SignInWithIdentity(ctx context.Context, client model.Client) (string, bool, error) {
	if err := validateClient(client); err != nil {
		return "", false, err
	}

	_, err := u.clients.Get(ctx, client.Username)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, domainErrors.ErrNotFound):
		result, err := u.clients.Register(ctx, client)
		if err != nil {
			return "", false, err
		}
		if result.Advisory != "" {
			return "", false, fmt.Errorf("%w: %s", domainErrors.ErrInvalidCredentials, result.Advisory)
		}
		created = true
		u.welcome(client)
	default:
		return "", false, err
	}

	token, err := u.auth.IssueToken(model.Principal{Subject: client.Username, Role: model.RoleClient})
	if err != nil {
		return "", false, err
	}
	return token, created, nil
}

func (u *ClientUseCase) Get(ctx context.Context, username string) (model.Row, error) {
	username = strings.TrimSpace(username)
	if err := authorizeOwner(ctx, username); err != nil {
		return nil, err
	}
	return u.clients.Get(ctx, username)
}

func (u *ClientUseCase) welcome(client model.Client) {
	n, err := welcomeMail(client.Email, client.Name, client.Username)
	if err != nil {
		u.logger.Error("render welcome mail", slog.String("error", err.Error()))
		return
	}
	if !u.notifier.Enqueue(n) {
		u.logger.Warn("welcome mail dropped", slog.String("client", client.Username))
	}
}

func validateClient(c model.Client) error {
	switch {
	case strings.TrimSpace(c.Username) == "":
		return fmt.Errorf("%w: username is required", domainErrors.ErrInvalidField)
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: name is required", domainErrors.ErrInvalidField)
	case !strings.Contains(c.Email, "@"):
		return fmt.Errorf("%w: email %q", domainErrors.ErrInvalidField, c.Email)
	case c.PasswordHash == "":
		return fmt.Errorf("%w: password is required", domainErrors.ErrInvalidField)
	}
	return nil
}
