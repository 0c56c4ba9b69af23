// Package dispatch turns inbound commands into validated calls of domain
// operations. One executor serves every entity; commands differ only in
// their required fields and options.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// Field names synthesized by the external identity flow.
const (
	FieldSubject    = "subject"
	FieldGivenName  = "given_name"
	FieldFamilyName = "family_name"
	FieldEmail      = "email"
	FieldPicture    = "picture"
	FieldSecret     = "password"
)

// Options configures field transforms of a command.
type Options struct {
	// AllowBlank counts empty strings as present.
	AllowBlank bool
	// SecretField is hashed before it is forwarded.
	SecretField string
	// AssetField receives the stored asset URL when the request carries an asset.
	AssetField    string
	AssetCategory string
	// FromPath reads fields from path parameters instead of the body.
	FromPath bool
	// Unwrap forwards only the value of the first required field.
	Unwrap bool
	// ExternalIdentity verifies the token in the first required field and
	// forwards the provider profile instead of the request fields.
	ExternalIdentity bool
}

// Command declares what an operation needs from a request.
type Command struct {
	Name     string
	Required []string
	Options  Options
	Status   int
}

// Request is the raw input of one dispatch.
type Request struct {
	Fields Fields
	Asset  *model.Asset
}

// Envelope is the uniform response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Result is the HTTP-shaped outcome of a dispatch.
type Result struct {
	Status int
	Body   Envelope
}

// Operation is the target of a command. T is Fields, or the type of the
// first required field when the command unwraps.
type Operation[T any] func(ctx context.Context, arg T) (Envelope, error)

// Hasher one-way hashes secrets.
type Hasher interface {
	Hash(secret string) (string, error)
}

// AssetStore uploads attached binaries and returns their public URL.
type AssetStore interface {
	Upload(ctx context.Context, asset model.Asset, category string) (string, error)
}

// IdentityVerifier resolves an identity token issued by an external provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (model.Identity, error)
}

// Dispatcher holds the capabilities used by field transforms.
type Dispatcher struct {
	hasher   Hasher
	assets   AssetStore
	identity IdentityVerifier
	logger   *slog.Logger
}

// New creates a Dispatcher.
func New(hasher Hasher, assets AssetStore, identity IdentityVerifier, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{hasher: hasher, assets: assets, identity: identity, logger: logger}
}

// Execute validates req against cmd, applies the field transforms and invokes op.
// Validation failures never reach op.
func Execute[T any](ctx context.Context, d *Dispatcher, req Request, cmd Command, op Operation[T]) Result {
	if missing := missingFields(req.Fields, cmd); len(missing) > 0 {
		err := &domainErrors.ValidationError{Missing: missing}
		d.logger.Warn("command rejected", slog.String("command", cmd.Name), slog.Any("missing", missing))
		return failure(err)
	}

	body, err := run(ctx, d, req, cmd, op)
	if err != nil {
		result := failure(err)
		if result.Status >= http.StatusInternalServerError {
			d.logger.Error("command failed", slog.String("command", cmd.Name), slog.String("error", err.Error()))
		}
		return result
	}

	status := cmd.Status
	if status == 0 {
		status = http.StatusOK
	}
	return Result{Status: status, Body: body}
}

func run[T any](ctx context.Context, d *Dispatcher, req Request, cmd Command, op Operation[T]) (Envelope, error) {
	if cmd.Options.ExternalIdentity {
		fields, err := d.identityFields(ctx, req.Fields, cmd)
		if err != nil {
			return Envelope{}, err
		}
		arg, err := argument[T](fields, cmd, false)
		if err != nil {
			return Envelope{}, err
		}
		return op(ctx, arg)
	}

	fields, err := d.assemble(req.Fields, cmd)
	if err != nil {
		return Envelope{}, err
	}

	if cmd.Options.AssetField != "" && req.Asset != nil {
		if d.assets == nil {
			return Envelope{}, fmt.Errorf("%s: asset store is not configured", cmd.Name)
		}
		url, err := d.assets.Upload(ctx, *req.Asset, cmd.Options.AssetCategory)
		if err != nil {
			return Envelope{}, fmt.Errorf("upload asset: %w", err)
		}
		fields[cmd.Options.AssetField] = url
	}

	arg, err := argument[T](fields, cmd, cmd.Options.Unwrap)
	if err != nil {
		return Envelope{}, err
	}
	return op(ctx, arg)
}

func missingFields(fields Fields, cmd Command) []string {
	var missing []string
	for _, name := range cmd.Required {
		if name == cmd.Options.AssetField {
			continue
		}
		v, ok := fields[name]
		if !ok || v == nil {
			missing = append(missing, name)
			continue
		}
		if s, isString := v.(string); isString && !cmd.Options.AllowBlank && strings.TrimSpace(s) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// assemble copies required fields, hashing the secret field and trimming strings.
func (d *Dispatcher) assemble(raw Fields, cmd Command) (Fields, error) {
	fields := make(Fields, len(cmd.Required))
	for _, name := range cmd.Required {
		v, ok := raw[name]
		if !ok {
			continue
		}
		if name == cmd.Options.SecretField {
			secret, isString := v.(string)
			if !isString {
				return nil, fmt.Errorf("%w: %s must be a string", domainErrors.ErrInvalidField, name)
			}
			hashed, err := d.hasher.Hash(secret)
			if err != nil {
				return nil, fmt.Errorf("hash %s: %w", name, err)
			}
			fields[name] = hashed
			continue
		}
		if s, isString := v.(string); isString {
			v = strings.TrimSpace(s)
		}
		fields[name] = v
	}
	return fields, nil
}

func (d *Dispatcher) identityFields(ctx context.Context, raw Fields, cmd Command) (Fields, error) {
	if len(cmd.Required) == 0 {
		return nil, fmt.Errorf("%s: identity token field is not declared", cmd.Name)
	}
	if d.identity == nil {
		return nil, fmt.Errorf("%s: identity provider is not configured", cmd.Name)
	}

	token := raw.String(cmd.Required[0])
	identity, err := d.identity.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verify identity: %w", err)
	}

	secret, err := d.hasher.Hash(identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("hash identity secret: %w", err)
	}

	return Fields{
		FieldSubject:    identity.Subject,
		FieldGivenName:  identity.GivenName,
		FieldFamilyName: identity.FamilyName,
		FieldEmail:      identity.Email,
		FieldPicture:    identity.Picture,
		FieldSecret:     secret,
	}, nil
}

func argument[T any](fields Fields, cmd Command, unwrap bool) (T, error) {
	var zero T
	var v any = fields
	if unwrap {
		if len(cmd.Required) == 0 {
			return zero, fmt.Errorf("%s: nothing to unwrap", cmd.Name)
		}
		v = fields[cmd.Required[0]]
	}
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	if _, wantString := any(zero).(string); wantString && unwrap {
		return any(fields.String(cmd.Required[0])).(T), nil
	}
	return zero, fmt.Errorf("%s: unexpected argument type %T", cmd.Name, v)
}

// failure maps an error to its response. Unclassified errors become a
// generic 500 carrying the underlying message. A failed checkout session
// still returns the sheet of the saved order so the caller can retry payment.
func failure(err error) Result {
	var validation *domainErrors.ValidationError
	var gateway *domainErrors.PaymentGatewayError
	switch {
	case errors.As(err, &validation):
		return Result{Status: http.StatusBadRequest, Body: Envelope{Message: validation.Error()}}
	case errors.Is(err, domainErrors.ErrInvalidField), errors.Is(err, domainErrors.ErrInvalidOrder):
		return reject(http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, domainErrors.ErrUnauthorized), errors.Is(err, domainErrors.ErrInvalidCredentials):
		return reject(http.StatusUnauthorized, "authentication failed", err)
	case errors.Is(err, domainErrors.ErrForbidden):
		return reject(http.StatusForbidden, "insufficient permissions", err)
	case errors.Is(err, domainErrors.ErrNotFound):
		return reject(http.StatusNotFound, "resource not found", err)
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		return reject(http.StatusConflict, "order status cannot change", err)
	case errors.As(err, &gateway):
		result := reject(http.StatusInternalServerError, "payment session not created", err)
		result.Body.Data = map[string]int64{"sheet": gateway.Sheet}
		return result
	}
	return reject(http.StatusInternalServerError, "failed to process request", err)
}

func reject(status int, message string, err error) Result {
	return Result{Status: status, Body: Envelope{Message: message, Error: err.Error()}}
}

// Data wraps a successful payload.
func Data(v any) Envelope {
	return Envelope{Success: true, Data: v}
}

// Message wraps a successful payload with a caller-facing message.
func Message(v any, message string) Envelope {
	return Envelope{Success: true, Data: v, Message: message}
}
