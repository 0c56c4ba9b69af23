package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidSignature   = errors.New("invalid event signature")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInvalidField       = errors.New("invalid field value")
)

// ValidationError lists every required field missing from a command.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// DataAccessError wraps store failures and keeps the message reported by the store.
type DataAccessError struct {
	Routine string
	Message string
	Err     error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access %s: %s", e.Routine, e.Message)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// PaymentGatewayError signals that a checkout session could not be created.
type PaymentGatewayError struct {
	Sheet int64
	Err   error
}

func (e *PaymentGatewayError) Error() string {
	return fmt.Sprintf("payment gateway: order %d: %v", e.Sheet, e.Err)
}

func (e *PaymentGatewayError) Unwrap() error {
	return e.Err
}
