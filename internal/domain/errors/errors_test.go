package errors

import (
	stdErrors "errors"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"unauthorized", ErrUnauthorized},
		{"forbidden", ErrForbidden},
		{"invalid signature", ErrInvalidSignature},
		{"invalid transition", ErrInvalidTransition},
		{"invalid order", ErrInvalidOrder},
		{"invalid field", ErrInvalidField},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestValidationErrorListsAllFields(t *testing.T) {
	err := error(&ValidationError{Missing: []string{"client", "items"}})
	if !strings.Contains(err.Error(), "client, items") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	var verr *ValidationError
	if !stdErrors.As(err, &verr) || len(verr.Missing) != 2 {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWrappedErrorsUnwrap(t *testing.T) {
	cause := stdErrors.New("boom")

	dataErr := error(&DataAccessError{Routine: "cancel_order", Message: "boom", Err: cause})
	if !stdErrors.Is(dataErr, cause) {
		t.Fatal("data access error must unwrap to cause")
	}
	if !strings.Contains(dataErr.Error(), "cancel_order") {
		t.Fatalf("expected routine name in %q", dataErr.Error())
	}

	gwErr := error(&PaymentGatewayError{Sheet: 7, Err: cause})
	if !stdErrors.Is(gwErr, cause) {
		t.Fatal("gateway error must unwrap to cause")
	}
}
