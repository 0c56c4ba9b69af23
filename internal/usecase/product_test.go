package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	testhelpers "github.com/polkiloo/orderdesk/internal/test"
)

func TestProductUseCaseRegister(t *testing.T) {
	repo := &testhelpers.ProductRepositoryStub{}
	uc := NewProductUseCase(repo)
	product := model.Product{Code: "P1", Name: "Lavado", Price: decimal.RequireFromString("50"), Quantity: 10}

	if _, err := uc.Register(clientCtx("ana"), product); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := uc.Register(staffCtx(), product); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if len(repo.Registered) != 1 {
		t.Fatalf("expected one product, got %d", len(repo.Registered))
	}

	invalid := []model.Product{
		{Name: "x", Price: decimal.Zero},
		{Code: "P2", Price: decimal.Zero},
		{Code: "P2", Name: "x", Price: decimal.NewFromInt(-1)},
		{Code: "P2", Name: "x", Quantity: -1},
	}
	for i, p := range invalid {
		if _, err := uc.Register(staffCtx(), p); !errors.Is(err, domainErrors.ErrInvalidField) {
			t.Fatalf("case %d: expected ErrInvalidField, got %v", i, err)
		}
	}
}

func TestProductUseCaseGet(t *testing.T) {
	repo := &testhelpers.ProductRepositoryStub{Rows: map[string]model.Row{"P1": {"code": "P1"}}}
	uc := NewProductUseCase(repo)

	if row, err := uc.Get(context.Background(), " P1 "); err != nil || row["code"] != "P1" {
		t.Fatalf("unexpected row %v, %v", row, err)
	}
	if _, err := uc.Get(context.Background(), "P9"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNotificationTemplatesEscape(t *testing.T) {
	n, err := welcomeMail("a@example.com", "<script>", "ana")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if n.To != "a@example.com" || n.Subject == "" {
		t.Fatalf("unexpected notification %+v", n)
	}
	if want := "&lt;script&gt;"; !strings.Contains(n.HTML, want) {
		t.Fatalf("expected escaped name in %q", n.HTML)
	}
}
