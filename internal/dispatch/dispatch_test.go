package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	testhelpers "github.com/polkiloo/orderdesk/internal/test"
)

func newTestDispatcher(assets AssetStore, identity IdentityVerifier) *Dispatcher {
	return New(testhelpers.HasherStub{}, assets, identity, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func echo(ctx context.Context, f Fields) (Envelope, error) {
	return Data(f), nil
}

func TestExecuteListsEveryMissingField(t *testing.T) {
	d := newTestDispatcher(nil, nil)
	called := false
	cmd := Command{Name: "register", Required: []string{"client", "items", "discount"}}

	result := Execute(context.Background(), d, Request{Fields: Fields{"items": "  "}}, cmd,
		func(ctx context.Context, f Fields) (Envelope, error) {
			called = true
			return Data(nil), nil
		})

	if called {
		t.Fatal("operation must not run when fields are missing")
	}
	if result.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", result.Status)
	}
	if result.Body.Success {
		t.Fatal("expected failure envelope")
	}
	if result.Body.Message != "missing required fields: client, items, discount" {
		t.Fatalf("unexpected message %q", result.Body.Message)
	}
}

func TestExecuteAllowBlank(t *testing.T) {
	d := newTestDispatcher(nil, nil)
	cmd := Command{Name: "login", Required: []string{"username", "password"}, Options: Options{AllowBlank: true}}

	result := Execute(context.Background(), d, Request{Fields: Fields{"username": "", "password": ""}}, cmd, echo)
	if result.Status != http.StatusOK {
		t.Fatalf("expected blank fields to pass, got %d %+v", result.Status, result.Body)
	}

	result = Execute(context.Background(), d, Request{Fields: Fields{"username": ""}}, cmd, echo)
	if result.Status != http.StatusBadRequest {
		t.Fatalf("expected absent field to fail, got %d", result.Status)
	}
}

func TestExecuteTransformsFields(t *testing.T) {
	d := newTestDispatcher(nil, nil)
	cmd := Command{
		Name:     "register client",
		Required: []string{"username", "password"},
		Options:  Options{SecretField: "password"},
		Status:   http.StatusCreated,
	}

	var got Fields
	result := Execute(context.Background(), d, Request{Fields: Fields{
		"username": "  ana ",
		"password": "s3cret",
		"extra":    "dropped",
	}}, cmd, func(ctx context.Context, f Fields) (Envelope, error) {
		got = f
		return Data(nil), nil
	})

	if result.Status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", result.Status)
	}
	if got["username"] != "ana" {
		t.Fatalf("expected trimmed username, got %q", got["username"])
	}
	if got["password"] != "hash:s3cret" {
		t.Fatalf("expected hashed password, got %q", got["password"])
	}
	if _, ok := got["extra"]; ok {
		t.Fatal("undeclared fields must not be forwarded")
	}
}

func TestExecuteRejectsNonStringSecret(t *testing.T) {
	d := newTestDispatcher(nil, nil)
	cmd := Command{Name: "login", Required: []string{"password"}, Options: Options{SecretField: "password"}}
	result := Execute(context.Background(), d, Request{Fields: Fields{"password": json.Number("42")}}, cmd, echo)
	if result.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", result.Status)
	}
}

func TestExecuteSubstitutesAsset(t *testing.T) {
	assets := &testhelpers.AssetStoreStub{}
	d := newTestDispatcher(assets, nil)
	cmd := Command{
		Name:     "register product",
		Required: []string{"code", "image_url"},
		Options:  Options{AssetField: "image_url", AssetCategory: "products"},
	}
	asset := &model.Asset{Filename: "shirt.png", ContentType: "image/png", Data: []byte{1}}

	var got Fields
	result := Execute(context.Background(), d, Request{Fields: Fields{"code": "P1"}, Asset: asset}, cmd,
		func(ctx context.Context, f Fields) (Envelope, error) {
			got = f
			return Data(nil), nil
		})

	if result.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", result.Status, result.Body)
	}
	if got["image_url"] != "https://assets.test/products/shirt.png" {
		t.Fatalf("expected uploaded url, got %v", got["image_url"])
	}
	if len(assets.Uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(assets.Uploads))
	}
}

func TestExecuteAssetFailures(t *testing.T) {
	cmd := Command{Name: "register product", Required: []string{"code", "image_url"}, Options: Options{AssetField: "image_url"}}
	req := Request{Fields: Fields{"code": "P1"}, Asset: &model.Asset{Filename: "a.png"}}

	tests := []struct {
		name   string
		assets AssetStore
	}{
		{name: "store not configured", assets: nil},
		{name: "upload fails", assets: &testhelpers.AssetStoreStub{Err: errors.New("bucket gone")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDispatcher(tt.assets, nil)
			result := Execute(context.Background(), d, req, cmd, echo)
			if result.Status != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", result.Status)
			}
		})
	}
}

func TestExecuteWithoutAssetKeepsFieldOptional(t *testing.T) {
	d := newTestDispatcher(&testhelpers.AssetStoreStub{}, nil)
	cmd := Command{Name: "register product", Required: []string{"code", "image_url"}, Options: Options{AssetField: "image_url"}}
	result := Execute(context.Background(), d, Request{Fields: Fields{"code": "P1"}}, cmd, echo)
	if result.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", result.Status)
	}
}

func TestExecuteUnwrap(t *testing.T) {
	d := newTestDispatcher(nil, nil)
	cmd := Command{Name: "get order", Required: []string{"sheet"}, Options: Options{Unwrap: true}}

	var got string
	result := Execute(context.Background(), d, Request{Fields: Fields{"sheet": json.Number("7")}}, cmd,
		func(ctx context.Context, sheet string) (Envelope, error) {
			got = sheet
			return Data(sheet), nil
		})
	if result.Status != http.StatusOK || got != "7" {
		t.Fatalf("expected unwrapped sheet 7, got %q (%d)", got, result.Status)
	}

	wrong := Execute(context.Background(), d, Request{Fields: Fields{"sheet": "7"}}, cmd,
		func(ctx context.Context, sheet int64) (Envelope, error) {
			return Data(sheet), nil
		})
	if wrong.Status != http.StatusInternalServerError {
		t.Fatalf("expected mismatched argument type to fail, got %d", wrong.Status)
	}
}

func TestExecuteExternalIdentity(t *testing.T) {
	identity := &testhelpers.IdentityVerifierStub{Identity: model.Identity{
		Subject:    "1098",
		GivenName:  "Ana",
		FamilyName: "Ruiz",
		Email:      "ana@example.com",
		Picture:    "https://img.test/ana.png",
	}}
	d := newTestDispatcher(nil, identity)
	cmd := Command{Name: "google", Required: []string{"credential"}, Options: Options{ExternalIdentity: true}}

	var got Fields
	result := Execute(context.Background(), d, Request{Fields: Fields{"credential": "id-token", "username": "forged"}}, cmd,
		func(ctx context.Context, f Fields) (Envelope, error) {
			got = f
			return Data(nil), nil
		})

	if result.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", result.Status, result.Body)
	}
	if len(identity.Tokens) != 1 || identity.Tokens[0] != "id-token" {
		t.Fatalf("expected token to be verified, got %v", identity.Tokens)
	}
	want := Fields{
		FieldSubject:    "1098",
		FieldGivenName:  "Ana",
		FieldFamilyName: "Ruiz",
		FieldEmail:      "ana@example.com",
		FieldPicture:    "https://img.test/ana.png",
		FieldSecret:     "hash:1098",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("field %s: expected %v, got %v", k, v, got[k])
		}
	}
	if _, ok := got["username"]; ok {
		t.Fatal("request fields must not leak into identity fields")
	}
}

func TestExecuteExternalIdentityFailures(t *testing.T) {
	cmd := Command{Name: "google", Required: []string{"credential"}, Options: Options{ExternalIdentity: true}}
	req := Request{Fields: Fields{"credential": "id-token"}}

	rejected := newTestDispatcher(nil, &testhelpers.IdentityVerifierStub{
		Err: fmt.Errorf("%w: bad audience", domainErrors.ErrUnauthorized),
	})
	if got := Execute(context.Background(), rejected, req, cmd, echo); got.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for rejected token, got %d", got.Status)
	}

	unconfigured := newTestDispatcher(nil, nil)
	if got := Execute(context.Background(), unconfigured, req, cmd, echo); got.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500 without identity provider, got %d", got.Status)
	}
}

func TestExecuteFailureMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: &domainErrors.ValidationError{Missing: []string{"x"}}, status: http.StatusBadRequest},
		{name: "invalid field", err: fmt.Errorf("%w: limit", domainErrors.ErrInvalidField), status: http.StatusBadRequest},
		{name: "invalid order", err: domainErrors.ErrInvalidOrder, status: http.StatusBadRequest},
		{name: "unauthorized", err: domainErrors.ErrUnauthorized, status: http.StatusUnauthorized},
		{name: "credentials", err: domainErrors.ErrInvalidCredentials, status: http.StatusUnauthorized},
		{name: "forbidden", err: domainErrors.ErrForbidden, status: http.StatusForbidden},
		{name: "not found", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "transition", err: domainErrors.ErrInvalidTransition, status: http.StatusConflict},
		{name: "store", err: &domainErrors.DataAccessError{Routine: "get_order", Message: "boom"}, status: http.StatusInternalServerError},
	}

	d := newTestDispatcher(nil, nil)
	cmd := Command{Name: "op"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Execute(context.Background(), d, Request{}, cmd, func(ctx context.Context, f Fields) (Envelope, error) {
				return Envelope{}, tt.err
			})
			if result.Status != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, result.Status)
			}
			if result.Body.Success {
				t.Fatal("expected failure envelope")
			}
		})
	}
}

func TestExecuteGatewayFailureKeepsSheet(t *testing.T) {
	d := newTestDispatcher(nil, nil)
	result := Execute(context.Background(), d, Request{}, Command{Name: "register order", Status: http.StatusCreated},
		func(ctx context.Context, f Fields) (Envelope, error) {
			return Envelope{}, fmt.Errorf("register: %w", &domainErrors.PaymentGatewayError{Sheet: 42, Err: errors.New("stripe down")})
		})

	if result.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", result.Status)
	}
	if result.Body.Success {
		t.Fatal("expected failure envelope")
	}
	data, ok := result.Body.Data.(map[string]int64)
	if !ok || data["sheet"] != 42 {
		t.Fatalf("expected sheet 42 in data, got %#v", result.Body.Data)
	}
	if !strings.Contains(result.Body.Error, "stripe down") {
		t.Fatalf("expected gateway message in error, got %q", result.Body.Error)
	}
}

func TestExecuteStoreMessageSurfaces(t *testing.T) {
	d := newTestDispatcher(nil, nil)
	result := Execute(context.Background(), d, Request{}, Command{Name: "op"}, func(ctx context.Context, f Fields) (Envelope, error) {
		return Envelope{}, &domainErrors.DataAccessError{Routine: "register_order", Message: "product P9 does not exist"}
	})
	if !strings.Contains(result.Body.Error, "product P9 does not exist") {
		t.Fatalf("expected store message in error, got %q", result.Body.Error)
	}
}

func TestFields(t *testing.T) {
	f := Fields{
		"n":     json.Number("12"),
		"s":     " 34 ",
		"frac":  json.Number("1.5"),
		"float": float64(3),
		"money": "19.90",
		"blank": "",
		"items": `[{"product":"P1","quantity":2}]`,
		"list":  []any{map[string]any{"product": "P2", "quantity": json.Number("1")}},
	}

	if n, err := f.Int64("n"); err != nil || n != 12 {
		t.Fatalf("Int64(n) = %d, %v", n, err)
	}
	if n, err := f.Int("s"); err != nil || n != 34 {
		t.Fatalf("Int(s) = %d, %v", n, err)
	}
	if n, err := f.Int64("float"); err != nil || n != 3 {
		t.Fatalf("Int64(float) = %d, %v", n, err)
	}
	if _, err := f.Int64("frac"); !errors.Is(err, domainErrors.ErrInvalidField) {
		t.Fatalf("expected invalid field for fraction, got %v", err)
	}
	if _, err := f.Int64("missing"); !errors.Is(err, domainErrors.ErrInvalidField) {
		t.Fatalf("expected invalid field for missing value, got %v", err)
	}

	if d, err := f.Decimal("money"); err != nil || !d.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("Decimal(money) = %s, %v", d, err)
	}
	if d, err := f.Decimal("blank"); err != nil || !d.IsZero() {
		t.Fatalf("Decimal(blank) = %s, %v", d, err)
	}
	if d, err := f.Decimal("missing"); err != nil || !d.IsZero() {
		t.Fatalf("Decimal(missing) = %s, %v", d, err)
	}
	if _, err := f.Decimal("items"); !errors.Is(err, domainErrors.ErrInvalidField) {
		t.Fatalf("expected invalid decimal, got %v", err)
	}

	var items []model.LineItem
	if err := f.Decode("items", &items); err != nil || len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("Decode(items) = %+v, %v", items, err)
	}
	if err := f.Decode("list", &items); err != nil || items[0].Product != "P2" {
		t.Fatalf("Decode(list) = %+v, %v", items, err)
	}
	if err := f.Decode("missing", &items); !errors.Is(err, domainErrors.ErrInvalidField) {
		t.Fatalf("expected invalid field for missing structure, got %v", err)
	}

	if f.String("n") != "12" || f.String("missing") != "" {
		t.Fatalf("unexpected String rendering")
	}
}

func TestHandleReadsPathAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	d := newTestDispatcher(nil, nil)

	engine := gin.New()
	engine.GET("/orders/:sheet", Handle(d, Command{Name: "get", Required: []string{"sheet"}, Options: Options{FromPath: true, Unwrap: true}},
		func(ctx context.Context, sheet string) (Envelope, error) {
			return Data(sheet), nil
		}))
	engine.POST("/echo", Handle(d, Command{Name: "echo", Required: []string{"term"}}, echo))

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/orders/15", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"data":"15"`) {
		t.Fatalf("unexpected path response %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"term":" ana "}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"term":"ana"`) {
		t.Fatalf("unexpected body response %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"term":`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected malformed body to be rejected, got %d", resp.Code)
	}
}

func TestEnvelopeHelpers(t *testing.T) {
	if e := Data(1); !e.Success || e.Data != 1 || e.Message != "" {
		t.Fatalf("unexpected Data envelope %+v", e)
	}
	if e := Message("x", "done"); !e.Success || e.Message != "done" {
		t.Fatalf("unexpected Message envelope %+v", e)
	}
}
