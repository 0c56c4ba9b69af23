package payment

import (
	"testing"

	"github.com/polkiloo/orderdesk/internal/config"
)

func TestModuleProvidersUseConfig(t *testing.T) {
	cfg := &config.Config{StripeSecretKey: "sk_test_1", StripeWebhookSecret: "whsec_1"}

	gateway, err := newGateway(gatewayParams{Config: cfg, Logger: discardLogger()})
	if err != nil || gateway == nil {
		t.Fatalf("unexpected gateway %v, %v", gateway, err)
	}
	verifier, err := newVerifier(cfg)
	if err != nil || verifier == nil {
		t.Fatalf("unexpected verifier %v, %v", verifier, err)
	}
	if _, err := newVerifier(&config.Config{}); err == nil {
		t.Fatal("expected error without webhook secret")
	}
}
