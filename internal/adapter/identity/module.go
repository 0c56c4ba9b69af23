package identity

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/config"
	"github.com/polkiloo/orderdesk/internal/dispatch"
)

// Module exposes the Google ID token verifier to the fx graph.
var Module = fx.Provide(newVerifier)

type verifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newVerifier(p verifierParams) (dispatch.IdentityVerifier, error) {
	keys, err := NewKeySet(GoogleCertsURL, p.Config.ProviderTimeout, p.Logger)
	if err != nil {
		return nil, err
	}
	return NewGoogleVerifier(keys, p.Config.GoogleClientID), nil
}
