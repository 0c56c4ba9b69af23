package assets

import (
	"context"
	"log/slog"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/config"
	"github.com/polkiloo/orderdesk/internal/dispatch"
)

// Module exposes the asset store to the fx graph. Without a configured
// bucket no store is provided and commands carrying files fail.
var Module = fx.Provide(newAssetStore)

type storeParams struct {
	fx.In

	Ctx       context.Context
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

var newGCSClient = func(ctx context.Context) (*gcs.Client, error) {
	return gcs.NewClient(ctx)
}

func newAssetStore(p storeParams) (dispatch.AssetStore, error) {
	if p.Config.AssetBucket == "" {
		p.Logger.Warn("asset bucket not configured, uploads are disabled")
		return nil, nil
	}

	client, err := newGCSClient(p.Ctx)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewUploader(client, p.Config.AssetBucket, p.Config.ProviderTimeout, p.Logger)
}
