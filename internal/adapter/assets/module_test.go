package assets

import (
	"context"
	"errors"
	"testing"

	gcs "cloud.google.com/go/storage"

	"github.com/polkiloo/orderdesk/internal/config"
	testhelpers "github.com/polkiloo/orderdesk/internal/test"
)

func TestNewAssetStoreWithoutBucket(t *testing.T) {
	lc := &testhelpers.LifecycleRecorder{}
	store, err := newAssetStore(storeParams{
		Ctx:       context.Background(),
		Config:    &config.Config{},
		Logger:    discardLogger(),
		Lifecycle: lc,
	})
	if err != nil || store != nil {
		t.Fatalf("expected no store, got %v, %v", store, err)
	}
	if len(lc.Hooks) != 0 {
		t.Fatal("no hooks expected without a bucket")
	}
}

func TestNewAssetStoreClientFailure(t *testing.T) {
	original := newGCSClient
	t.Cleanup(func() { newGCSClient = original })
	boom := errors.New("no credentials")
	newGCSClient = func(context.Context) (*gcs.Client, error) { return nil, boom }

	_, err := newAssetStore(storeParams{
		Ctx:       context.Background(),
		Config:    &config.Config{AssetBucket: "b"},
		Logger:    discardLogger(),
		Lifecycle: &testhelpers.LifecycleRecorder{},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected client error, got %v", err)
	}
}
