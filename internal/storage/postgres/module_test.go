package postgres

import (
	"context"
	"testing"

	"go.uber.org/fx/fxtest"
)

func TestRegisterLifecycleClosesPool(t *testing.T) {
	storage, pool := newMockStorage(t)

	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, storage)

	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	pool.ExpectClose()
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	expectMet(t, pool)
}
