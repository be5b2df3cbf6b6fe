package goroutine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/masterly-ai/masterly/internal/shared/logger"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	done := make(chan struct{})
	SafeGo(logger.NewNopLogger(), "panicky", func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}

func TestSafeGoDetached_IgnoresParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	var ctxErr error
	SafeGoDetached(ctx, logger.NewNopLogger(), "publish", func(ctx context.Context) {
		defer wg.Done()
		ctxErr = ctx.Err()
	})
	wg.Wait()

	assert.NoError(t, ctxErr)
}
