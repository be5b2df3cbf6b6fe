// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/masterly-ai/masterly/internal/shared/logger"
)

// SafeGo launches fn in a goroutine. A panic is logged with its stack trace
// instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// SafeGoDetached runs fn with a context that keeps the values of ctx but is
// not cancelled with it, so work started by a request outlives the response.
func SafeGoDetached(ctx context.Context, log logger.Interface, name string, fn func(ctx context.Context)) {
	detached := context.WithoutCancel(ctx)
	SafeGo(log, name, func() { fn(detached) })
}

// Recover logs a recovered panic. It must be deferred directly.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
