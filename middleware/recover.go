package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/xraph/pubsub"
)

// Recover returns middleware that recovers from panics in the listener
// chain. Panics are converted to errors and logged with a stack trace,
// so a panicking listener aborts the in-flight Publish the same way a
// returned error does.
func Recover[K comparable, P any](logger *slog.Logger) Middleware[K, P] {
	return func(ctx context.Context, ev pubsub.Event[K, P], next Handler[K, P]) (followups []pubsub.Event[K, P], retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("listener panicked",
					slog.Any("channel", ev.Channel),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				followups = nil
				retErr = fmt.Errorf("pubsub: panic on channel %v: %v", ev.Channel, r)
			}
		}()
		return next(ctx)
	}
}
