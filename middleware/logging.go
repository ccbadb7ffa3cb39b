package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/pubsub"
)

// Logging returns middleware that logs each listener invocation.
// Invocations log at Debug; failures log at Error.
func Logging[K comparable, P any](logger *slog.Logger) Middleware[K, P] {
	return func(ctx context.Context, ev pubsub.Event[K, P], next Handler[K, P]) ([]pubsub.Event[K, P], error) {
		logger.Debug("listener started",
			slog.Any("channel", ev.Channel),
		)

		start := time.Now()
		followups, err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("listener failed",
				slog.Any("channel", ev.Channel),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Debug("listener completed",
				slog.Any("channel", ev.Channel),
				slog.Duration("elapsed", elapsed),
				slog.Int("followups", len(followups)),
			)
		}

		return followups, err
	}
}
