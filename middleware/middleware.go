// Package middleware provides composable middleware for listener
// invocation. Middleware wraps each listener call synchronously and can
// modify execution (recover from panics, log, add tracing, etc.).
package middleware

import (
	"context"

	"github.com/xraph/pubsub"
)

// Handler is the terminal function that invokes the listener and returns
// its follow-up events.
type Handler[K comparable, P any] func(ctx context.Context) ([]pubsub.Event[K, P], error)

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the event being dispatched, and the next handler to
// call. Middleware MUST call next to continue the chain (unless
// short-circuiting on error).
type Middleware[K comparable, P any] func(ctx context.Context, ev pubsub.Event[K, P], next Handler[K, P]) ([]pubsub.Event[K, P], error)

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(recover, tracing, logging) executes as:
//
//	recover → tracing → logging → listener
func Chain[K comparable, P any](mws ...Middleware[K, P]) Middleware[K, P] {
	return func(ctx context.Context, ev pubsub.Event[K, P], next Handler[K, P]) ([]pubsub.Event[K, P], error) {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) ([]pubsub.Event[K, P], error) {
				return mw(ctx, ev, prev)
			}
		}
		return h(ctx)
	}
}
