package hook

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/pubsub"
)

// Named entry types pair a hook implementation with the extension name
// captured at registration time. This avoids type-asserting back to
// Extension inside the emit methods.
type eventPublishedEntry[K comparable, P any] struct {
	name string
	hook EventPublished[K, P]
}

type eventDispatchedEntry[K comparable, P any] struct {
	name string
	hook EventDispatched[K, P]
}

type eventDroppedEntry[K comparable, P any] struct {
	name string
	hook EventDropped[K, P]
}

type listenerCompletedEntry[K comparable, P any] struct {
	name string
	hook ListenerCompleted[K, P]
}

type listenerFailedEntry[K comparable, P any] struct {
	name string
	hook ListenerFailed[K, P]
}

type queueDrainedEntry struct {
	name string
	hook QueueDrained
}

// Registry holds registered extensions and dispatches lifecycle events
// to them. It type-caches extensions at registration time so emit calls
// iterate only over extensions that implement the relevant hook.
type Registry[K comparable, P any] struct {
	extensions []Extension
	logger     *slog.Logger

	// Type-cached slices for each lifecycle hook.
	eventPublished    []eventPublishedEntry[K, P]
	eventDispatched   []eventDispatchedEntry[K, P]
	eventDropped      []eventDroppedEntry[K, P]
	listenerCompleted []listenerCompletedEntry[K, P]
	listenerFailed    []listenerFailedEntry[K, P]
	queueDrained      []queueDrainedEntry
}

// NewRegistry creates a hook registry with the given logger.
func NewRegistry[K comparable, P any](logger *slog.Logger) *Registry[K, P] {
	return &Registry[K, P]{logger: logger}
}

// Register adds an extension and type-asserts it into all applicable
// hook caches. Extensions are notified in registration order.
func (r *Registry[K, P]) Register(e Extension) {
	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(EventPublished[K, P]); ok {
		r.eventPublished = append(r.eventPublished, eventPublishedEntry[K, P]{name, h})
	}
	if h, ok := e.(EventDispatched[K, P]); ok {
		r.eventDispatched = append(r.eventDispatched, eventDispatchedEntry[K, P]{name, h})
	}
	if h, ok := e.(EventDropped[K, P]); ok {
		r.eventDropped = append(r.eventDropped, eventDroppedEntry[K, P]{name, h})
	}
	if h, ok := e.(ListenerCompleted[K, P]); ok {
		r.listenerCompleted = append(r.listenerCompleted, listenerCompletedEntry[K, P]{name, h})
	}
	if h, ok := e.(ListenerFailed[K, P]); ok {
		r.listenerFailed = append(r.listenerFailed, listenerFailedEntry[K, P]{name, h})
	}
	if h, ok := e.(QueueDrained); ok {
		r.queueDrained = append(r.queueDrained, queueDrainedEntry{name, h})
	}
}

// Extensions returns all registered extensions.
func (r *Registry[K, P]) Extensions() []Extension { return r.extensions }

// EmitEventPublished notifies all extensions that implement EventPublished.
func (r *Registry[K, P]) EmitEventPublished(ctx context.Context, ev pubsub.Event[K, P]) {
	for _, e := range r.eventPublished {
		if err := e.hook.OnEventPublished(ctx, ev); err != nil {
			r.logHookError("OnEventPublished", e.name, err)
		}
	}
}

// EmitEventDispatched notifies all extensions that implement EventDispatched.
func (r *Registry[K, P]) EmitEventDispatched(ctx context.Context, ev pubsub.Event[K, P], listeners int) {
	for _, e := range r.eventDispatched {
		if err := e.hook.OnEventDispatched(ctx, ev, listeners); err != nil {
			r.logHookError("OnEventDispatched", e.name, err)
		}
	}
}

// EmitEventDropped notifies all extensions that implement EventDropped.
func (r *Registry[K, P]) EmitEventDropped(ctx context.Context, ev pubsub.Event[K, P]) {
	for _, e := range r.eventDropped {
		if err := e.hook.OnEventDropped(ctx, ev); err != nil {
			r.logHookError("OnEventDropped", e.name, err)
		}
	}
}

// EmitListenerCompleted notifies all extensions that implement ListenerCompleted.
func (r *Registry[K, P]) EmitListenerCompleted(ctx context.Context, ev pubsub.Event[K, P], followups int, elapsed time.Duration) {
	for _, e := range r.listenerCompleted {
		if err := e.hook.OnListenerCompleted(ctx, ev, followups, elapsed); err != nil {
			r.logHookError("OnListenerCompleted", e.name, err)
		}
	}
}

// EmitListenerFailed notifies all extensions that implement ListenerFailed.
func (r *Registry[K, P]) EmitListenerFailed(ctx context.Context, ev pubsub.Event[K, P], listenerErr error) {
	for _, e := range r.listenerFailed {
		if err := e.hook.OnListenerFailed(ctx, ev, listenerErr); err != nil {
			r.logHookError("OnListenerFailed", e.name, err)
		}
	}
}

// EmitQueueDrained notifies all extensions that implement QueueDrained.
func (r *Registry[K, P]) EmitQueueDrained(ctx context.Context, processed int, elapsed time.Duration) {
	for _, e := range r.queueDrained {
		if err := e.hook.OnQueueDrained(ctx, processed, elapsed); err != nil {
			r.logHookError("OnQueueDrained", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block dispatch.
func (r *Registry[K, P]) logHookError(hook, extName string, err error) {
	r.logger.Warn("extension hook error",
		slog.String("hook", hook),
		slog.String("extension", extName),
		slog.String("error", err.Error()),
	)
}
