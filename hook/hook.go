// Package hook defines the extension system for the pubsub engine.
// Extensions are notified of lifecycle events (event published, listener
// completed, queue drained, etc.) and can react to them — logging,
// metrics, auditing, etc.
//
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about.
package hook

import (
	"context"
	"time"

	"github.com/xraph/pubsub"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// ──────────────────────────────────────────────────
// Event lifecycle hooks
// ──────────────────────────────────────────────────

// EventPublished is called after Publish accepts a root event, before
// the queue starts draining.
type EventPublished[K comparable, P any] interface {
	OnEventPublished(ctx context.Context, ev pubsub.Event[K, P]) error
}

// EventDispatched is called when a popped event has listeners and is
// about to be dispatched to them.
type EventDispatched[K comparable, P any] interface {
	OnEventDispatched(ctx context.Context, ev pubsub.Event[K, P], listeners int) error
}

// EventDropped is called when a popped event has no listeners registered
// for its channel. The engine treats this as a silent no-op; the hook
// exists so extensions can observe it.
type EventDropped[K comparable, P any] interface {
	OnEventDropped(ctx context.Context, ev pubsub.Event[K, P]) error
}

// ──────────────────────────────────────────────────
// Listener lifecycle hooks
// ──────────────────────────────────────────────────

// ListenerCompleted is called after a listener returns successfully.
type ListenerCompleted[K comparable, P any] interface {
	OnListenerCompleted(ctx context.Context, ev pubsub.Event[K, P], followups int, elapsed time.Duration) error
}

// ListenerFailed is called when a listener returns an error (or panics;
// the recover middleware converts panics to errors first). The in-flight
// Publish aborts immediately after this hook fires.
type ListenerFailed[K comparable, P any] interface {
	OnListenerFailed(ctx context.Context, ev pubsub.Event[K, P], err error) error
}

// ──────────────────────────────────────────────────
// Other hooks
// ──────────────────────────────────────────────────

// QueueDrained is called when a Publish call fully drains the queue.
// processed is the total number of events popped during the call, the
// root event and dropped events included.
type QueueDrained interface {
	OnQueueDrained(ctx context.Context, processed int, elapsed time.Duration) error
}
