// Package hook defines the extension system for the pubsub engine.
//
// Extensions are notified of lifecycle events and can react to them —
// recording metrics, writing audit logs, feeding dashboards, etc.
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about.
//
// # Implementing an Extension
//
//	type MyExtension struct{}
//
//	func (e *MyExtension) Name() string { return "my-extension" }
//
//	// Opt in to specific hooks by implementing their interfaces.
//	func (e *MyExtension) OnQueueDrained(ctx context.Context, processed int, elapsed time.Duration) error {
//	    log.Printf("cascade of %d events drained in %s", processed, elapsed)
//	    return nil
//	}
//
// # Lifecycle Hooks
//
//   - [EventPublished] — a root event was accepted by Publish
//   - [EventDispatched] — a popped event has listeners and is dispatching
//   - [EventDropped] — a popped event has no listeners for its channel
//   - [ListenerCompleted] — a listener returned successfully
//   - [ListenerFailed] — a listener returned an error; the Publish aborts
//   - [QueueDrained] — a Publish call fully drained the queue
//
// The [Registry] fans out each event to all registered extensions that
// implement the corresponding hook interface. Hook errors are logged and
// never propagated; hooks run inside the synchronous dispatch loop and
// must be fast.
package hook
