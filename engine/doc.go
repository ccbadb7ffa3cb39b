// Package engine provides the synchronous cascading dispatcher that ties
// the pubsub subsystems together.
//
// # Dispatch Model
//
// Publish pushes the event onto the pending stack, then loops: pop the
// most recently queued event, look up its channel's listeners, and invoke
// each in registration order with the shared state and a copy of the
// payload. Every follow-up event a listener returns is appended, in the
// order returned, to the end of the stack. The loop runs until the stack
// is empty, so cascades of arbitrary depth fully resolve before Publish
// returns.
//
// The engine has exactly two observable states: idle (queue empty) and
// draining (inside a Publish call). No public operation observes the
// engine mid-drain, and Publish called from a listener is rejected with
// pubsub.ErrReentrantPublish.
//
// # Cascade Ordering
//
// The pending stack is LIFO. Combined with in-order appends this gives a
// specific, deliberately preserved ordering for sibling follow-ups: if
// two listeners on one channel each return follow-up events, the second
// listener's follow-ups dispatch before the first's, and within a single
// returned slice the last event dispatches first. Code that depends on
// cascade order depends on exactly this.
//
// # Termination
//
// A listener that unconditionally re-publishes to its own channel makes
// Publish never return. The engine performs no cycle detection; use
// WithCascadeLimit to opt into a bound when listener graphs are not
// known to terminate.
package engine
