package pubsub

// Listener reacts to an event on a subscribed channel. It receives the
// engine's shared state by exclusive pointer and its own copy of the
// event payload, and returns the follow-up events to feed back into the
// dispatch cycle (nil or empty for none).
//
// Any callable with this signature is accepted, including closures.
// A listener must not retain the state pointer or the payload across
// calls, and must not call Publish on the engine that invoked it:
// follow-ups are returned, never re-published.
//
// Returning a non-nil error aborts the in-flight Publish immediately:
// remaining queued events are discarded and the error surfaces to the
// publisher.
type Listener[K comparable, S, P any] func(state *S, payload P) ([]Event[K, P], error)
