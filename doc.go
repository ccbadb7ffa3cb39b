// Package pubsub provides a synchronous, in-process publish/subscribe
// engine with cascading dispatch. Callers publish an event carrying a
// channel key and a payload; every listener registered for that channel
// runs against a single shared state value, and any follow-up events a
// listener returns are folded back into the same dispatch cycle until
// the queue is drained.
//
// Pubsub is designed as a library, not a service. Import it, construct
// an engine around your state value, and register listeners as ordinary
// Go functions or closures.
//
// # Quick Start
//
//	type counters struct{ pings, pongs int }
//
//	eng := engine.New[string, counters, string](&counters{})
//
//	eng.Subscribe("ping", func(s *counters, msg string) ([]pubsub.Event[string, string], error) {
//	    s.pings++
//	    return []pubsub.Event[string, string]{pubsub.NewEvent("pong", msg)}, nil
//	})
//	eng.Subscribe("pong", func(s *counters, msg string) ([]pubsub.Event[string, string], error) {
//	    s.pongs++
//	    return nil, nil
//	})
//
//	err := eng.Publish(ctx, pubsub.NewEvent("ping", "hello"))
//
// # Architecture
//
// This root package defines the shared types (Event, Listener, CloneFunc,
// sentinel errors) imported by every subsystem. The registry and queue
// packages hold the listener table and the pending-event stack, middleware
// wraps individual listener invocations, hook fans lifecycle events out to
// extensions, and the engine package sits above all of them and drives the
// dispatch loop.
//
// Dispatch is strictly synchronous and single-threaded: Publish does not
// return until every pending event, including events produced during
// dispatch, has been processed. The engine is not safe for concurrent use.
package pubsub
