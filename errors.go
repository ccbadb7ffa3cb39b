package pubsub

import "errors"

var (
	// ErrReentrantPublish is returned when Publish is called from inside
	// a listener. Listeners return follow-up events; they never publish.
	ErrReentrantPublish = errors.New("pubsub: publish called during dispatch")

	// ErrCascadeOverflow is returned when a cascade exceeds the limit
	// set with engine.WithCascadeLimit.
	ErrCascadeOverflow = errors.New("pubsub: cascade limit exceeded")
)
