package pubsub

// Event is a value published on a channel. K is the channel key type
// (any comparable type) and P the payload type.
//
// Events are immutable from the engine's point of view: the engine
// duplicates the payload when the event is enqueued and again each time
// it is handed to a listener, so listeners never observe each other's
// payload mutations.
type Event[K comparable, P any] struct {
	Channel K
	Payload P
}

// NewEvent constructs an Event. It exists mainly so listeners can build
// follow-up events without spelling out the type parameters:
//
//	return []pubsub.Event[string, int]{pubsub.NewEvent("pong", n)}, nil
func NewEvent[K comparable, P any](channel K, payload P) Event[K, P] {
	return Event[K, P]{Channel: channel, Payload: payload}
}

// CloneFunc produces an independent copy of a payload. The engine copies
// payloads by value; for payload types with reference semantics (slices,
// maps, pointers) supply a CloneFunc via engine.WithClone so each listener
// receives its own copy.
type CloneFunc[P any] func(P) P
