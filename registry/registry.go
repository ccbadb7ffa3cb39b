package registry

import (
	"github.com/xraph/pubsub"
)

// Registry maps channel keys to the ordered list of listeners subscribed
// to them. Registration order is invocation order. There is no removal:
// subscriptions are permanent for the registry's lifetime.
//
// Like the rest of the engine, the Registry is single-threaded by
// contract and performs no locking.
type Registry[K comparable, S, P any] struct {
	channels map[K][]pubsub.Listener[K, S, P]

	// order remembers first-registration order so Channels is
	// deterministic (map iteration is not).
	order []K
}

// New creates an empty listener registry.
func New[K comparable, S, P any]() *Registry[K, S, P] {
	return &Registry[K, S, P]{
		channels: make(map[K][]pubsub.Listener[K, S, P]),
	}
}

// Add appends a listener to the channel's list, creating the list if this
// is the channel's first subscription. Registering the same listener twice
// on one channel is allowed and yields duplicate invocation.
func (r *Registry[K, S, P]) Add(channel K, l pubsub.Listener[K, S, P]) {
	if _, ok := r.channels[channel]; !ok {
		r.order = append(r.order, channel)
	}
	r.channels[channel] = append(r.channels[channel], l)
}

// Lookup returns the listeners for the channel in registration order, or
// nil when none are subscribed. The returned slice is the registry's own;
// callers must not mutate it.
func (r *Registry[K, S, P]) Lookup(channel K) []pubsub.Listener[K, S, P] {
	return r.channels[channel]
}

// Len returns the number of listeners subscribed to the channel.
func (r *Registry[K, S, P]) Len(channel K) int {
	return len(r.channels[channel])
}

// Channels returns every channel with at least one listener, in
// first-registration order.
func (r *Registry[K, S, P]) Channels() []K {
	out := make([]K, len(r.order))
	copy(out, r.order)
	return out
}
