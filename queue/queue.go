package queue

import (
	"github.com/xraph/pubsub"
)

// Stack is the pending-event queue. Despite the package name it is a
// last-in-first-out stack: Push appends to the end and Pop removes from
// the end. The discipline is load-bearing: it determines the order
// cascading follow-up events dispatch in and must not be swapped for
// FIFO.
//
// Like the rest of the engine, the Stack is single-threaded by contract
// and performs no locking.
type Stack[K comparable, P any] struct {
	events []pubsub.Event[K, P]
}

// New creates an empty event stack.
func New[K comparable, P any]() *Stack[K, P] {
	return &Stack[K, P]{}
}

// Push appends an event to the end of the stack.
func (s *Stack[K, P]) Push(ev pubsub.Event[K, P]) {
	s.events = append(s.events, ev)
}

// PushAll appends events to the end of the stack, preserving slice order.
// Combined with the LIFO Pop this means the last element of evs is the
// next event dispatched.
func (s *Stack[K, P]) PushAll(evs []pubsub.Event[K, P]) {
	s.events = append(s.events, evs...)
}

// Pop removes and returns the most recently pushed event. The second
// return is false when the stack is empty.
func (s *Stack[K, P]) Pop() (pubsub.Event[K, P], bool) {
	if len(s.events) == 0 {
		var zero pubsub.Event[K, P]
		return zero, false
	}
	ev := s.events[len(s.events)-1]
	s.events = s.events[:len(s.events)-1]
	return ev, true
}

// Len returns the number of pending events.
func (s *Stack[K, P]) Len() int {
	return len(s.events)
}

// Reset discards all pending events. The engine calls this when a
// dispatch aborts so the queue-empty invariant holds for the next
// Publish.
func (s *Stack[K, P]) Reset() {
	s.events = s.events[:0]
}
