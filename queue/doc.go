// Package queue defines the pending-event stack the engine drains during
// a Publish call.
//
// The [Stack] is strictly LIFO: Push and PushAll append to the end, Pop
// takes from the end. Follow-up events returned by a listener are
// appended in the order returned, which together with the LIFO pop gives
// the engine's documented cascade ordering: follow-ups from a later
// listener on the same source event dispatch before follow-ups from an
// earlier one, and within a single returned slice the last event
// dispatches first.
//
// The stack is empty before the first Publish and after every Publish
// returns; it is non-empty only while the engine is draining.
package queue
