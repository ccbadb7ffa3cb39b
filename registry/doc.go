// Package registry holds the listener table: an append-only mapping from
// channel key to the ordered list of listeners subscribed to it.
//
// The registry only grows. Lookup never mutates it, duplicate
// registrations are honored (and invoked twice), and registration order
// is the order listeners run in when an event is dispatched.
//
//	r := registry.New[string, myState, string]()
//	r.Add("ping", onPing)
//	for _, l := range r.Lookup("ping") {
//	    // invoke l
//	}
//
// Applications normally never touch this package directly; the engine
// owns a Registry and exposes Subscribe on top of it.
package registry
