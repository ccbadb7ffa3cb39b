package registry_test

import (
	"testing"

	"github.com/xraph/pubsub"
	"github.com/xraph/pubsub/registry"
)

type state struct{ calls []string }

func named(name string) pubsub.Listener[string, state, int] {
	return func(s *state, _ int) ([]pubsub.Event[string, int], error) {
		s.calls = append(s.calls, name)
		return nil, nil
	}
}

func TestRegistry_LookupMissing(t *testing.T) {
	r := registry.New[string, state, int]()
	if got := r.Lookup("nope"); got != nil {
		t.Fatalf("Lookup on unregistered channel = %v, want nil", got)
	}
	if r.Len("nope") != 0 {
		t.Fatalf("Len = %d, want 0", r.Len("nope"))
	}
}

func TestRegistry_AddPreservesOrder(t *testing.T) {
	r := registry.New[string, state, int]()
	r.Add("ping", named("first"))
	r.Add("ping", named("second"))
	r.Add("ping", named("third"))

	listeners := r.Lookup("ping")
	if len(listeners) != 3 {
		t.Fatalf("len(listeners) = %d, want 3", len(listeners))
	}

	var s state
	for _, l := range listeners {
		if _, err := l(&s, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	want := []string{"first", "second", "third"}
	for i, name := range want {
		if s.calls[i] != name {
			t.Errorf("calls[%d] = %q, want %q", i, s.calls[i], name)
		}
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := registry.New[string, state, int]()
	l := named("dup")
	r.Add("ping", l)
	r.Add("ping", l)

	if r.Len("ping") != 2 {
		t.Fatalf("Len = %d, want 2 (duplicate registration yields duplicate invocation)", r.Len("ping"))
	}
}

func TestRegistry_LookupDoesNotMutate(t *testing.T) {
	r := registry.New[string, state, int]()
	r.Add("ping", named("l"))

	for i := 0; i < 3; i++ {
		if got := r.Lookup("ping"); len(got) != 1 {
			t.Fatalf("Lookup changed registry state: len = %d, want 1", len(got))
		}
	}
	// Lookup on a missing channel must not create an entry either.
	_ = r.Lookup("ghost")
	if got := r.Channels(); len(got) != 1 {
		t.Fatalf("Channels = %v, want exactly [ping]", got)
	}
}

func TestRegistry_ChannelsFirstRegistrationOrder(t *testing.T) {
	r := registry.New[string, state, int]()
	r.Add("c", named("1"))
	r.Add("a", named("2"))
	r.Add("c", named("3"))
	r.Add("b", named("4"))

	want := []string{"c", "a", "b"}
	got := r.Channels()
	if len(got) != len(want) {
		t.Fatalf("Channels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Channels[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
