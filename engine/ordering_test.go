package engine_test

import (
	"context"
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/xraph/pubsub"
	"github.com/xraph/pubsub/engine"
)

// invocation identifies one listener call: the channel and the
// listener's index on that channel.
type invocation struct {
	channel  int
	listener int
}

type traceState struct {
	calls []invocation
}

// TestPublish_OrderingMatchesStackModel checks the engine's dispatch order
// against a direct simulation of the queue contract: pop from the end,
// append each listener's follow-ups in returned order. Random listener
// graphs only emit toward higher-numbered channels, so every cascade
// terminates.
func TestPublish_OrderingMatchesStackModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numChannels := rapid.IntRange(1, 6).Draw(t, "channels")

		// plan[c][l] holds the follow-up channels listener l on channel c
		// emits, in return order.
		plan := make([][][]int, numChannels)
		for c := 0; c < numChannels; c++ {
			numListeners := rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("listeners-%d", c))
			plan[c] = make([][]int, numListeners)
			if c == numChannels-1 {
				continue // highest channel emits nothing
			}
			for l := 0; l < numListeners; l++ {
				plan[c][l] = rapid.SliceOfN(rapid.IntRange(c+1, numChannels-1), 0, 3).
					Draw(t, fmt.Sprintf("emits-%d-%d", c, l))
			}
		}

		st := &traceState{}
		eng := engine.New[int, traceState, int](st,
			engine.WithLogger[int, traceState, int](discardLogger()),
		)
		for c := 0; c < numChannels; c++ {
			for l := range plan[c] {
				channel, emits := c, plan[c][l]
				listener := l
				eng.Subscribe(channel, func(s *traceState, n int) ([]pubsub.Event[int, int], error) {
					s.calls = append(s.calls, invocation{channel, listener})
					evs := make([]pubsub.Event[int, int], 0, len(emits))
					for _, target := range emits {
						evs = append(evs, pubsub.NewEvent(target, n))
					}
					return evs, nil
				})
			}
		}

		if err := eng.Publish(context.Background(), pubsub.NewEvent(0, 0)); err != nil {
			t.Fatalf("Publish: %v", err)
		}

		// Reference model: an explicit stack of channel ids.
		var want []invocation
		stack := []int{0}
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for l, emits := range plan[c] {
				want = append(want, invocation{c, l})
				stack = append(stack, emits...)
			}
		}

		if len(st.calls) != len(want) {
			t.Fatalf("got %d invocations, want %d", len(st.calls), len(want))
		}
		for i := range want {
			if st.calls[i] != want[i] {
				t.Fatalf("invocation %d = %+v, want %+v", i, st.calls[i], want[i])
			}
		}
	})
}
