// Package engine wires the pubsub subsystems together: the listener
// registry, the pending-event stack, the middleware chain, and the hook
// registry. It drives the synchronous cascading dispatch loop.
//
// This package exists to break the import cycle: the root pubsub package
// defines Event and Listener (imported by registry, queue, middleware and
// hook) and so cannot import those packages back. The engine package sits
// above all subsystem packages and below the application layer.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/pubsub"
	"github.com/xraph/pubsub/hook"
	mw "github.com/xraph/pubsub/middleware"
	"github.com/xraph/pubsub/queue"
	"github.com/xraph/pubsub/registry"
)

// Engine is a synchronous publish/subscribe dispatcher. K is the channel
// key type, S the shared state type, P the payload type.
//
// The Engine holds the caller's state value by pointer for its entire
// lifetime and hands it to every listener it invokes. Nothing else may
// mutate the state while a Publish call is in flight; the Engine is
// single-threaded and not safe for concurrent use.
type Engine[K comparable, S, P any] struct {
	state    *S
	registry *registry.Registry[K, S, P]
	queue    *queue.Stack[K, P]
	hooks    *hook.Registry[K, P]
	logger   *slog.Logger

	clone pubsub.CloneFunc[P]
	mws   []mw.Middleware[K, P]
	chain mw.Middleware[K, P]

	// cascadeLimit bounds events processed per Publish; zero means
	// unlimited (a self-triggering listener then never returns).
	cascadeLimit int

	// draining guards against re-entrant Publish from inside a listener.
	draining bool

	// OpenTelemetry providers (optional; nil means use global).
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	// pendingHooks buffers extensions registered via options until the
	// hook registry exists (it needs the configured logger).
	pendingHooks []hook.Extension
}

// Option configures an Engine.
type Option[K comparable, S, P any] func(*Engine[K, S, P])

// WithLogger sets the structured logger for the engine.
// Defaults to slog.Default().
func WithLogger[K comparable, S, P any](l *slog.Logger) Option[K, S, P] {
	return func(e *Engine[K, S, P]) {
		e.logger = l
	}
}

// WithMiddleware appends middleware to the engine's chain. User
// middleware runs inside the default stack (recover → tracing → metrics
// → logging), immediately around the listener.
func WithMiddleware[K comparable, S, P any](m mw.Middleware[K, P]) Option[K, S, P] {
	return func(e *Engine[K, S, P]) {
		e.mws = append(e.mws, m)
	}
}

// WithHook registers a lifecycle hook extension with the engine.
func WithHook[K comparable, S, P any](h hook.Extension) Option[K, S, P] {
	return func(e *Engine[K, S, P]) {
		e.pendingHooks = append(e.pendingHooks, h)
	}
}

// WithClone sets the payload duplication function. Without one, payloads
// are duplicated by plain value copy, which aliases reference types
// (slices, maps, pointers). Supply a CloneFunc when listeners must not
// observe each other's payload mutations through such types.
func WithClone[K comparable, S, P any](c pubsub.CloneFunc[P]) Option[K, S, P] {
	return func(e *Engine[K, S, P]) {
		e.clone = c
	}
}

// WithCascadeLimit bounds the number of events processed by a single
// Publish call. When the limit is exceeded, Publish discards the
// remaining queue and returns pubsub.ErrCascadeOverflow.
//
// The default (zero) is unlimited: a listener that unconditionally
// re-publishes to its own channel makes Publish never return. That
// hazard is the caller's to avoid; the limit exists as an opt-in guard.
func WithCascadeLimit[K comparable, S, P any](n int) Option[K, S, P] {
	return func(e *Engine[K, S, P]) {
		e.cascadeLimit = n
	}
}

// WithTracerProvider sets a custom OTel TracerProvider for the engine.
// When set, the tracing middleware uses this provider instead of the
// global one.
func WithTracerProvider[K comparable, S, P any](tp trace.TracerProvider) Option[K, S, P] {
	return func(e *Engine[K, S, P]) {
		e.tracerProvider = tp
	}
}

// WithMeterProvider sets a custom OTel MeterProvider for the engine.
// When set, the metrics middleware uses this provider instead of the
// global one.
func WithMeterProvider[K comparable, S, P any](mp metric.MeterProvider) Option[K, S, P] {
	return func(e *Engine[K, S, P]) {
		e.meterProvider = mp
	}
}

// New creates an Engine around the caller's state value. The Engine
// keeps the pointer for its entire lifetime; the caller must not mutate
// the state concurrently with Publish.
func New[K comparable, S, P any](state *S, opts ...Option[K, S, P]) *Engine[K, S, P] {
	e := &Engine[K, S, P]{
		state:    state,
		registry: registry.New[K, S, P](),
		queue:    queue.New[K, P](),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.hooks = hook.NewRegistry[K, P](e.logger)
	for _, h := range e.pendingHooks {
		e.hooks.Register(h)
	}
	e.pendingHooks = nil

	// Build tracing middleware (custom provider or global).
	var tracingMw mw.Middleware[K, P]
	if e.tracerProvider != nil {
		tracer := e.tracerProvider.Tracer("github.com/xraph/pubsub")
		tracingMw = mw.TracingWithTracer[K, P](tracer)
	} else {
		tracingMw = mw.Tracing[K, P]()
	}

	// Build metrics middleware (custom provider or global).
	var metricsMw mw.Middleware[K, P]
	if e.meterProvider != nil {
		meter := e.meterProvider.Meter("github.com/xraph/pubsub")
		metricsMw = mw.MetricsWithMeter[K, P](meter)
	} else {
		metricsMw = mw.Metrics[K, P]()
	}

	// Default middleware stack: recover → tracing → metrics → logging.
	defaultMws := []mw.Middleware[K, P]{
		mw.Recover[K, P](e.logger),
		tracingMw,
		metricsMw,
		mw.Logging[K, P](e.logger),
	}
	allMws := make([]mw.Middleware[K, P], 0, len(defaultMws)+len(e.mws))
	allMws = append(allMws, defaultMws...)
	allMws = append(allMws, e.mws...)
	e.chain = mw.Chain(allMws...)

	return e
}

// Subscribe registers a listener for the channel. Listeners run in
// registration order; registering the same listener twice yields two
// invocations. Subscriptions are permanent; there is no unsubscribe.
func (e *Engine[K, S, P]) Subscribe(channel K, l pubsub.Listener[K, S, P]) {
	e.registry.Add(channel, l)
	e.logger.Debug("listener subscribed",
		slog.Any("channel", channel),
		slog.Int("listeners", e.registry.Len(channel)),
	)
}

// Publish dispatches the event and every event it cascades into,
// synchronously, returning once the queue is fully drained. Publishing
// on a channel with no listeners is a no-op, not an error.
//
// A listener error (or panic, converted by the recover middleware)
// aborts the drain immediately: remaining queued events are discarded,
// leaving the queue empty for the next Publish, and the error is
// returned. Context cancellation between events aborts the same way.
//
// Publish must not be called from inside a listener; doing so returns
// pubsub.ErrReentrantPublish. Listeners cascade by returning follow-up
// events instead.
func (e *Engine[K, S, P]) Publish(ctx context.Context, ev pubsub.Event[K, P]) error {
	if e.draining {
		return pubsub.ErrReentrantPublish
	}

	e.queue.Push(e.dup(ev))
	e.hooks.EmitEventPublished(ctx, ev)

	e.draining = true
	defer func() { e.draining = false }()
	return e.drain(ctx)
}

// drain pops and dispatches events until the queue is empty. An explicit
// loop over the stack, not recursion: cascades can run arbitrarily deep
// and must not grow the call stack.
func (e *Engine[K, S, P]) drain(ctx context.Context) error {
	start := time.Now()
	processed := 0

	for {
		ev, ok := e.queue.Pop()
		if !ok {
			break
		}

		if err := ctx.Err(); err != nil {
			e.queue.Reset()
			return fmt.Errorf("pubsub: dispatch aborted: %w", err)
		}

		processed++
		if e.cascadeLimit > 0 && processed > e.cascadeLimit {
			e.queue.Reset()
			return fmt.Errorf("%w (limit %d)", pubsub.ErrCascadeOverflow, e.cascadeLimit)
		}

		listeners := e.registry.Lookup(ev.Channel)
		if len(listeners) == 0 {
			e.hooks.EmitEventDropped(ctx, ev)
			continue
		}
		e.hooks.EmitEventDispatched(ctx, ev, len(listeners))

		// Each listener's follow-ups are appended to the queue end in
		// the order returned. With the LIFO pop this dispatches a later
		// listener's follow-ups before an earlier listener's, and the
		// last event of a returned slice first. Load-bearing ordering;
		// do not "fix" to FIFO.
		for _, l := range listeners {
			followups, err := e.invoke(ctx, ev, l)
			if err != nil {
				e.hooks.EmitListenerFailed(ctx, ev, err)
				e.queue.Reset()
				return fmt.Errorf("pubsub: listener on channel %v: %w", ev.Channel, err)
			}
			e.queue.PushAll(e.dupAll(followups))
		}
	}

	e.hooks.EmitQueueDrained(ctx, processed, time.Since(start))
	return nil
}

// invoke runs a single listener through the middleware chain with the
// shared state and its own copy of the payload.
func (e *Engine[K, S, P]) invoke(ctx context.Context, ev pubsub.Event[K, P], l pubsub.Listener[K, S, P]) ([]pubsub.Event[K, P], error) {
	start := time.Now()

	handler := func(context.Context) ([]pubsub.Event[K, P], error) {
		dup := e.dup(ev)
		return l(e.state, dup.Payload)
	}

	followups, err := e.chain(ctx, ev, handler)
	if err != nil {
		return nil, err
	}

	e.hooks.EmitListenerCompleted(ctx, ev, len(followups), time.Since(start))
	return followups, nil
}

// dup duplicates an event. The struct copy duplicates the payload by
// value; a configured CloneFunc deep-copies it.
func (e *Engine[K, S, P]) dup(ev pubsub.Event[K, P]) pubsub.Event[K, P] {
	if e.clone != nil {
		ev.Payload = e.clone(ev.Payload)
	}
	return ev
}

func (e *Engine[K, S, P]) dupAll(evs []pubsub.Event[K, P]) []pubsub.Event[K, P] {
	if e.clone == nil || len(evs) == 0 {
		return evs
	}
	out := make([]pubsub.Event[K, P], len(evs))
	for i, ev := range evs {
		out[i] = e.dup(ev)
	}
	return out
}

// State returns the shared state value the engine was constructed with.
// Callers may read it between Publish calls; mutating it concurrently
// with a Publish is a contract violation.
func (e *Engine[K, S, P]) State() *S { return e.state }

// Hooks returns the engine's hook registry, for registering extensions
// after construction.
func (e *Engine[K, S, P]) Hooks() *hook.Registry[K, P] { return e.hooks }

// Channels returns every channel with at least one listener, in
// first-subscription order.
func (e *Engine[K, S, P]) Channels() []K { return e.registry.Channels() }

// Logger returns the engine's logger.
func (e *Engine[K, S, P]) Logger() *slog.Logger { return e.logger }
