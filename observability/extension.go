package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/pubsub"
	"github.com/xraph/pubsub/hook"
)

// Compile-time interface checks.
var (
	_ hook.Extension                      = (*MetricsExtension[string, any])(nil)
	_ hook.EventPublished[string, any]    = (*MetricsExtension[string, any])(nil)
	_ hook.EventDispatched[string, any]   = (*MetricsExtension[string, any])(nil)
	_ hook.EventDropped[string, any]      = (*MetricsExtension[string, any])(nil)
	_ hook.ListenerCompleted[string, any] = (*MetricsExtension[string, any])(nil)
	_ hook.ListenerFailed[string, any]    = (*MetricsExtension[string, any])(nil)
	_ hook.QueueDrained                   = (*MetricsExtension[string, any])(nil)
)

// meterName is the instrumentation scope name for the metrics extension.
const meterName = "github.com/xraph/pubsub/observability"

// MetricsExtension records engine-wide lifecycle metrics via OpenTelemetry.
// Register it as an engine hook to automatically track publish rates, drop
// counts, listener completions and failures, and cascade sizes.
//
// Instruments:
//   - pubsub.event.published (Int64Counter)
//   - pubsub.event.dispatched (Int64Counter)
//   - pubsub.event.dropped (Int64Counter)
//   - pubsub.listener.completed (Int64Counter)
//   - pubsub.listener.failed (Int64Counter)
//   - pubsub.drain.events (Int64Histogram): events dispatched per Publish
type MetricsExtension[K comparable, P any] struct {
	published   metric.Int64Counter
	dispatched  metric.Int64Counter
	dropped     metric.Int64Counter
	completed   metric.Int64Counter
	failed      metric.Int64Counter
	drainEvents metric.Int64Histogram
}

// NewMetricsExtension creates a MetricsExtension using the global OTel
// MeterProvider. If none is configured, noop instruments are used.
func NewMetricsExtension[K comparable, P any]() *MetricsExtension[K, P] {
	return NewMetricsExtensionWithMeter[K, P](otel.Meter(meterName))
}

// NewMetricsExtensionWithMeter creates a MetricsExtension with the provided
// meter. Use this variant to inject a specific MeterProvider for testing.
func NewMetricsExtensionWithMeter[K comparable, P any](meter metric.Meter) *MetricsExtension[K, P] {
	// On instrument-creation error the OTel API returns noop instruments,
	// so the extension degrades gracefully.
	published, _ := meter.Int64Counter(
		"pubsub.event.published",
		metric.WithDescription("Total root events accepted by Publish"),
		metric.WithUnit("{event}"),
	)
	dispatched, _ := meter.Int64Counter(
		"pubsub.event.dispatched",
		metric.WithDescription("Total events dispatched to listeners"),
		metric.WithUnit("{event}"),
	)
	dropped, _ := meter.Int64Counter(
		"pubsub.event.dropped",
		metric.WithDescription("Total events popped with no listeners registered"),
		metric.WithUnit("{event}"),
	)
	completed, _ := meter.Int64Counter(
		"pubsub.listener.completed",
		metric.WithDescription("Total successful listener invocations"),
		metric.WithUnit("{invocation}"),
	)
	failed, _ := meter.Int64Counter(
		"pubsub.listener.failed",
		metric.WithDescription("Total failed listener invocations"),
		metric.WithUnit("{invocation}"),
	)
	drainEvents, _ := meter.Int64Histogram(
		"pubsub.drain.events",
		metric.WithDescription("Events dispatched per Publish call"),
		metric.WithUnit("{event}"),
	)

	return &MetricsExtension[K, P]{
		published:   published,
		dispatched:  dispatched,
		dropped:     dropped,
		completed:   completed,
		failed:      failed,
		drainEvents: drainEvents,
	}
}

// Name implements hook.Extension.
func (m *MetricsExtension[K, P]) Name() string { return "observability-metrics" }

// OnEventPublished implements hook.EventPublished.
func (m *MetricsExtension[K, P]) OnEventPublished(ctx context.Context, _ pubsub.Event[K, P]) error {
	m.published.Add(ctx, 1)
	return nil
}

// OnEventDispatched implements hook.EventDispatched.
func (m *MetricsExtension[K, P]) OnEventDispatched(ctx context.Context, _ pubsub.Event[K, P], _ int) error {
	m.dispatched.Add(ctx, 1)
	return nil
}

// OnEventDropped implements hook.EventDropped.
func (m *MetricsExtension[K, P]) OnEventDropped(ctx context.Context, _ pubsub.Event[K, P]) error {
	m.dropped.Add(ctx, 1)
	return nil
}

// OnListenerCompleted implements hook.ListenerCompleted.
func (m *MetricsExtension[K, P]) OnListenerCompleted(ctx context.Context, _ pubsub.Event[K, P], _ int, _ time.Duration) error {
	m.completed.Add(ctx, 1)
	return nil
}

// OnListenerFailed implements hook.ListenerFailed.
func (m *MetricsExtension[K, P]) OnListenerFailed(ctx context.Context, _ pubsub.Event[K, P], _ error) error {
	m.failed.Add(ctx, 1)
	return nil
}

// OnQueueDrained implements hook.QueueDrained.
func (m *MetricsExtension[K, P]) OnQueueDrained(ctx context.Context, processed int, _ time.Duration) error {
	m.drainEvents.Record(ctx, int64(processed))
	return nil
}
