package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/pubsub"
)

// meterName is the instrumentation scope name for pubsub metrics.
const meterName = "github.com/xraph/pubsub"

// Metrics returns middleware that records per-listener invocation metrics
// using the global OTel MeterProvider. If no MeterProvider is configured,
// noop instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - pubsub.listener.duration (Float64Histogram): invocation time in
//     seconds, with attributes: channel, status ("ok" or "error")
//   - pubsub.listener.invocations (Int64Counter): total invocations,
//     with attributes: channel, status ("ok" or "error")
func Metrics[K comparable, P any]() Middleware[K, P] {
	meter := otel.Meter(meterName)
	return MetricsWithMeter[K, P](meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter[K comparable, P any](meter metric.Meter) Middleware[K, P] {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"pubsub.listener.duration",
		metric.WithDescription("Duration of listener invocation in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	invocations, iErr := meter.Int64Counter(
		"pubsub.listener.invocations",
		metric.WithDescription("Total number of listener invocations"),
		metric.WithUnit("{invocation}"),
	)
	_ = iErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, ev pubsub.Event[K, P], next Handler[K, P]) ([]pubsub.Event[K, P], error) {
		start := time.Now()
		followups, err := next(ctx)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		if err != nil {
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("channel", fmt.Sprint(ev.Channel)),
			attribute.String("status", status),
		)

		duration.Record(ctx, elapsed, attrs)
		invocations.Add(ctx, 1, attrs)

		return followups, err
	}
}
