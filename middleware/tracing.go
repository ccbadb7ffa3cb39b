package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/pubsub"
)

// tracerName is the instrumentation scope name for pubsub tracing.
const tracerName = "github.com/xraph/pubsub"

// Tracing returns middleware that wraps each listener invocation in an
// OpenTelemetry span. If no TracerProvider is configured globally, the
// default noop tracer is used and this middleware becomes a pass-through
// with zero overhead.
//
// Span attributes include pubsub.channel (the channel key rendered with
// fmt.Sprint, since channel keys are an arbitrary comparable type) and,
// on success, pubsub.followups. On error, the span status is set to
// codes.Error with the error message.
func Tracing[K comparable, P any]() Middleware[K, P] {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer[K, P](tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer[K comparable, P any](tracer trace.Tracer) Middleware[K, P] {
	return func(ctx context.Context, ev pubsub.Event[K, P], next Handler[K, P]) ([]pubsub.Event[K, P], error) {
		ctx, span := tracer.Start(ctx, "pubsub.listener.invoke",
			trace.WithAttributes(
				attribute.String("pubsub.channel", fmt.Sprint(ev.Channel)),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		followups, err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("pubsub.followups", len(followups)))
			span.SetStatus(codes.Ok, "")
		}

		return followups, err
	}
}
