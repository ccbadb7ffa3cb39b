package middleware_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/pubsub"
	mw "github.com/xraph/pubsub/middleware"
)

func setupTestTracer() (*tracetest.SpanRecorder, trace.Tracer) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	tracer := tp.Tracer("test")
	return sr, tracer
}

func TestTracing_CreatesSpan(t *testing.T) {
	sr, tracer := setupTestTracer()
	m := mw.TracingWithTracer[string, int](tracer)

	_, err := m(context.Background(), newTestEvent(), func(context.Context) ([]pubsub.Event[string, int], error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "pubsub.listener.invoke" {
		t.Errorf("span name = %q, want %q", spans[0].Name(), "pubsub.listener.invoke")
	}
}

func TestTracing_SpanAttributes(t *testing.T) {
	sr, tracer := setupTestTracer()
	m := mw.TracingWithTracer[string, int](tracer)

	followups := []pubsub.Event[string, int]{
		pubsub.NewEvent("pong", 1),
		pubsub.NewEvent("pong", 2),
	}
	_, _ = m(context.Background(), newTestEvent(), func(context.Context) ([]pubsub.Event[string, int], error) {
		return followups, nil
	})

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	var gotChannel string
	var gotFollowups int64
	for _, attr := range spans[0].Attributes() {
		switch string(attr.Key) {
		case "pubsub.channel":
			gotChannel = attr.Value.AsString()
		case "pubsub.followups":
			gotFollowups = attr.Value.AsInt64()
		}
	}
	if gotChannel != "ping" {
		t.Errorf("pubsub.channel = %q, want %q", gotChannel, "ping")
	}
	if gotFollowups != 2 {
		t.Errorf("pubsub.followups = %d, want 2", gotFollowups)
	}
}

func TestTracing_ErrorStatus(t *testing.T) {
	sr, tracer := setupTestTracer()
	m := mw.TracingWithTracer[string, int](tracer)

	sentinel := errors.New("boom")
	_, err := m(context.Background(), newTestEvent(), func(context.Context) ([]pubsub.Event[string, int], error) {
		return nil, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want %v", err, sentinel)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("status code = %v, want %v", spans[0].Status().Code, codes.Error)
	}
	if len(spans[0].Events()) == 0 {
		t.Error("expected a recorded error event on the span")
	}
}
