// Package middleware provides composable middleware around listener
// invocation.
//
// A [Middleware] wraps the terminal [Handler] that actually calls the
// listener. Middleware run synchronously inside the dispatch loop, in
// the order given to [Chain] (first is outermost).
//
// Built-in middleware:
//
//   - [Recover] — converts listener panics into errors (with a logged
//     stack trace) so they abort the Publish instead of unwinding it
//   - [Logging] — structured slog logging per invocation
//   - [Tracing] — OpenTelemetry span per invocation
//   - [Metrics] — OpenTelemetry duration histogram and invocation counter
//
// The engine installs Recover, Tracing, Metrics and Logging by default;
// additional middleware appended with engine.WithMiddleware run inside
// the defaults, immediately around the listener.
package middleware
