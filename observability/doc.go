// Package observability provides a ready-made metrics extension for the
// pubsub engine.
//
// [MetricsExtension] implements the hook interfaces and records lifecycle
// counters (events published, dispatched, dropped; listeners completed,
// failed) plus a histogram of cascade sizes, all through OpenTelemetry.
//
//	eng := engine.New[string, myState, string](&state,
//	    engine.WithHook[string, myState, string](
//	        observability.NewMetricsExtension[string, string](),
//	    ),
//	)
//
// With no MeterProvider configured globally the instruments are noops and
// the extension costs nothing.
package observability
