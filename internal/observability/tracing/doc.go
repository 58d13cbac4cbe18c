// Package tracing wires OpenTelemetry into the API.
//
// NewProvider installs a TracerProvider that exports spans to a writer as JSON
// and sets the W3C TraceContext and Baggage propagators. Middleware starts one
// server span per request; use cases open child spans with StartSpan.
//
// When no provider is installed the global no-op provider is used, so spans
// cost nothing in tests and when TRACING_ENABLED is false.
package tracing
