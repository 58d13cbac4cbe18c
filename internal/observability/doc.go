// Package observability groups the logging, metrics and tracing packages used
// by the API server and the seed command.
//
// Subpackages:
//   - logging: slog construction, request-scoped loggers, trace id injection
//   - metrics: Prometheus collectors for HTTP traffic and stored entities
//   - tracing: OpenTelemetry provider, HTTP middleware and span helpers
package observability
