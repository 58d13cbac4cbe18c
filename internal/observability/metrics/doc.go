// Package metrics owns the Prometheus collectors of the API.
//
// Collectors register with the default registry through promauto and are
// exposed on /metrics. HTTP traffic is recorded by the HTTP middleware, entity
// gauges and connection pool gauges by the periodic stats job, and article
// mutations by the article use case.
package metrics
