package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login results.
const (
	resultSuccess     = "success"
	resultInvalid     = "invalid_credentials"
	resultMalformed   = "malformed"
	resultRateLimited = "rate_limited"
	resultError       = "error"
)

// Authorization decisions.
const (
	decisionAllowed         = "allowed"
	decisionUnauthenticated = "unauthenticated"
	decisionForbidden       = "forbidden"
)

var (
	// authRequestsTotal counts login attempts by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total login attempts by result",
		},
		[]string{"result"},
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Login duration including password verification",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	// authzDecisionsTotal counts access decisions by action and decision.
	authzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Authorization decisions by action and outcome",
		},
		[]string{"action", "decision"},
	)

	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Token resolution and policy check duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)
)

// RecordLogin records a login attempt and its duration.
func RecordLogin(result string, durationSeconds float64) {
	authRequestsTotal.WithLabelValues(result).Inc()
	authDuration.Observe(durationSeconds)
}

// RecordDecision records an authorization decision for action.
func RecordDecision(action, decision string, durationSeconds float64) {
	authzDecisionsTotal.WithLabelValues(action, decision).Inc()
	authzCheckDuration.Observe(durationSeconds)
}
