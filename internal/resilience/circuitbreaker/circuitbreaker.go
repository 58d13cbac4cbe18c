// Package circuitbreaker stops sending queries to a database that keeps failing,
// so requests fail fast with ErrUnavailable until a probe succeeds again.
package circuitbreaker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned without touching the database while the breaker
// is open or its half-open probes are exhausted.
var ErrUnavailable = errors.New("database temporarily unavailable")

var stateGauge = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

// Settings tune when the breaker opens and how it recovers.
type Settings struct {
	Name string
	// Probes is the number of calls let through while half-open.
	Probes uint32
	// Window resets the closed-state counts.
	Window time.Duration
	// Cooldown is how long the breaker stays open.
	Cooldown time.Duration
	// TripRatio of failed calls opens the breaker once MinCalls were seen.
	TripRatio float64
	MinCalls  uint32
	// Ignore marks errors that say nothing about database health.
	Ignore func(err error) bool
}

// DatabaseSettings opens after five straight failures and probes again after 30s.
func DatabaseSettings() Settings {
	return Settings{
		Name:      "database",
		Probes:    3,
		Window:    time.Minute,
		Cooldown:  30 * time.Second,
		TripRatio: 1.0,
		MinCalls:  5,
	}
}

// Breaker guards calls with a two-step gobreaker so callers keep their own
// return values.
type Breaker struct {
	cb     *gobreaker.TwoStepCircuitBreaker
	ignore func(error) bool
}

// New returns a closed Breaker.
func New(s Settings) *Breaker {
	cb := gobreaker.NewTwoStepCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.Probes,
		Interval:    s.Window,
		Timeout:     s.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.Requests >= s.MinCalls &&
				float64(c.TotalFailures)/float64(c.Requests) >= s.TripRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			stateGauge.WithLabelValues(name).Set(float64(to))
		},
	})
	stateGauge.WithLabelValues(s.Name).Set(float64(gobreaker.StateClosed))
	return &Breaker{cb: cb, ignore: s.Ignore}
}

// Do runs fn unless the breaker rejects the call, and records its outcome.
func (b *Breaker) Do(fn func() error) error {
	done, err := b.cb.Allow()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	err = fn()
	done(err == nil || (b.ignore != nil && b.ignore(err)))
	return err
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Name returns the name given in Settings.
func (b *Breaker) Name() string {
	return b.cb.Name()
}
