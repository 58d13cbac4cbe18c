// Package retry re-runs startup operations, such as the first database
// connection, while they fail with transient errors.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Policy is an exponential backoff schedule.
type Policy struct {
	Attempts int
	First    time.Duration
	Max      time.Duration
	Factor   float64
	// Jitter adds up to this fraction of each delay, in [0,1].
	Jitter float64
}

// Startup waits roughly 15s in total for a database starting next to the API.
func Startup() Policy {
	return Policy{
		Attempts: 5,
		First:    500 * time.Millisecond,
		Max:      5 * time.Second,
		Factor:   2,
		Jitter:   0.1,
	}
}

// Delay returns the wait after the given failed attempt (1-based), without jitter.
func (p Policy) Delay(attempt int) time.Duration {
	d := float64(p.First)
	for i := 1; i < attempt; i++ {
		d *= p.Factor
		if p.Max > 0 && d >= float64(p.Max) {
			return p.Max
		}
	}
	return time.Duration(d)
}

func (p Policy) jittered(d time.Duration) time.Duration {
	j := min(max(p.Jitter, 0), 1)
	if j == 0 {
		return d
	}
	// #nosec G404 -- jitter does not need cryptographic randomness
	return d + time.Duration(rand.Float64()*float64(d)*j)
}

// Do calls fn until it succeeds, fails with a permanent error, ctx ends, or
// the attempts run out.
func Do(ctx context.Context, p Policy, fn func() error) error {
	var err error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				slog.Info("succeeded after retry", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !Transient(err) || attempt == p.Attempts {
			break
		}

		wait := p.jittered(p.Delay(attempt))
		slog.Warn("transient failure, retrying",
			slog.Int("attempt", attempt),
			slog.Int("attempts", p.Attempts),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		t := time.NewTimer(wait)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}
	if !Transient(err) {
		return err
	}
	return fmt.Errorf("gave up after %d attempts: %w", p.Attempts, err)
}

// Transient reports connection failures worth retrying: refused or reset
// connections, timeouts, pgx connect errors and a busy or locked SQLite file.
func Transient(err error) bool {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
