package auth

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"articles-admin/internal/handler/http/respond"
)

// LoginLimiter throttles login attempts per client IP with a token bucket.
// Buckets idle longer than the refill window are swept lazily.
type LoginLimiter struct {
	limit rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	limiter *rate.Limiter
	seen    time.Time
}

// NewLoginLimiter allows perMinute attempts per IP, refilled evenly over a
// minute. perMinute <= 0 disables limiting. now may be nil.
func NewLoginLimiter(perMinute int, now func() time.Time) *LoginLimiter {
	if now == nil {
		now = time.Now
	}
	l := &LoginLimiter{
		burst:   perMinute,
		idle:    2 * time.Minute,
		now:     now,
		clients: make(map[string]*client),
	}
	if perMinute > 0 {
		l.limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return l
}

// Allow consumes one attempt for key. When the bucket is empty it returns
// false and the wait before the next attempt succeeds.
func (l *LoginLimiter) Allow(key string) (bool, time.Duration) {
	if l.burst <= 0 {
		return true, 0
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.seen = now

	res := c.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (l *LoginLimiter) sweep(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.seen) >= l.idle {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

// Tracked returns the number of client buckets currently held.
func (l *LoginLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Middleware rejects requests over the limit with 429 and Retry-After.
func (l *LoginLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, wait := l.Allow(ip)
		if !ok {
			slog.Warn("login rate limit exceeded", slog.String("ip", ip))
			RecordLogin(resultRateLimited, 0)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			respond.Problem(w, http.StatusTooManyRequests, "Too many login attempts.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP uses the connection address only; forwarded headers are client controlled.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
