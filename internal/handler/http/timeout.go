package http

import (
	"context"
	"net/http"
	"time"
)

// RequestTimeout bounds the request context so database calls give up after d.
// The handler still writes its own response; a cancelled query surfaces as a
// handler error.
func RequestTimeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
