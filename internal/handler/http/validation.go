package http

import (
	"net/http"

	"articles-admin/internal/handler/http/respond"
)

const (
	maxAuthorizationHeader = 8 << 10
	maxPathLength          = 2 << 10
)

// InputValidation rejects oversized Authorization headers and paths and caps
// the request body at maxBody bytes.
func InputValidation(maxBody int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthorizationHeader {
				respond.Problem(w, http.StatusRequestHeaderFieldsTooLarge, "Authorization header too large.")
				return
			}
			if len(r.URL.Path) > maxPathLength {
				respond.Problem(w, http.StatusRequestURITooLong, "URI too long.")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBody)
			}
			next.ServeHTTP(w, r)
		})
	}
}
