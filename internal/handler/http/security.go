package http

import (
	"net/http"
	"strings"
)

// Content-Security-Policy values. The API only serves JSON; the Swagger UI
// needs inline assets from the CDN it loads from.
const (
	StrictCSP  = "default-src 'none'; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'"
	SwaggerCSP = "default-src 'self'; script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
		"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; img-src 'self' data: https:; " +
		"font-src 'self' data:; connect-src 'self' blob:; frame-ancestors 'none'; base-uri 'self'; " +
		"form-action 'self'; object-src 'none'"
)

// SecurityHeaders sets Content-Security-Policy, nosniff and frame denial on
// every response. Paths under a key of policies get that policy instead of
// def; the longest matching prefix wins.
func SecurityHeaders(def string, policies map[string]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if csp := selectPolicy(r.URL.Path, def, policies); csp != "" {
				h.Set("Content-Security-Policy", csp)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}

func selectPolicy(path, def string, policies map[string]string) string {
	longest := ""
	selected := def
	for prefix, csp := range policies {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(longest) {
			longest = prefix
			selected = csp
		}
	}
	return selected
}
