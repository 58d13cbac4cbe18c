package pathutil

import "strings"

// idRoutes are collections whose single trailing segment is an identifier.
// Malformed ids answer 404 but collapse to the same label.
var idRoutes = []string{"/api/admin/articles"}

// NormalizePath converts a request path to the low-cardinality label used by
// metrics and spans.
//
//	NormalizePath("/api/admin/articles/13")   // "/api/admin/articles/:id"
//	NormalizePath("/api/admin/articles/abc")  // "/api/admin/articles/:id"
//	NormalizePath("/api/admin/articles/")     // "/api/admin/articles"
//	NormalizePath("/swagger/index.html")      // "/swagger/*"
//	NormalizePath("/health?verbose=1")        // "/health"
func NormalizePath(path string) string {
	path, _, _ = strings.Cut(path, "?")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	if rest, ok := strings.CutPrefix(path, "/swagger/"); ok && rest != "" {
		return "/swagger/*"
	}
	for _, base := range idRoutes {
		seg, ok := strings.CutPrefix(path, base+"/")
		if ok && seg != "" && !strings.Contains(seg, "/") {
			return base + "/:id"
		}
	}
	return path
}
