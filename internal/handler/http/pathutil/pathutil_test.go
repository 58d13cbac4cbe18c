package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/api/admin/articles":            "/api/admin/articles",
		"/api/admin/articles/":           "/api/admin/articles",
		"/api/admin/articles/13":         "/api/admin/articles/:id",
		"/api/admin/articles/13/":        "/api/admin/articles/:id",
		"/api/admin/articles/foo":        "/api/admin/articles/:id",
		"/api/admin/articles?page=2":     "/api/admin/articles",
		"/api/login":                     "/api/login",
		"/swagger/index.html":            "/swagger/*",
		"/health":                        "/health",
		"/":                              "/",
		"/api/admin/articles/1/comments": "/api/admin/articles/1/comments",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, NormalizePath(in))
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-1", "+1", "abc", "1.5", "99999999999999999999"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseID(raw)
			assert.ErrorIs(t, err, ErrInvalidID)
		})
	}
}
