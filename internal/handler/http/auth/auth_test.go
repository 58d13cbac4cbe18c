package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/handler/http/respond"
	authservice "articles-admin/internal/service/auth"
)

var (
	admin = &entity.User{ID: 1, Username: "admin", Roles: []string{entity.RoleAdmin}}
	plain = &entity.User{ID: 2, Username: "user"}
)

type stubTokens map[string]*entity.User

func (s stubTokens) Authenticate(_ context.Context, token string) (*entity.User, error) {
	if token == "broken" {
		return nil, errors.New("connection refused")
	}
	if u, ok := s[token]; ok {
		return u, nil
	}
	return nil, authservice.ErrInvalidToken
}

type stubLogin struct{}

func (stubLogin) Login(_ context.Context, creds authservice.Credentials) (string, *entity.User, error) {
	switch {
	case creds.Username == "admin" && creds.Password == "admin":
		return "signed-token", admin, nil
	case creds.Username == "db":
		return "", nil, errors.New("dial tcp: password=hunter2")
	}
	return "", nil, authservice.ErrInvalidCredentials
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) respond.ProblemDetails {
	t.Helper()
	var p respond.ProblemDetails
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	return p
}

func TestRequire(t *testing.T) {
	a := &Authenticator{
		Tokens: stubTokens{"admin-token": admin, "user-token": plain},
		Policy: authservice.DefaultPolicy(),
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantDetail string
	}{
		{"no header", "", http.StatusUnauthorized, DetailUnauthenticated},
		{"wrong scheme", "Basic YWRtaW46YWRtaW4=", http.StatusUnauthorized, DetailUnauthenticated},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, DetailUnauthenticated},
		{"invalid token", "Bearer forged", http.StatusUnauthorized, DetailUnauthenticated},
		{"not admin", "Bearer user-token", http.StatusForbidden, DetailForbidden},
		{"admin", "Bearer admin-token", http.StatusOK, ""},
		{"lowercase scheme", "bearer admin-token", http.StatusOK, ""},
		{"store failure", "Bearer broken", http.StatusInternalServerError, "An internal error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *entity.User
			h := a.Require(authservice.ActionArticlesList)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/admin/articles", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Same(t, admin, seen)
				return
			}
			assert.Nil(t, seen)
			assert.Equal(t, tt.wantDetail, decodeProblem(t, rec).Detail)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestRequire_RecordsDecision(t *testing.T) {
	a := &Authenticator{Tokens: stubTokens{"user-token": plain}, Policy: authservice.DefaultPolicy()}
	h := a.Require(authservice.ActionArticlesDelete)(http.NotFoundHandler())

	before := testutil.ToFloat64(authzDecisionsTotal.WithLabelValues(authservice.ActionArticlesDelete, decisionForbidden))
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/articles/1", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	h.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(authzDecisionsTotal.WithLabelValues(authservice.ActionArticlesDelete, decisionForbidden))
	assert.Equal(t, before+1, after)
}

func TestUserFromContext_Empty(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)
}

func TestLoginHandler(t *testing.T) {
	h := LoginHandler{Svc: stubLogin{}}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"success", `{"username":"admin","password":"admin"}`, http.StatusOK},
		{"wrong password", `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
		{"empty body", ``, http.StatusBadRequest},
		{"not json", `username=admin`, http.StatusBadRequest},
		{"wrong type", `{"username":1,"password":"admin"}`, http.StatusUnprocessableEntity},
		{"store failure", `{"username":"db","password":"x"}`, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var resp TokenResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "signed-token", resp.Token)
				return
			}
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			assert.NotContains(t, rec.Body.String(), "hunter2")
		})
	}
}

func TestLoginLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 7, 19, 10, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(5, func() time.Time { return now })

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("192.0.2.1")
		require.True(t, ok, "attempt %d", i+1)
	}
	ok, wait := l.Allow("192.0.2.1")
	assert.False(t, ok)
	assert.InDelta(t, float64(12*time.Second), float64(wait), float64(time.Millisecond))

	ok, _ = l.Allow("192.0.2.2")
	assert.True(t, ok, "other clients have their own bucket")

	now = now.Add(13 * time.Second)
	ok, _ = l.Allow("192.0.2.1")
	assert.True(t, ok)
}

func TestLoginLimiter_SweepsIdleClients(t *testing.T) {
	now := time.Date(2025, 7, 19, 10, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(5, func() time.Time { return now })

	l.Allow("192.0.2.1")
	l.Allow("192.0.2.2")
	require.Equal(t, 2, l.Tracked())

	now = now.Add(3 * time.Minute)
	l.Allow("192.0.2.3")
	assert.Equal(t, 1, l.Tracked())
}

func TestLoginLimiter_Disabled(t *testing.T) {
	l := NewLoginLimiter(0, nil)
	for i := 0; i < 100; i++ {
		ok, _ := l.Allow("192.0.2.1")
		require.True(t, ok)
	}
	assert.Equal(t, 0, l.Tracked())
}

func TestLoginLimiter_Middleware(t *testing.T) {
	now := time.Date(2025, 7, 19, 10, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(1, func() time.Time { return now })
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "198.51.100.7:52011"
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)
	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}
