package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/handler/http/respond"
	"articles-admin/internal/observability/logging"
	authservice "articles-admin/internal/service/auth"
)

// Problem details for rejected requests.
const (
	DetailUnauthenticated = "Full authentication is required to access this resource."
	DetailForbidden       = "Access Denied."
)

type ctxKey string

const ctxUser ctxKey = "user"

// TokenAuthenticator resolves a bearer token to a stored user.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// Authenticator guards routes with a bearer token and a policy action.
type Authenticator struct {
	Tokens TokenAuthenticator
	Policy authservice.Policy
}

// Require returns middleware admitting only users the policy allows to
// perform action. It runs before the wrapped handler reads the body or query.
//
// A missing or invalid token yields 401, an authenticated user without the
// action yields 403.
func (a *Authenticator) Require(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := logging.FromContext(r.Context())

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				a.unauthenticated(w, action, start)
				return
			}

			user, err := a.Tokens.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, authservice.ErrInvalidToken) {
					logger.Debug("token rejected", slog.String("action", action), slog.Any("error", err))
					a.unauthenticated(w, action, start)
					return
				}
				respond.SafeError(w, http.StatusInternalServerError, err)
				return
			}

			if !a.Policy.CanAccess(user, action) {
				logger.Warn("access denied",
					slog.String("user", user.Username),
					slog.String("action", action))
				RecordDecision(action, decisionForbidden, time.Since(start).Seconds())
				respond.Problem(w, http.StatusForbidden, DetailForbidden)
				return
			}

			RecordDecision(action, decisionAllowed, time.Since(start).Seconds())
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func (a *Authenticator) unauthenticated(w http.ResponseWriter, action string, start time.Time) {
	RecordDecision(action, decisionUnauthenticated, time.Since(start).Seconds())
	w.Header().Set("WWW-Authenticate", "Bearer")
	respond.Problem(w, http.StatusUnauthorized, DetailUnauthenticated)
}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, ctxUser, user)
}

// UserFromContext returns the user stored by Require.
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	u, ok := ctx.Value(ctxUser).(*entity.User)
	return u, ok && u != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
