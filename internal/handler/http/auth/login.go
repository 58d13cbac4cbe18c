// Package auth exposes the login endpoint and the middleware guarding the
// admin routes with a bearer token and a policy action.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/handler/http/binding"
	"articles-admin/internal/handler/http/respond"
	"articles-admin/internal/observability/logging"
	authservice "articles-admin/internal/service/auth"
)

// DetailInvalidCredentials is the problem detail for a failed login.
const DetailInvalidCredentials = "Invalid credentials."

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"admin"`
}

// TokenResponse carries the issued access token.
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// LoginService issues tokens for valid credentials.
type LoginService interface {
	Login(ctx context.Context, creds authservice.Credentials) (string, *entity.User, error)
}

// LoginHandler authenticates a username and password and returns a JWT.
type LoginHandler struct {
	Svc LoginService
}

// ServeHTTP issues an access token.
//
// @Summary      Obtain an access token
// @Description  Authenticates with username and password and returns an HS256 JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} respond.ProblemDetails "Malformed body"
// @Failure      401 {object} respond.ProblemDetails "Invalid credentials"
// @Failure      429 {object} respond.ProblemDetails "Too many login attempts"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      500 {object} respond.ProblemDetails
// @Router       /api/login [post]
func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := logging.FromContext(r.Context())

	var req LoginRequest
	if err := binding.DecodeJSON(r, &req); err != nil {
		logger.Warn("login failed", slog.String("reason", "malformed_request"))
		RecordLogin(resultMalformed, time.Since(start).Seconds())
		binding.WriteError(w, err)
		return
	}

	token, user, err := h.Svc.Login(r.Context(), authservice.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			logger.Warn("login failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordLogin(resultInvalid, time.Since(start).Seconds())
			respond.Problem(w, http.StatusUnauthorized, DetailInvalidCredentials)
			return
		}
		RecordLogin(resultError, time.Since(start).Seconds())
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("login succeeded",
		slog.String("user", user.Username),
		slog.Any("roles", user.EffectiveRoles()),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	RecordLogin(resultSuccess, time.Since(start).Seconds())
	respond.JSON(w, http.StatusOK, TokenResponse{Token: token})
}
