// Package auth authenticates users against the user store, issues and verifies
// JWT access tokens and decides which actions a user may perform.
// It does not depend on net/http.
package auth

import (
	"context"
	"errors"
	"fmt"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for a missing, malformed, expired or forged token,
	// and for a token whose subject no longer exists.
	ErrInvalidToken = errors.New("invalid token")
)

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// AuthProvider checks credentials and returns the matching user.
type AuthProvider interface {
	Authenticate(ctx context.Context, creds Credentials) (*entity.User, error)
	Name() string
}

// AuthService handles login and token resolution.
type AuthService struct {
	provider AuthProvider
	tokens   *TokenIssuer
	users    repository.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(provider AuthProvider, tokens *TokenIssuer, users repository.UserRepository) *AuthService {
	return &AuthService{provider: provider, tokens: tokens, users: users}
}

// Login validates creds and returns a signed access token for the user.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (string, *entity.User, error) {
	user, err := s.provider.Authenticate(ctx, creds)
	if err != nil {
		return "", nil, err
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Authenticate verifies token and loads its subject from the store, so a
// deleted account or a changed role takes effect on the next request.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("load token subject: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}
