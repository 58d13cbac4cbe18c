package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/repository"
)

// UserStoreProvider authenticates against bcrypt hashes in the user store.
type UserStoreProvider struct {
	users repository.UserRepository
	// dummyHash is compared when the username is unknown so both paths cost one bcrypt check.
	dummyHash []byte
}

// NewUserStoreProvider returns a provider reading users from users.
// cost is the bcrypt cost used for the timing-equalisation hash.
func NewUserStoreProvider(users repository.UserRepository, cost int) (*UserStoreProvider, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("timing-equalisation"), cost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}
	return &UserStoreProvider{users: users, dummyHash: dummy}, nil
}

// Authenticate implements AuthProvider.
func (p *UserStoreProvider) Authenticate(ctx context.Context, creds Credentials) (*entity.User, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := p.users.FindByUsername(ctx, creds.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(p.dummyHash, []byte(creds.Password))
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password))
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("compare password hash: %w", err)
	}
}

// Name implements AuthProvider.
func (p *UserStoreProvider) Name() string {
	return "user_store"
}

// HashPassword returns the bcrypt hash of password at cost.
func HashPassword(password string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
