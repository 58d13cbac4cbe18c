package repository

import (
	"context"

	"articles-admin/internal/domain/entity"
)

// UserRepository persists user accounts.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// Create inserts the user and assigns its generated ID.
	// It returns an error wrapping entity.ErrDuplicateUsername when the username is taken.
	Create(ctx context.Context, user *entity.User) error
	Count(ctx context.Context) (int64, error)
}
