package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/infra/db"
	"articles-admin/internal/repository"
)

type UserRepo struct {
	db db.Querier
}

func NewUserRepo(q db.Querier) repository.UserRepository {
	return &UserRepo{db: q}
}

const userColumns = `id, username, first_name, last_name, password_hash, roles, created_at`

func scanUser(row *sql.Row) (*entity.User, error) {
	var user entity.User
	roles := pq.StringArray{}
	err := row.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName,
		&user.PasswordHash, &roles, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	user.Roles = []string(roles)
	return &user, nil
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	user, err := scanUser(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return user, nil
}

func (repo *UserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1 LIMIT 1`
	user, err := scanUser(repo.db.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByUsername: %w", err)
	}
	return user, nil
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users
       (username, first_name, last_name, password_hash, roles, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	err := repo.db.QueryRowContext(ctx, query,
		user.Username, user.FirstName, user.LastName,
		user.PasswordHash, pq.Array(roles), user.CreatedAt,
	).Scan(&user.ID)
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("Create: %q: %w", user.Username, entity.ErrDuplicateUsername)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM users`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
