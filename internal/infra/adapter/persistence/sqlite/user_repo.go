package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/infra/db"
	"articles-admin/internal/repository"
)

// UserRepo implements the UserRepository interface using SQLite.
// Roles are stored as a JSON array in a TEXT column.
type UserRepo struct{ db db.Querier }

// NewUserRepo creates a new SQLite-backed user repository.
func NewUserRepo(q db.Querier) repository.UserRepository {
	return &UserRepo{db: q}
}

const userSelect = `
SELECT id, username, first_name, last_name, password_hash, roles, created_at
FROM users
`

func scanUser(row *sql.Row) (*entity.User, error) {
	var user entity.User
	var roles string
	err := row.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName,
		&user.PasswordHash, &roles, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(roles), &user.Roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return &user, nil
}

// Get retrieves a user by ID. Returns (nil, nil) if not found.
func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	user, err := scanUser(repo.db.QueryRowContext(ctx, userSelect+`WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return user, nil
}

// FindByUsername retrieves a user by username. Returns (nil, nil) if not found.
func (repo *UserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := scanUser(repo.db.QueryRowContext(ctx, userSelect+`WHERE username = ? LIMIT 1`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByUsername: %w", err)
	}
	return user, nil
}

// Create inserts a new user and stores the generated ID on it.
func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users
       (username, first_name, last_name, password_hash, roles, created_at)
VALUES (?, ?, ?, ?, ?, ?)`
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	encoded, err := json.Marshal(roles)
	if err != nil {
		return fmt.Errorf("Create: encode roles: %w", err)
	}
	res, err := repo.db.ExecContext(ctx, query,
		user.Username, user.FirstName, user.LastName,
		user.PasswordHash, string(encoded), user.CreatedAt,
	)
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("Create: %q: %w", user.Username, entity.ErrDuplicateUsername)
	}
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	user.ID = id
	return nil
}

// Count returns the total number of users.
func (repo *UserRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
