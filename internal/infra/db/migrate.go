package db

import (
	"context"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    username      VARCHAR(180) NOT NULL,
    first_name    VARCHAR(255) NOT NULL DEFAULT '',
    last_name     VARCHAR(255) NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    roles         TEXT[] NOT NULL DEFAULT '{}',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT uniq_users_username UNIQUE (username)
)`,
	`CREATE TABLE IF NOT EXISTS articles (
    id            BIGSERIAL PRIMARY KEY,
    title         VARCHAR(255) NOT NULL,
    content       TEXT NOT NULL,
    short_content VARCHAR(255) NOT NULL,
    author_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT NOT NULL UNIQUE,
    first_name    TEXT NOT NULL DEFAULT '',
    last_name     TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    roles         TEXT NOT NULL DEFAULT '[]',
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS articles (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    title         TEXT NOT NULL,
    content       TEXT NOT NULL,
    short_content TEXT NOT NULL,
    author_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id)`,
}

// MigrateUp creates the users and articles tables if they do not exist.
func MigrateUp(ctx context.Context, q Querier, dialect Dialect) error {
	stmts, err := schemaFor(dialect)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}
	return nil
}

// Reset removes every row and restarts identity sequences so the next
// inserted user and article both get id 1.
func Reset(ctx context.Context, q Querier, dialect Dialect) error {
	var stmts []string
	switch dialect {
	case Postgres:
		stmts = []string{`TRUNCATE TABLE articles, users RESTART IDENTITY CASCADE`}
	case SQLite:
		stmts = []string{
			`DELETE FROM articles`,
			`DELETE FROM users`,
			`DELETE FROM sqlite_sequence WHERE name IN ('articles', 'users')`,
		}
	default:
		return fmt.Errorf("Reset: unsupported dialect %q", dialect)
	}
	for _, stmt := range stmts {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("Reset: %w", err)
		}
	}
	return nil
}

func schemaFor(dialect Dialect) ([]string, error) {
	switch dialect {
	case Postgres:
		return postgresSchema, nil
	case SQLite:
		return sqliteSchema, nil
	default:
		return nil, fmt.Errorf("MigrateUp: unsupported dialect %q", dialect)
	}
}
