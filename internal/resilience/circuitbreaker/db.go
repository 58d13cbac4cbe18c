package circuitbreaker

import (
	"context"
	"database/sql"
)

// GuardedDB is a db.Querier whose queries and statements pass through a Breaker.
type GuardedDB struct {
	*Breaker
	db *sql.DB
}

// NewGuardedDB wraps db with DatabaseSettings. ignore marks client errors,
// such as constraint violations, that must not open the breaker; nil counts
// every error.
func NewGuardedDB(db *sql.DB, ignore func(error) bool) *GuardedDB {
	s := DatabaseSettings()
	s.Ignore = ignore
	return NewGuardedDBWithSettings(db, s)
}

// NewGuardedDBWithSettings wraps db with a Breaker built from s.
func NewGuardedDBWithSettings(db *sql.DB, s Settings) *GuardedDB {
	return &GuardedDB{Breaker: New(s), db: db}
}

func (g *GuardedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	err := g.Do(func() error {
		var err error
		rows, err = g.db.QueryContext(ctx, query, args...)
		return err
	})
	return rows, err
}

func (g *GuardedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := g.Do(func() error {
		var err error
		res, err = g.db.ExecContext(ctx, query, args...)
		return err
	})
	return res, err
}

// QueryRowContext is not guarded: *sql.Row reports its error only on Scan.
func (g *GuardedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return g.db.QueryRowContext(ctx, query, args...)
}

// PingContext bypasses the breaker so health checks see the real database.
func (g *GuardedDB) PingContext(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

// DB returns the wrapped pool.
func (g *GuardedDB) DB() *sql.DB {
	return g.db
}
