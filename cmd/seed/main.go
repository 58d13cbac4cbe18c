// Package main loads fixture sets into the configured database.
// Usage: articles-seed [--sets users,articles] [--dev]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"articles-admin/internal/config"
	"articles-admin/internal/fixtures"
	"articles-admin/internal/infra/db"
	"articles-admin/internal/observability/logging"
	"articles-admin/internal/server"
	pkgconfig "articles-admin/pkg/config"
)

func main() {
	var (
		sets string
		dev  bool
	)
	flag.StringVar(&sets, "sets", fixtures.SetUsers+","+fixtures.SetArticles,
		"Comma-separated fixture sets, available: "+strings.Join(fixtures.Sets(), ", "))
	flag.BoolVar(&dev, "dev", false, "Also load the dev_users set")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(os.Stdout,
		pkgconfig.GetEnvString("LOG_LEVEL", "info"),
		pkgconfig.GetEnvString("LOG_FORMAT", "text"))
	slog.SetDefault(logger)

	names := splitSets(sets)
	if dev {
		names = append(names, fixtures.SetDevUsers)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seed(ctx, names); err != nil {
		logger.Error("seeding failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("fixtures loaded", slog.Any("sets", names))
}

func seed(ctx context.Context, names []string) error {
	url := pkgconfig.GetEnvString("DATABASE_URL", "")
	database, dialect, err := db.Open(ctx, url, db.ConnectionConfigFromEnv())
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := db.MigrateUp(ctx, database, dialect); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	articles, users, err := server.Repositories(database, dialect)
	if err != nil {
		return err
	}

	loader := &fixtures.Loader{
		DB:         database,
		Dialect:    dialect,
		Users:      users,
		Articles:   articles,
		BcryptCost: pkgconfig.GetEnvInt("BCRYPT_COST", 10),
	}
	return loader.Load(ctx, names...)
}

func splitSets(raw string) []string {
	var names []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			names = append(names, s)
		}
	}
	return names
}
