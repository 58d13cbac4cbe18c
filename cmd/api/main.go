package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"articles-admin/internal/config"
	"articles-admin/internal/infra/db"
	"articles-admin/internal/infra/stats"
	"articles-admin/internal/observability/logging"
	"articles-admin/internal/observability/tracing"
	"articles-admin/internal/resilience/circuitbreaker"
	"articles-admin/internal/resilience/retry"
	"articles-admin/internal/server"

	_ "articles-admin/docs" // swagger docs
)

// @title           Articles Admin API
// @version         1.0
// @description     Administrative REST API for managing articles.
// @description     Every /api/admin route requires a bearer token carrying ROLE_ADMIN.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT issued by POST /api/login, sent as "Bearer {token}".

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("failed to read .env", slog.Any("error", err))
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, dialect := initDatabase(ctx, logger, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	shutdownTracing := initTracing(ctx, logger, cfg)
	defer shutdownTracing()

	breaker := circuitbreaker.NewGuardedDB(database, db.IsClientError)
	app, err := server.New(server.Options{
		Config:  cfg,
		DB:      database,
		Querier: breaker,
		Dialect: dialect,
		Breaker: breaker,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to assemble server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(ctx, logger, cfg, app, database); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// initLogger installs the configured slog logger as the default.
func initLogger(cfg *config.Config) *slog.Logger {
	logger := logging.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database, retrying while it starts, and applies the schema.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*sql.DB, db.Dialect) {
	var (
		database *sql.DB
		dialect  db.Dialect
	)
	err := retry.Do(ctx, retry.Startup(), func() error {
		var err error
		database, dialect, err = db.Open(ctx, cfg.DatabaseURL, cfg.DB)
		return err
	})
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database, dialect); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database, dialect
}

// initTracing installs the stdout span exporter when tracing is enabled.
// The returned func flushes pending spans.
func initTracing(ctx context.Context, logger *slog.Logger, cfg *config.Config) func() {
	if !cfg.TracingEnabled {
		return func() {}
	}
	provider, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    "articles-admin",
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		SampleRatio:    cfg.TracingSampleRatio,
	}, os.Stderr)
	if err != nil {
		logger.Error("failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("tracing enabled", slog.Float64("sample_ratio", cfg.TracingSampleRatio))
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("tracing shutdown failed", slog.Any("error", err))
		}
	}
}

// newHTTPServer builds the API server. Request contexts keep ctx's values but
// not its cancellation; Shutdown drains them.
func newHTTPServer(ctx context.Context, addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}
}

// run serves HTTP and refreshes the stats gauges until ctx is cancelled,
// then shuts the server down gracefully.
func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, app *server.App, database *sql.DB) error {
	srv := newHTTPServer(ctx, cfg.HTTPAddr, app.Handler)

	collector := &stats.Collector{
		Articles: app.Articles,
		Users:    app.Users,
		DBStats:  database.Stats,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   logger,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version),
			slog.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return collector.Run(gctx, cfg.StatsSchedule)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
