// Package server assembles repositories, services, handlers and middleware
// into the API's http.Handler.
package server

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"articles-admin/internal/config"
	hhttp "articles-admin/internal/handler/http"
	harticle "articles-admin/internal/handler/http/article"
	hauth "articles-admin/internal/handler/http/auth"
	"articles-admin/internal/handler/http/binding"
	"articles-admin/internal/handler/http/requestid"
	"articles-admin/internal/infra/adapter/persistence/postgres"
	"articles-admin/internal/infra/adapter/persistence/sqlite"
	"articles-admin/internal/infra/db"
	"articles-admin/internal/observability/tracing"
	"articles-admin/internal/repository"
	authservice "articles-admin/internal/service/auth"
	artUC "articles-admin/internal/usecase/article"
)

// Options are the dependencies of New.
type Options struct {
	Config *config.Config
	// DB backs the health probes and pool statistics.
	DB *sql.DB
	// Querier is used by the repositories. Nil means DB.
	Querier db.Querier
	Dialect db.Dialect
	// Breaker is reported by /health when set.
	Breaker hhttp.BreakerState
	Logger  *slog.Logger
}

// App is the assembled API.
type App struct {
	Handler  http.Handler
	Articles repository.ArticleRepository
	Users    repository.UserRepository
	Auth     *authservice.AuthService
}

// Repositories returns the article and user adapters for dialect.
func Repositories(q db.Querier, dialect db.Dialect) (repository.ArticleRepository, repository.UserRepository, error) {
	switch dialect {
	case db.Postgres:
		return postgres.NewArticleRepo(q), postgres.NewUserRepo(q), nil
	case db.SQLite:
		return sqlite.NewArticleRepo(q), sqlite.NewUserRepo(q), nil
	default:
		return nil, nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// New wires the API.
//
// Public routes: POST /api/login, /health, /ready, /live, /metrics, /swagger/.
// Admin routes under /api/admin/articles require a bearer token and the
// matching policy action.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	q := opts.Querier
	if q == nil {
		q = opts.DB
	}

	articles, users, err := Repositories(q, opts.Dialect)
	if err != nil {
		return nil, err
	}

	provider, err := authservice.NewUserStoreProvider(users, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens := authservice.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.JWTTTL, nil)
	authSvc := authservice.NewAuthService(provider, tokens, users)

	artSvc := &artUC.Service{Repo: articles, Mapper: artUC.NewMapper(users)}
	authz := &hauth.Authenticator{Tokens: authSvc, Policy: authservice.DefaultPolicy()}
	limiter := hauth.NewLoginLimiter(cfg.LoginRateLimit, nil)

	mux := http.NewServeMux()
	mux.Handle("POST /api/login", limiter.Middleware(hauth.LoginHandler{Svc: authSvc}))
	harticle.Register(mux, artSvc, authz, binding.New(), cfg.Pagination)

	health := &hhttp.HealthHandler{Breaker: opts.Breaker, Version: cfg.Version}
	ready := &hhttp.ReadyHandler{}
	if opts.DB != nil {
		health.DB = opts.DB
		health.Stats = opts.DB.Stats
		ready.DB = opts.DB
	}
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", ready)
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	handler := hhttp.Chain(mux,
		requestid.Middleware,
		hhttp.SecurityHeaders(hhttp.StrictCSP, map[string]string{"/swagger/": hhttp.SwaggerCSP}),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.InputValidation(cfg.MaxBodyBytes),
		hhttp.RequestTimeout(cfg.RequestTimeout),
	)

	return &App{Handler: handler, Articles: articles, Users: users, Auth: authSvc}, nil
}
