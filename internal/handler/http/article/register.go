package article

import (
	"net/http"

	"articles-admin/internal/common/pagination"
	"articles-admin/internal/handler/http/auth"
	"articles-admin/internal/handler/http/binding"
	authservice "articles-admin/internal/service/auth"
)

// Service is the article use case surface the handlers need.
type Service interface {
	Lister
	Creator
	Updater
	Deleter
}

// Register mounts the admin article routes on mux. Every route is guarded by
// authz for its own action, ahead of any query or body parsing.
func Register(mux *http.ServeMux, svc Service, authz *auth.Authenticator, binder *binding.Binder, paginationCfg pagination.Config) {
	mux.Handle("GET /api/admin/articles", authz.Require(authservice.ActionArticlesList)(ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
	}))
	mux.Handle("POST /api/admin/articles", authz.Require(authservice.ActionArticlesCreate)(CreateHandler{
		Svc:    svc,
		Binder: binder,
	}))
	mux.Handle("PATCH /api/admin/articles/{id}", authz.Require(authservice.ActionArticlesUpdate)(UpdateHandler{
		Svc:    svc,
		Binder: binder,
	}))
	mux.Handle("DELETE /api/admin/articles/{id}", authz.Require(authservice.ActionArticlesDelete)(DeleteHandler{Svc: svc}))
}
