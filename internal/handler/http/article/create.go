package article

import (
	"context"
	"log/slog"
	"net/http"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/handler/http/auth"
	"articles-admin/internal/handler/http/binding"
	"articles-admin/internal/handler/http/respond"
	"articles-admin/internal/observability/logging"
	artUC "articles-admin/internal/usecase/article"
)

// Creator persists new articles.
type Creator interface {
	Create(ctx context.Context, in artUC.CreateInput) (*entity.Article, error)
}

type CreateHandler struct {
	Svc    Creator
	Binder *binding.Binder
}

// ServeHTTP creates an article.
//
// @Summary      Create an article
// @Description  Creates an article authored by an existing user
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        article body CreateArticleRequest true "New article"
// @Success      201 {object} CreatedResponse
// @Failure      400 {object} respond.ProblemDetails "Malformed JSON"
// @Failure      401 {object} respond.ProblemDetails "Missing or invalid token"
// @Failure      403 {object} respond.ProblemDetails "Admin role required"
// @Failure      422 {object} respond.ProblemDetails "Validation or referential failure"
// @Failure      500 {object} respond.ProblemDetails
// @Router       /api/admin/articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := h.Binder.Bind(r, &req); err != nil {
		binding.WriteError(w, err)
		return
	}

	art, err := h.Svc.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logging.FromContext(r.Context()).Info("article created",
		slog.Int64("article_id", art.ID),
		slog.Int64("author_id", art.AuthorID),
		actor(r.Context()))
	respond.JSON(w, http.StatusCreated, CreatedResponse{ID: art.ID})
}

// actor names the admin performing a write, for audit lines.
func actor(ctx context.Context) slog.Attr {
	if u, ok := auth.UserFromContext(ctx); ok {
		return slog.String("actor", u.Username)
	}
	return slog.String("actor", "")
}
