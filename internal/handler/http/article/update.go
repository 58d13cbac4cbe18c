package article

import (
	"context"
	"log/slog"
	"net/http"

	"articles-admin/internal/handler/http/binding"
	"articles-admin/internal/handler/http/pathutil"
	"articles-admin/internal/handler/http/respond"
	"articles-admin/internal/observability/logging"
	"articles-admin/internal/repository"
	artUC "articles-admin/internal/usecase/article"
)

// Updater applies partial updates.
type Updater interface {
	Get(ctx context.Context, id int64) (*repository.ArticleWithAuthor, error)
	Update(ctx context.Context, id int64, in artUC.UpdateInput) (*repository.ArticleWithAuthor, error)
}

type UpdateHandler struct {
	Svc    Updater
	Binder *binding.Binder
}

// ServeHTTP applies the fields present in the body. The article is resolved
// before the body is read, so a missing article is 404 whatever the payload.
//
// @Summary      Update an article
// @Description  Partially updates an article. Absent fields are left unchanged.
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path int                  true "Article ID"
// @Param        article body UpdateArticleRequest true "Fields to change"
// @Success      200 {object} ArticleDTO
// @Failure      400 {object} respond.ProblemDetails "Malformed JSON"
// @Failure      401 {object} respond.ProblemDetails "Missing or invalid token"
// @Failure      403 {object} respond.ProblemDetails "Admin role required"
// @Failure      404 {object} respond.ProblemDetails "Article not found"
// @Failure      422 {object} respond.ProblemDetails "Validation or referential failure"
// @Failure      500 {object} respond.ProblemDetails
// @Router       /api/admin/articles/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		notFound(w)
		return
	}
	if _, err := h.Svc.Get(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	var req UpdateArticleRequest
	if err := h.Binder.Bind(r, &req); err != nil {
		binding.WriteError(w, err)
		return
	}

	updated, err := h.Svc.Update(r.Context(), id, req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logging.FromContext(r.Context()).Info("article updated", slog.Int64("article_id", id), actor(r.Context()))
	respond.JSON(w, http.StatusOK, toDTO(*updated))
}
