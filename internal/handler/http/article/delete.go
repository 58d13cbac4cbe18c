package article

import (
	"context"
	"log/slog"
	"net/http"

	"articles-admin/internal/handler/http/pathutil"
	"articles-admin/internal/handler/http/respond"
	"articles-admin/internal/observability/logging"
)

// Deleter removes articles.
type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

type DeleteHandler struct{ Svc Deleter }

// ServeHTTP deletes an article.
//
// @Summary      Delete an article
// @Description  Hard-deletes an article. Deleting it again yields 404.
// @Tags         articles
// @Security     BearerAuth
// @Param        id path int true "Article ID"
// @Success      204 "No Content"
// @Failure      401 {object} respond.ProblemDetails "Missing or invalid token"
// @Failure      403 {object} respond.ProblemDetails "Admin role required"
// @Failure      404 {object} respond.ProblemDetails "Article not found"
// @Failure      500 {object} respond.ProblemDetails
// @Router       /api/admin/articles/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		notFound(w)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	logging.FromContext(r.Context()).Info("article deleted", slog.Int64("article_id", id), actor(r.Context()))
	respond.NoContent(w)
}
