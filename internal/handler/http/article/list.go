package article

import (
	"context"
	"errors"
	"net/http"
	"time"

	"articles-admin/internal/common/pagination"
	"articles-admin/internal/domain/entity"
	"articles-admin/internal/handler/http/respond"
	"articles-admin/internal/observability/logging"
	"articles-admin/internal/resilience/circuitbreaker"
	artUC "articles-admin/internal/usecase/article"
)

// Lister returns one page of articles.
type Lister interface {
	FindPaginate(ctx context.Context, params pagination.Params) (*artUC.Page, error)
}

type ListHandler struct {
	Svc           Lister
	PaginationCfg pagination.Config
}

// ServeHTTP lists articles page by page.
//
// @Summary      List articles
// @Description  Returns articles ordered by id. Invalid page or limit values yield 404 with violations.
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        page   query    int  false  "Page number (1-based)" default(1) minimum(1)
// @Param        limit  query    int  false  "Items per page" default(6) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[ArticleDTO]
// @Failure      401 {object} respond.ProblemDetails "Missing or invalid token"
// @Failure      403 {object} respond.ProblemDetails "Admin role required"
// @Failure      404 {object} respond.ProblemDetails "Invalid pagination parameters"
// @Failure      500 {object} respond.ProblemDetails
// @Router       /api/admin/articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.FromContext(ctx)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		pagination.Observe(logger, pagination.OutcomeInvalid, pagination.Observation{
			Params: params, Duration: time.Since(start), Err: err,
		})
		var verrs entity.ValidationErrors
		if errors.As(err, &verrs) {
			respond.Violations(w, http.StatusNotFound, respond.TypeValidation, verrs)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	page, err := h.Svc.FindPaginate(ctx, params)
	if err != nil {
		pagination.Observe(logger, pagination.OutcomeFailed, pagination.Observation{
			Params: params, Duration: time.Since(start), Err: err,
		})
		if errors.Is(err, circuitbreaker.ErrUnavailable) {
			unavailable(w)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]ArticleDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toDTO(item))
	}

	pagination.Observe(logger, pagination.OutcomeServed, pagination.Observation{
		Params:   params,
		Returned: len(items),
		Total:    page.Meta.Total,
		Duration: time.Since(start),
	})
	respond.JSON(w, http.StatusOK, pagination.NewResponse(items, page.Meta))
}
