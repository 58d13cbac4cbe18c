package article

import (
	"errors"
	"net/http"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/handler/http/respond"
	"articles-admin/internal/resilience/circuitbreaker"
	artUC "articles-admin/internal/usecase/article"
)

// Problem details shared by the article handlers.
const (
	DetailNotFound      = "Article not found."
	MsgAuthorNotFound   = "This user does not exist."
	propertyAuthorField = "user"
)

func notFound(w http.ResponseWriter) {
	respond.Problem(w, http.StatusNotFound, DetailNotFound)
}

// writeServiceError maps use case errors to problem responses.
func writeServiceError(w http.ResponseWriter, err error) {
	var verrs entity.ValidationErrors
	switch {
	case errors.Is(err, artUC.ErrArticleNotFound), errors.Is(err, artUC.ErrInvalidArticleID):
		notFound(w)
	case errors.Is(err, artUC.ErrAuthorNotFound):
		respond.Violations(w, http.StatusUnprocessableEntity, respond.TypeReferential, entity.ValidationErrors{
			{Field: propertyAuthorField, Message: MsgAuthorNotFound},
		})
	case errors.As(err, &verrs):
		respond.Violations(w, http.StatusUnprocessableEntity, respond.TypeValidation, verrs)
	case errors.Is(err, circuitbreaker.ErrUnavailable):
		unavailable(w)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

func unavailable(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "30")
	respond.Problem(w, http.StatusServiceUnavailable, "The database is temporarily unavailable.")
}
