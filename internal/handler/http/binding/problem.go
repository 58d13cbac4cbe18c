package binding

import (
	"errors"
	"net/http"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/handler/http/respond"
)

// WriteError writes the problem matching a Bind or DecodeJSON failure:
// 413 for oversized bodies, 400 for malformed JSON and 422 for field violations.
func WriteError(w http.ResponseWriter, err error) {
	var verrs entity.ValidationErrors
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		respond.Problem(w, http.StatusRequestEntityTooLarge, "Request body too large.")
	case errors.Is(err, ErrMalformedBody):
		respond.TypedProblem(w, http.StatusBadRequest, respond.TypeMalformed, "Malformed JSON body.")
	case errors.As(err, &verrs):
		respond.Violations(w, http.StatusUnprocessableEntity, respond.TypeValidation, verrs)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
