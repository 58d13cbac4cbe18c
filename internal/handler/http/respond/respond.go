// Package respond writes JSON and problem responses for the HTTP handlers.
// Internal errors are logged with secrets masked and never reach the client.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"articles-admin/internal/domain/entity"
)

// Problem types beyond the generic "about:blank".
const (
	TypeValidation   = "validation-failed"
	TypeReferential  = "referential-failure"
	TypeMalformed    = "malformed-request"
	TypeDefault      = "about:blank"
	problemMediaType = "application/problem+json"
)

// Violation addresses one failing input field.
type Violation struct {
	PropertyPath string `json:"propertyPath"`
	Title        string `json:"title"`
}

// ProblemDetails is the error envelope returned by every failing endpoint.
type ProblemDetails struct {
	Type       string      `json:"type"`
	Title      string      `json:"title"`
	Status     int         `json:"status"`
	Detail     string      `json:"detail"`
	Violations []Violation `json:"violations,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	write(w, "application/json", code, v)
}

// NoContent writes 204 with an empty body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Problem writes a problem document without violations.
func Problem(w http.ResponseWriter, code int, detail string) {
	TypedProblem(w, code, TypeDefault, detail)
}

// TypedProblem writes a problem document of the given type.
func TypedProblem(w http.ResponseWriter, code int, problemType, detail string) {
	write(w, problemMediaType, code, ProblemDetails{
		Type:   problemType,
		Title:  http.StatusText(code),
		Status: code,
		Detail: detail,
	})
}

// Violations writes a problem document listing every field violation.
// The detail joins them as "field: message" lines.
func Violations(w http.ResponseWriter, code int, problemType string, errs entity.ValidationErrors) {
	vs := make([]Violation, 0, len(errs))
	for _, e := range errs {
		vs = append(vs, Violation{PropertyPath: e.Field, Title: e.Message})
	}
	write(w, problemMediaType, code, ProblemDetails{
		Type:       problemType,
		Title:      http.StatusText(code),
		Status:     code,
		Detail:     errs.Error(),
		Violations: vs,
	})
}

// SafeError writes err as a problem. Errors with a 5xx code are logged with
// secrets masked and replaced by a generic detail.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var verrs entity.ValidationErrors
	if code < 500 && errors.As(err, &verrs) {
		Violations(w, code, TypeValidation, verrs)
		return
	}

	if code >= 500 {
		slog.Default().Error("internal server error",
			slog.Int("code", code),
			slog.String("error", SanitizeError(err)))
		Problem(w, code, "An internal error occurred.")
		return
	}
	Problem(w, code, err.Error())
}

func write(w http.ResponseWriter, contentType string, code int, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}
