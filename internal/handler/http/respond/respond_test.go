package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles-admin/internal/domain/entity"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var p ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int64{"id": 13})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":13}`, rec.Body.String())
}

func TestJSON_EncodingError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestProblem(t *testing.T) {
	rec := httptest.NewRecorder()
	Problem(rec, http.StatusForbidden, "Access Denied.")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, ProblemDetails{
		Type:   TypeDefault,
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: "Access Denied.",
	}, p)
	assert.NotContains(t, rec.Body.String(), "violations")
}

func TestViolations(t *testing.T) {
	rec := httptest.NewRecorder()
	Violations(rec, http.StatusNotFound, TypeValidation, entity.ValidationErrors{
		{Field: "page", Message: entity.MsgPositive},
		{Field: "limit", Message: entity.MsgPositive},
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "page: This value should be positive.\nlimit: This value should be positive.", p.Detail)
	assert.Equal(t, []Violation{
		{PropertyPath: "page", Title: entity.MsgPositive},
		{PropertyPath: "limit", Title: entity.MsgPositive},
	}, p.Violations)
}

func TestSafeError(t *testing.T) {
	t.Run("nil error writes nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SafeError(rec, http.StatusBadRequest, nil)
		assert.Equal(t, 0, rec.Body.Len())
	})

	t.Run("client error keeps message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SafeError(rec, http.StatusBadRequest, errors.New("Malformed JSON body."))
		assert.Equal(t, "Malformed JSON body.", decodeProblem(t, rec).Detail)
	})

	t.Run("wrapped validation errors become violations", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := fmt.Errorf("create: %w", entity.ValidationErrors{{Field: "title", Message: entity.MsgNotBlank}})
		SafeError(rec, http.StatusUnprocessableEntity, err)

		p := decodeProblem(t, rec)
		assert.Equal(t, TypeValidation, p.Type)
		assert.Len(t, p.Violations, 1)
	})

	t.Run("server error hides details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SafeError(rec, http.StatusInternalServerError,
			errors.New("dial postgres://app:s3cret@db:5432/app failed"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, strings.Contains(rec.Body.String(), "s3cret"))
		assert.Equal(t, "An internal error occurred.", decodeProblem(t, rec).Detail)
	})
}

func TestSanitizeError(t *testing.T) {
	hash := "$2a$10$" + strings.Repeat("a", 53)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dsn password", "connect postgres://app:s3cret@db/app", "connect postgres://app:****@db/app"},
		{"key value password", "host=db password=s3cret user=app", "host=db password=**** user=app"},
		{"bearer token", "token Bearer aaa.bbb.ccc rejected", "token Bearer **** rejected"},
		{"bcrypt hash", "hash " + hash + " mismatch", "hash $2*$**** mismatch"},
		{"plain", "entity not found", "entity not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(errors.New(tt.in)))
		})
	}
	assert.Equal(t, "", SanitizeError(nil))
}
