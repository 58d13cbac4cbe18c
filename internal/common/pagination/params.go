package pagination

import (
	"net/http"
	"strconv"
	"strings"

	"articles-admin/internal/domain/entity"
)

// MsgNotInt is reported for page/limit values that are not integers.
const MsgNotInt = "This value should be of type int."

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// Offset returns the row offset of the first item on the page.
func (p Params) Offset() int {
	return CalculateOffset(p.Page, p.Limit)
}

// ParseQueryParams parses the page and limit query parameters, applying
// config defaults for missing ones.
//
// Every invalid parameter is reported; the returned error is an
// entity.ValidationErrors with one entry per failing field.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	var errs entity.ValidationErrors
	q := r.URL.Query()

	parse := func(field string, dst *int) {
		if !q.Has(field) {
			return
		}
		v, err := strconv.Atoi(strings.TrimSpace(q.Get(field)))
		if err != nil {
			errs = append(errs, entity.ValidationError{Field: field, Message: MsgNotInt})
			return
		}
		*dst = v
	}
	parse("page", &params.Page)
	parse("limit", &params.Limit)

	if len(errs) > 0 {
		return params, errs
	}
	if err := params.Validate(config); err != nil {
		return params, err
	}
	return params, nil
}
