package pagination

import (
	"fmt"
	"math"

	"articles-admin/internal/domain/entity"
)

// MsgPageTooLarge is reported when page*limit would overflow the row offset.
const MsgPageTooLarge = "This value is too large."

// Validate validates pagination parameters against the configuration.
// It returns entity.ValidationErrors when:
//   - page is less than 1
//   - limit is less than 1 or greater than config.MaxLimit
//   - the page's offset does not fit in an int
func (p Params) Validate(config Config) error {
	var errs entity.ValidationErrors
	if p.Page < 1 {
		errs = append(errs, entity.ValidationError{Field: "page", Message: entity.MsgPositive})
	}
	switch {
	case p.Limit < 1:
		errs = append(errs, entity.ValidationError{Field: "limit", Message: entity.MsgPositive})
	case config.MaxLimit > 0 && p.Limit > config.MaxLimit:
		errs = append(errs, entity.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("This value should be less than or equal to %d.", config.MaxLimit),
		})
	}
	if p.Page >= 1 && p.Limit >= 1 && p.Page-1 > math.MaxInt/p.Limit {
		errs = append(errs, entity.ValidationError{Field: "page", Message: MsgPageTooLarge})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
