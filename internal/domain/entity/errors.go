package entity

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("entity not found")
	ErrValidationFailed  = errors.New("validation failed")
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrReferenceNotFound means a foreign key names a row that does not exist.
	ErrReferenceNotFound = errors.New("referenced entity not found")
)

// ValidationError is one violation, addressed by the JSON property that caused it.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is every violation found in one input, in check order.
// It matches ErrValidationFailed under errors.Is.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var b strings.Builder
	for i, v := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(v.Error())
	}
	return b.String()
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}
