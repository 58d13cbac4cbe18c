package pathutil

import (
	"errors"
	"strconv"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a route segment such as r.PathValue("id") as a positive int64.
// Leading signs and zero are rejected.
func ParseID(raw string) (int64, error) {
	if raw == "" || raw[0] == '+' || raw[0] == '-' {
		return 0, ErrInvalidID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
