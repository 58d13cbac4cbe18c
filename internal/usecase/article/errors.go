// Package article implements the article administration use cases: paginated
// listing, creation, partial update and deletion.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is not positive.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrAuthorNotFound indicates that the referenced user does not exist.
	// It is a referential failure, distinct from field validation.
	ErrAuthorNotFound = errors.New("author not found")
)
