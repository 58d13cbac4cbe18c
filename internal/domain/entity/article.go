// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and User, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Article is an editorial entry managed through the admin API.
// Every persisted article references exactly one existing User through AuthorID.
type Article struct {
	ID           int64
	Title        string
	Content      string
	ShortContent string
	AuthorID     int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Touch bumps UpdatedAt after a mutation.
func (a *Article) Touch(now time.Time) {
	a.UpdatedAt = now
}
