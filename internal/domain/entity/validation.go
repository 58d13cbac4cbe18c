package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength bounds Title and ShortContent, matching the varchar(255) columns.
const MaxTitleLength = 255

// Violation messages shared by the domain checks and the HTTP binding layer.
const (
	MsgNotBlank = "This value should not be blank."
	MsgPositive = "This value should be positive."
)

// MsgTooLong returns the message used when a string exceeds max characters.
func MsgTooLong(max int) string {
	return fmt.Sprintf("This value is too long. It should have %d characters or less.", max)
}

// Validate checks the invariants an Article must hold before it is persisted.
// It returns ValidationErrors listing every failing field, or nil.
func (a *Article) Validate() error {
	var errs ValidationErrors

	checkText := func(field, value string, max int) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{Field: field, Message: MsgNotBlank})
			return
		}
		if max > 0 && utf8.RuneCountInString(value) > max {
			errs = append(errs, ValidationError{Field: field, Message: MsgTooLong(max)})
		}
	}

	checkText("title", a.Title, MaxTitleLength)
	checkText("content", a.Content, 0)
	checkText("shortContent", a.ShortContent, MaxTitleLength)
	if a.AuthorID <= 0 {
		errs = append(errs, ValidationError{Field: "user", Message: MsgPositive})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks the invariants a User must hold before it is persisted.
func (u *User) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(u.Username) == "" {
		errs = append(errs, ValidationError{Field: "username", Message: MsgNotBlank})
	} else if utf8.RuneCountInString(u.Username) > 180 {
		errs = append(errs, ValidationError{Field: "username", Message: MsgTooLong(180)})
	}
	if u.PasswordHash == "" {
		errs = append(errs, ValidationError{Field: "password", Message: MsgNotBlank})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
