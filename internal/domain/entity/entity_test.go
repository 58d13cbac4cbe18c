package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	var err error = ValidationError{Field: "title", Message: MsgNotBlank}
	assert.Equal(t, "title: This value should not be blank.", err.Error())
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "page", Message: MsgPositive},
		{Field: "limit", Message: MsgPositive},
	}

	assert.Equal(t, "page: This value should be positive.\nlimit: This value should be positive.", errs.Error())
	assert.True(t, errors.Is(errs, ErrValidationFailed))

	var wrapped error = errs
	var target ValidationErrors
	require.True(t, errors.As(wrapped, &target))
	assert.Len(t, target, 2)
}

func TestArticle_Validate(t *testing.T) {
	valid := func() Article {
		return Article{
			Title:        "Article 1",
			Content:      "Body",
			ShortContent: "Short",
			AuthorID:     1,
		}
	}

	tests := []struct {
		name       string
		mutate     func(a *Article)
		wantFields []string
	}{
		{name: "valid", mutate: func(a *Article) {}},
		{name: "blank title", mutate: func(a *Article) { a.Title = "   " }, wantFields: []string{"title"}},
		{name: "title too long", mutate: func(a *Article) { a.Title = strings.Repeat("a", 256) }, wantFields: []string{"title"}},
		{name: "title at limit", mutate: func(a *Article) { a.Title = strings.Repeat("é", 255) }},
		{name: "blank content", mutate: func(a *Article) { a.Content = "" }, wantFields: []string{"content"}},
		{name: "long content allowed", mutate: func(a *Article) { a.Content = strings.Repeat("x", 10000) }},
		{name: "blank short content", mutate: func(a *Article) { a.ShortContent = "" }, wantFields: []string{"shortContent"}},
		{name: "missing author", mutate: func(a *Article) { a.AuthorID = 0 }, wantFields: []string{"user"}},
		{
			name:       "several failures",
			mutate:     func(a *Article) { a.Title = ""; a.ShortContent = "" },
			wantFields: []string{"title", "shortContent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid()
			tt.mutate(&a)
			err := a.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			var fields []string
			for _, v := range errs {
				fields = append(fields, v.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestArticle_Touch(t *testing.T) {
	a := Article{}
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a.Touch(now)
	assert.Equal(t, now, a.UpdatedAt)
}

func TestUser_EffectiveRoles(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  []string
	}{
		{name: "no stored roles", roles: nil, want: []string{RoleUser}},
		{name: "admin", roles: []string{RoleAdmin}, want: []string{RoleAdmin, RoleUser}},
		{name: "duplicates collapsed", roles: []string{RoleAdmin, RoleAdmin, RoleUser}, want: []string{RoleAdmin, RoleUser}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Roles: tt.roles}
			assert.Equal(t, tt.want, u.EffectiveRoles())
		})
	}
}

func TestUser_HasRole(t *testing.T) {
	admin := &User{Roles: []string{RoleAdmin}}
	plain := &User{}

	assert.True(t, admin.HasRole(RoleAdmin))
	assert.True(t, admin.HasRole(RoleUser))
	assert.False(t, plain.HasRole(RoleAdmin))
	assert.True(t, plain.HasRole(RoleUser))
}

func TestUser_Validate(t *testing.T) {
	assert.NoError(t, (&User{Username: "admin", PasswordHash: "hash"}).Validate())

	err := (&User{}).Validate()
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
}
