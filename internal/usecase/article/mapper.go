package article

import (
	"context"
	"fmt"
	"time"

	"articles-admin/internal/common/optional"
	"articles-admin/internal/domain/entity"
	"articles-admin/internal/repository"
)

// CreateInput carries the validated fields of a new article.
type CreateInput struct {
	Title        string
	Content      string
	ShortContent string
	AuthorID     int64
}

// UpdateInput carries a partial update. Absent fields leave the article unchanged.
type UpdateInput struct {
	Title        optional.Field[string]
	Content      optional.Field[string]
	ShortContent optional.Field[string]
	AuthorID     optional.Field[int64]
}

// Mapper turns inputs into article field assignments and resolves the author.
type Mapper struct {
	Users repository.UserRepository
	Now   func() time.Time
}

// NewMapper returns a Mapper using the wall clock.
func NewMapper(users repository.UserRepository) *Mapper {
	return &Mapper{Users: users, Now: time.Now}
}

// MapCreate builds a new, unsaved article from in.
// It returns ErrAuthorNotFound when in.AuthorID matches no user and
// entity.ValidationErrors when the result breaks an article invariant.
func (m *Mapper) MapCreate(ctx context.Context, in CreateInput) (*entity.Article, error) {
	now := m.now()
	art := &entity.Article{
		Title:        in.Title,
		Content:      in.Content,
		ShortContent: in.ShortContent,
		AuthorID:     in.AuthorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := art.Validate(); err != nil {
		return nil, err
	}
	if err := m.resolveAuthor(ctx, in.AuthorID); err != nil {
		return nil, err
	}
	return art, nil
}

// MapUpdate applies the present fields of in to existing and bumps UpdatedAt.
// existing is left untouched when an error is returned.
func (m *Mapper) MapUpdate(ctx context.Context, in UpdateInput, existing *entity.Article) error {
	next := *existing

	if v, ok := in.Title.Get(); ok {
		next.Title = v
	}
	if v, ok := in.Content.Get(); ok {
		next.Content = v
	}
	if v, ok := in.ShortContent.Get(); ok {
		next.ShortContent = v
	}
	authorChanged := false
	if v, ok := in.AuthorID.Get(); ok {
		authorChanged = v != existing.AuthorID
		next.AuthorID = v
	}

	if err := next.Validate(); err != nil {
		return err
	}
	if authorChanged {
		if err := m.resolveAuthor(ctx, next.AuthorID); err != nil {
			return err
		}
	}

	next.Touch(m.now())
	*existing = next
	return nil
}

func (m *Mapper) resolveAuthor(ctx context.Context, id int64) error {
	user, err := m.Users.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve author: %w", err)
	}
	if user == nil {
		return ErrAuthorNotFound
	}
	return nil
}

func (m *Mapper) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}
