package repository

import (
	"context"

	"articles-admin/internal/domain/entity"
)

// ArticleWithAuthor represents an article along with the user who wrote it.
type ArticleWithAuthor struct {
	Article *entity.Article
	Author  *entity.User
}

// ArticleRepository persists articles.
//
// Lookups return (nil, nil) when no row matches. Update and Delete return an
// error wrapping entity.ErrNotFound when the id does not exist, and Create/Update
// wrap entity.ErrReferenceNotFound when AuthorID references a missing user.
type ArticleRepository interface {
	// ListPaginated returns one page of articles with their authors, ordered by id ASC.
	ListPaginated(ctx context.Context, offset, limit int) ([]ArticleWithAuthor, error)
	// Count returns the total number of articles.
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id int64) (*entity.Article, error)
	GetWithAuthor(ctx context.Context, id int64) (*ArticleWithAuthor, error)
	FindOneByTitle(ctx context.Context, title string) (*entity.Article, error)
	// Create inserts the article and assigns its generated ID.
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id int64) error
}
