// Package article provides the admin HTTP handlers for articles: paginated
// listing, creation, partial update and deletion.
package article

import (
	"time"

	"articles-admin/internal/common/optional"
	"articles-admin/internal/repository"
	artUC "articles-admin/internal/usecase/article"
)

// CreateArticleRequest is the body of POST /api/admin/articles.
type CreateArticleRequest struct {
	Title        string `json:"title" validate:"notblank,max=255" example:"Release notes"`
	Content      string `json:"content" validate:"notblank" example:"Full article body"`
	ShortContent string `json:"shortContent" validate:"notblank,max=255" example:"Teaser"`
	User         int64  `json:"user" validate:"gt=0" example:"1"`
}

func (r CreateArticleRequest) input() artUC.CreateInput {
	return artUC.CreateInput{
		Title:        r.Title,
		Content:      r.Content,
		ShortContent: r.ShortContent,
		AuthorID:     r.User,
	}
}

// UpdateArticleRequest is the body of PATCH /api/admin/articles/{id}.
// Absent fields are left unchanged; a null value is rejected.
type UpdateArticleRequest struct {
	Title        optional.Field[string] `json:"title" validate:"omitnil,notblank,max=255" swaggertype:"string"`
	Content      optional.Field[string] `json:"content" validate:"omitnil,notblank" swaggertype:"string"`
	ShortContent optional.Field[string] `json:"shortContent" validate:"omitnil,notblank,max=255" swaggertype:"string"`
	User         optional.Field[int64]  `json:"user" validate:"omitnil,required,gt=0" swaggertype:"integer"`
}

func (r UpdateArticleRequest) input() artUC.UpdateInput {
	return artUC.UpdateInput{
		Title:        r.Title,
		Content:      r.Content,
		ShortContent: r.ShortContent,
		AuthorID:     r.User,
	}
}

// CreatedResponse is returned by POST.
type CreatedResponse struct {
	ID int64 `json:"id" example:"13"`
}

// AuthorDTO is the public view of an article's author. Credentials and roles
// are never exposed.
type AuthorDTO struct {
	ID        int64  `json:"id" example:"1"`
	Username  string `json:"username" example:"admin"`
	FirstName string `json:"firstName" example:"Ada"`
	LastName  string `json:"lastName" example:"Lovelace"`
}

// ArticleDTO is the "show" projection of an article.
type ArticleDTO struct {
	ID           int64     `json:"id" example:"1"`
	Title        string    `json:"title" example:"Article 1"`
	Content      string    `json:"content" example:"Full article body"`
	ShortContent string    `json:"shortContent" example:"Teaser"`
	CreatedAt    time.Time `json:"createdAt" example:"2025-07-19T10:00:00Z"`
	UpdatedAt    time.Time `json:"updatedAt" example:"2025-07-19T10:00:00Z"`
	User         AuthorDTO `json:"user"`
}

func toDTO(item repository.ArticleWithAuthor) ArticleDTO {
	a := item.Article
	out := ArticleDTO{
		ID:           a.ID,
		Title:        a.Title,
		Content:      a.Content,
		ShortContent: a.ShortContent,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
		User:         AuthorDTO{ID: a.AuthorID},
	}
	if u := item.Author; u != nil {
		out.User = AuthorDTO{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		}
	}
	return out
}
