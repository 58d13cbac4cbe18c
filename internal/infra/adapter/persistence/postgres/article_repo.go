// Package postgres provides PostgreSQL implementations of the repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/infra/db"
	"articles-admin/internal/repository"
)

type ArticleRepo struct {
	db db.Querier
}

func NewArticleRepo(q db.Querier) repository.ArticleRepository {
	return &ArticleRepo{db: q}
}

const articleWithAuthorColumns = `
a.id, a.title, a.content, a.short_content, a.author_id, a.created_at, a.updated_at,
u.id, u.username, u.first_name, u.last_name`

type scanner interface {
	Scan(dest ...any) error
}

func scanArticleWithAuthor(s scanner) (repository.ArticleWithAuthor, error) {
	var article entity.Article
	var author entity.User
	err := s.Scan(&article.ID, &article.Title, &article.Content, &article.ShortContent,
		&article.AuthorID, &article.CreatedAt, &article.UpdatedAt,
		&author.ID, &author.Username, &author.FirstName, &author.LastName)
	return repository.ArticleWithAuthor{Article: &article, Author: &author}, err
}

// ListPaginated retrieves one page of articles with their authors, ordered by id.
func (repo *ArticleRepo) ListPaginated(ctx context.Context, offset, limit int) ([]repository.ArticleWithAuthor, error) {
	const query = `
SELECT` + articleWithAuthorColumns + `
FROM articles a
INNER JOIN users u ON u.id = a.author_id
ORDER BY a.id ASC
LIMIT $1 OFFSET $2`

	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.ArticleWithAuthor, 0, limit)
	for rows.Next() {
		item, err := scanArticleWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPaginated: Scan: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPaginated: rows.Err: %w", err)
	}
	return result, nil
}

// Count returns the total number of articles in the database.
func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT id, title, content, short_content, author_id, created_at, updated_at
FROM articles
WHERE id = $1
LIMIT 1`
	var article entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&article.ID, &article.Title, &article.Content, &article.ShortContent,
			&article.AuthorID, &article.CreatedAt, &article.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &article, nil
}

func (repo *ArticleRepo) GetWithAuthor(ctx context.Context, id int64) (*repository.ArticleWithAuthor, error) {
	const query = `
SELECT` + articleWithAuthorColumns + `
FROM articles a
INNER JOIN users u ON u.id = a.author_id
WHERE a.id = $1
LIMIT 1`
	item, err := scanArticleWithAuthor(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetWithAuthor: %w", err)
	}
	return &item, nil
}

func (repo *ArticleRepo) FindOneByTitle(ctx context.Context, title string) (*entity.Article, error) {
	const query = `
SELECT id, title, content, short_content, author_id, created_at, updated_at
FROM articles
WHERE title = $1
ORDER BY id ASC
LIMIT 1`
	var article entity.Article
	err := repo.db.QueryRowContext(ctx, query, title).
		Scan(&article.ID, &article.Title, &article.Content, &article.ShortContent,
			&article.AuthorID, &article.CreatedAt, &article.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindOneByTitle: %w", err)
	}
	return &article, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles
       (title, content, short_content, author_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.ShortContent,
		article.AuthorID, article.CreatedAt, article.UpdatedAt,
	).Scan(&article.ID)
	if db.IsForeignKeyViolation(err) {
		return fmt.Errorf("Create: author %d: %w", article.AuthorID, entity.ErrReferenceNotFound)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles SET
       title         = $1,
       content       = $2,
       short_content = $3,
       author_id     = $4,
       updated_at    = $5
WHERE id = $6`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Content, article.ShortContent,
		article.AuthorID, article.UpdatedAt, article.ID,
	)
	if db.IsForeignKeyViolation(err) {
		return fmt.Errorf("Update: author %d: %w", article.AuthorID, entity.ErrReferenceNotFound)
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: article %d: %w", article.ID, entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: article %d: %w", id, entity.ErrNotFound)
	}
	return nil
}
