// Package sqlite provides SQLite implementations of the repository interfaces.
// It backs local development and the functional test suite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/infra/db"
	"articles-admin/internal/repository"
)

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct{ db db.Querier }

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(q db.Querier) repository.ArticleRepository {
	return &ArticleRepo{db: q}
}

const articleWithAuthorQuery = `
SELECT a.id, a.title, a.content, a.short_content, a.author_id, a.created_at, a.updated_at,
       u.id, u.username, u.first_name, u.last_name
FROM articles a
INNER JOIN users u ON u.id = a.author_id
`

func scanArticleWithAuthor(s interface{ Scan(...any) error }) (repository.ArticleWithAuthor, error) {
	var article entity.Article
	var author entity.User
	err := s.Scan(&article.ID, &article.Title, &article.Content, &article.ShortContent,
		&article.AuthorID, &article.CreatedAt, &article.UpdatedAt,
		&author.ID, &author.Username, &author.FirstName, &author.LastName)
	return repository.ArticleWithAuthor{Article: &article, Author: &author}, err
}

func scanArticle(row *sql.Row) (*entity.Article, error) {
	var article entity.Article
	err := row.Scan(&article.ID, &article.Title, &article.Content, &article.ShortContent,
		&article.AuthorID, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// ListPaginated retrieves one page of articles with their authors, ordered by id.
func (repo *ArticleRepo) ListPaginated(ctx context.Context, offset, limit int) ([]repository.ArticleWithAuthor, error) {
	const query = articleWithAuthorQuery + `ORDER BY a.id ASC
LIMIT ? OFFSET ?`

	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: QueryContext: %w", err)
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

// Count returns the total number of articles.
func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// Get retrieves an article by ID. Returns (nil, nil) if not found.
func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT id, title, content, short_content, author_id, created_at, updated_at
FROM articles
WHERE id = ?
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

// GetWithAuthor retrieves an article and its author. Returns (nil, nil) if not found.
func (repo *ArticleRepo) GetWithAuthor(ctx context.Context, id int64) (*repository.ArticleWithAuthor, error) {
	const query = articleWithAuthorQuery + `WHERE a.id = ?
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

// FindOneByTitle returns the lowest-id article with the exact title.
func (repo *ArticleRepo) FindOneByTitle(ctx context.Context, title string) (*entity.Article, error) {
	const query = `
SELECT id, title, content, short_content, author_id, created_at, updated_at
FROM articles
WHERE title = ?
ORDER BY id ASC
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, title))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindOneByTitle: %w", err)
	}
	return article, nil
}

// Create inserts a new article and stores the generated ID on it.
func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles
       (title, content, short_content, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Content, article.ShortContent,
		article.AuthorID, article.CreatedAt, article.UpdatedAt,
	)
	if db.IsForeignKeyViolation(err) {
		return fmt.Errorf("Create: author %d: %w", article.AuthorID, entity.ErrReferenceNotFound)
	}
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	article.ID = id
	return nil
}

// Update overwrites the mutable columns of an existing article.
func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles SET
       title         = ?,
       content       = ?,
       short_content = ?,
       author_id     = ?,
       updated_at    = ?
WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Content, article.ShortContent,
		article.AuthorID, article.UpdatedAt, article.ID,
	)
	if db.IsForeignKeyViolation(err) {
		return fmt.Errorf("Update: author %d: %w", article.AuthorID, entity.ErrReferenceNotFound)
	}
	if err != nil {
		return fmt.Errorf("Update: ExecContext: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: article %d: %w", article.ID, entity.ErrNotFound)
	}
	return nil
}

// Delete removes an article by ID.
func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("Delete: ExecContext: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: article %d: %w", id, entity.ErrNotFound)
	}
	return nil
}
