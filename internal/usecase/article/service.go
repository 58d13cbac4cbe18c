package article

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"articles-admin/internal/common/pagination"
	"articles-admin/internal/domain/entity"
	"articles-admin/internal/observability/metrics"
	"articles-admin/internal/observability/tracing"
	"articles-admin/internal/repository"
)

// Service provides article management use cases.
// It handles business logic for article operations and delegates persistence to the repository.
type Service struct {
	Repo   repository.ArticleRepository
	Mapper *Mapper
}

// Page is one page of articles with collection metadata.
type Page struct {
	Items []repository.ArticleWithAuthor
	Meta  pagination.Meta
}

// FindPaginate returns the page described by params, ordered by id.
// params must already be validated.
func (s *Service) FindPaginate(ctx context.Context, params pagination.Params) (*Page, error) {
	ctx, span := tracing.StartSpan(ctx, "article.FindPaginate",
		attribute.Int("page", params.Page),
		attribute.Int("limit", params.Limit),
	)
	defer span.End()

	total, err := s.Repo.Count(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("count articles: %w", err)
	}

	items, err := s.Repo.ListPaginated(ctx, params.Offset(), params.Limit)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("list articles paginated: %w", err)
	}

	return &Page{Items: items, Meta: pagination.NewMeta(total, params.Limit)}, nil
}

// Get retrieves an article with its author.
// Returns ErrInvalidArticleID if the ID is not positive and ErrArticleNotFound
// if the article does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*repository.ArticleWithAuthor, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}
	ctx, span := tracing.StartSpan(ctx, "article.Get", attribute.Int64("article.id", id))
	defer span.End()

	found, err := s.Repo.GetWithAuthor(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("get article: %w", err)
	}
	if found == nil {
		return nil, ErrArticleNotFound
	}
	return found, nil
}

// Create maps and persists a new article and returns it with its ID assigned.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	ctx, span := tracing.StartSpan(ctx, "article.Create", attribute.Int64("author.id", in.AuthorID))
	defer span.End()

	art, err := s.Mapper.MapCreate(ctx, in)
	if err != nil {
		s.record("create", err)
		tracing.RecordError(span, err)
		return nil, err
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		err = translate(err)
		s.record("create", err)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.record("create", nil)
	span.SetAttributes(attribute.Int64("article.id", art.ID))
	return art, nil
}

// Update applies a partial update and returns the stored result with its author.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*repository.ArticleWithAuthor, error) {
	if id <= 0 {
		s.record("update", ErrInvalidArticleID)
		return nil, ErrInvalidArticleID
	}
	ctx, span := tracing.StartSpan(ctx, "article.Update", attribute.Int64("article.id", id))
	defer span.End()

	err := s.update(ctx, id, in)
	s.record("update", err)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	updated, err := s.Repo.GetWithAuthor(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("reload article: %w", err)
	}
	if updated == nil {
		return nil, ErrArticleNotFound
	}
	return updated, nil
}

func (s *Service) update(ctx context.Context, id int64, in UpdateInput) error {
	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return ErrArticleNotFound
	}

	if err := s.Mapper.MapUpdate(ctx, in, art); err != nil {
		return err
	}

	if err := s.Repo.Update(ctx, art); err != nil {
		return fmt.Errorf("update article: %w", translate(err))
	}
	return nil
}

// Delete removes an article. Deleting a missing article returns ErrArticleNotFound,
// so a repeated delete is reported the same way every time.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		s.record("delete", ErrInvalidArticleID)
		return ErrInvalidArticleID
	}
	ctx, span := tracing.StartSpan(ctx, "article.Delete", attribute.Int64("article.id", id))
	defer span.End()

	err := s.Repo.Delete(ctx, id)
	if err != nil {
		err = translate(err)
		if !errors.Is(err, ErrArticleNotFound) {
			err = fmt.Errorf("delete article: %w", err)
		}
	}
	s.record("delete", err)
	if err != nil {
		tracing.RecordError(span, err)
	}
	return err
}

// translate maps repository sentinels to use case errors.
func translate(err error) error {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return ErrArticleNotFound
	case errors.Is(err, entity.ErrReferenceNotFound):
		return ErrAuthorNotFound
	default:
		return err
	}
}

func (s *Service) record(op string, err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrArticleNotFound), errors.Is(err, ErrInvalidArticleID):
		result = "not_found"
	case errors.Is(err, ErrAuthorNotFound), errors.Is(err, entity.ErrValidationFailed):
		result = "invalid"
	default:
		result = "error"
	}
	metrics.RecordArticleOperation(op, result)
}
