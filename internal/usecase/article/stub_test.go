package article

import (
	"context"
	"fmt"
	"sort"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/repository"
)

// memUsers is an in-memory repository.UserRepository.
type memUsers struct {
	byID map[int64]*entity.User
	err  error
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{byID: map[int64]*entity.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Get(_ context.Context, id int64) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byID[id], nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	u.ID = int64(len(m.byID) + 1)
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) Count(context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

// memArticles is an in-memory repository.ArticleRepository that enforces the
// author foreign key against users.
type memArticles struct {
	users  *memUsers
	rows   map[int64]entity.Article
	nextID int64
	err    error
}

func newMemArticles(users *memUsers) *memArticles {
	return &memArticles{users: users, rows: map[int64]entity.Article{}, nextID: 1}
}

func (m *memArticles) seed(n int, authorID int64) {
	for i := 1; i <= n; i++ {
		a := &entity.Article{
			Title:        fmt.Sprintf("Article %d", i),
			Content:      "Content",
			ShortContent: "Short",
			AuthorID:     authorID,
		}
		_ = m.Create(context.Background(), a)
	}
}

func (m *memArticles) ids() []int64 {
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *memArticles) with(a entity.Article) repository.ArticleWithAuthor {
	art := a
	return repository.ArticleWithAuthor{Article: &art, Author: m.users.byID[a.AuthorID]}
}

func (m *memArticles) ListPaginated(_ context.Context, offset, limit int) ([]repository.ArticleWithAuthor, error) {
	if m.err != nil {
		return nil, m.err
	}
	ids := m.ids()
	var out []repository.ArticleWithAuthor
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		out = append(out, m.with(m.rows[ids[i]]))
	}
	return out, nil
}

func (m *memArticles) Count(context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.rows)), nil
}

func (m *memArticles) Get(_ context.Context, id int64) (*entity.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memArticles) GetWithAuthor(_ context.Context, id int64) (*repository.ArticleWithAuthor, error) {
	a, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	w := m.with(a)
	return &w, nil
}

func (m *memArticles) FindOneByTitle(_ context.Context, title string) (*entity.Article, error) {
	for _, id := range m.ids() {
		if a := m.rows[id]; a.Title == title {
			return &a, nil
		}
	}
	return nil, nil
}

func (m *memArticles) Create(_ context.Context, a *entity.Article) error {
	if m.err != nil {
		return m.err
	}
	if m.users.byID[a.AuthorID] == nil {
		return fmt.Errorf("insert article: %w", entity.ErrReferenceNotFound)
	}
	a.ID = m.nextID
	m.nextID++
	m.rows[a.ID] = *a
	return nil
}

func (m *memArticles) Update(_ context.Context, a *entity.Article) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[a.ID]; !ok {
		return fmt.Errorf("update article %d: %w", a.ID, entity.ErrNotFound)
	}
	if m.users.byID[a.AuthorID] == nil {
		return fmt.Errorf("update article: %w", entity.ErrReferenceNotFound)
	}
	m.rows[a.ID] = *a
	return nil
}

func (m *memArticles) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("delete article %d: %w", id, entity.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}
